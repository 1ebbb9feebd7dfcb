package repository

import (
	"context"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/records"
	"github.com/uptrace/bun"
)

// CreateSchema creates the tables and indexes when they do not exist.
// users.username and users.email carry UNIQUE constraints, registration
// relies on them.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().
		Model((*auth.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	owned := []struct {
		model any
		index string
	}{
		{model: (*records.Book)(nil), index: "books_user_id_idx"},
		{model: (*records.Quote)(nil), index: "quotes_user_id_idx"},
	}

	for _, o := range owned {
		if _, err := db.NewCreateTable().
			Model(o.model).
			IfNotExists().
			ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model(o.model).
			Index(o.index).
			Column("user_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
