package repository

import (
	"context"
	"fmt"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/uptrace/bun"
)

type users struct {
	db *bun.DB
}

var _ auth.Users = (*users)(nil)

// NewUsersRepository returns the bun backed credential store
func NewUsersRepository(db *bun.DB) auth.Users {
	return &users{db: db}
}

func (u *users) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return u.GetByUsernameTx(ctx, u.db, username)
}

func (u *users) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*auth.User, error) {
	return u.getBy(ctx, tx, "username", username)
}

func (u *users) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	return u.getBy(ctx, u.db, "id", id)
}

func (u *users) getBy(ctx context.Context, tx bun.IDB, column string, value any) (*auth.User, error) {
	record := &auth.User{}
	err := tx.NewSelect().
		Model(record).
		Where(fmt.Sprintf("?TableAlias.%s = ?", column), value).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFoundOr(err, value)
	}
	return record, nil
}

func (u *users) UsernameTakenTx(ctx context.Context, tx bun.IDB, username string) (bool, error) {
	return u.exists(ctx, tx, "username", username)
}

func (u *users) EmailTakenTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	return u.exists(ctx, tx, "email", email)
}

func (u *users) exists(ctx context.Context, tx bun.IDB, column, value string) (bool, error) {
	return tx.NewSelect().
		Model((*auth.User)(nil)).
		Where(fmt.Sprintf("?TableAlias.%s = ?", column), value).
		Exists(ctx)
}

func (u *users) RegisterTx(ctx context.Context, tx bun.IDB, user *auth.User) (*auth.User, error) {
	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, translateUniqueViolation(err)
	}
	return user, nil
}
