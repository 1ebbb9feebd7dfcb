package repository

import (
	"database/sql"
	"errors"
	"strings"

	auth "github.com/goliatone/go-bookquotes-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// translateUniqueViolation maps a users unique constraint failure to the
// matching conflict error. Other errors are returned unchanged.
func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") || strings.Contains(pgErr.Detail, "(email)") {
			return auth.ErrEmailTaken
		}
		return auth.ErrUsernameTaken
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		if strings.Contains(msg, "users.email") {
			return auth.ErrEmailTaken
		}
		if strings.Contains(msg, "users.username") {
			return auth.ErrUsernameTaken
		}
	}

	return err
}

func notFoundOr(err error, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return auth.ErrRecordNotFound
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "database query failed").
		WithMetadata(map[string]any{"id": id})
}
