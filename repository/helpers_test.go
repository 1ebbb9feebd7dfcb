package repository_test

import (
	"context"
	"fmt"
	"testing"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/repository"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) *repository.Manager {
	t.Helper()

	db, err := repository.Open(repository.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repository.CreateSchema(context.Background(), db))

	m := repository.NewRepositoryManager(db)
	require.NoError(t, m.Validate())
	return m
}

func seedUser(t *testing.T, m *repository.Manager, username string) *auth.User {
	t.Helper()

	hash, salt, err := auth.HashPassword("password1")
	require.NoError(t, err)

	user, err := m.Users().RegisterTx(context.Background(), m.DB(), &auth.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	return user
}
