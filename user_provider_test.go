package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-bookquotes-auth"
)

func storedUser(t *testing.T, id int64, username, password string) *auth.User {
	t.Helper()
	hash, salt, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &auth.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		PasswordSalt: salt,
	}
}

func TestUserProvider_VerifyIdentity(t *testing.T) {
	ctx := context.Background()
	alice := storedUser(t, 3, "alice", "Password1")

	finder := new(MockUserFinder)
	finder.On("GetByUsername", ctx, "alice").Return(alice, nil)
	finder.On("GetByUsername", ctx, "ghost").Return(nil, auth.ErrRecordNotFound)
	finder.On("GetByUsername", ctx, "nobody").Return(nil, nil)
	finder.On("GetByUsername", ctx, "broken").Return(nil, errors.New("disk on fire"))

	provider := auth.NewUserProvider(finder).WithLogger(newQuietLogger())

	t.Run("valid credentials", func(t *testing.T) {
		identity, err := provider.VerifyIdentity(ctx, "alice", "Password1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), identity.ID())
		assert.Equal(t, "alice", identity.Username())
		assert.Equal(t, "alice@example.com", identity.Email())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := provider.VerifyIdentity(ctx, "alice", "Password2")
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		_, err := provider.VerifyIdentity(ctx, "ghost", "Password1")
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)

		_, err = provider.VerifyIdentity(ctx, "nobody", "Password1")
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("store failure", func(t *testing.T) {
		_, err := provider.VerifyIdentity(ctx, "broken", "Password1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
		assert.False(t, auth.IsUnauthorized(err))
	})

	finder.AssertExpectations(t)
}

type fixedHasher struct {
	ok bool
}

func (f fixedHasher) Hash(string) ([]byte, []byte, error) { return []byte("h"), []byte("s"), nil }
func (f fixedHasher) Verify(string, []byte, []byte) bool  { return f.ok }

func TestUserProvider_WithHasher(t *testing.T) {
	ctx := context.Background()
	finder := new(MockUserFinder)
	finder.On("GetByUsername", ctx, "alice").Return(&auth.User{ID: 1, Username: "alice"}, nil)

	provider := auth.NewUserProvider(finder).
		WithLogger(newQuietLogger()).
		WithHasher(fixedHasher{ok: true})

	identity, err := provider.VerifyIdentity(ctx, "alice", "anything")
	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.ID())
}
