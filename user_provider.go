package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserFinder is the store lookup the provider needs
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// UserProvider verifies credentials against the user store
type UserProvider struct {
	store  UserFinder
	hasher Hasher
	logger Logger
}

var _ IdentityProvider = (*UserProvider)(nil)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserFinder) *UserProvider {
	return &UserProvider{
		store:  store,
		hasher: NewHMACHasher(),
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

func (u *UserProvider) WithHasher(h Hasher) *UserProvider {
	if h != nil {
		u.hasher = h
	}
	return u
}

// VerifyIdentity will find the user, compare to the password, and return identity.
// Unknown users and wrong passwords fail the same way.
func (u *UserProvider) VerifyIdentity(ctx context.Context, username, password string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if !u.hasher.Verify(password, user.PasswordHash, user.PasswordSalt) {
		u.logger.Debug("password mismatch for user %d", user.ID)
		return nil, ErrMismatchedHashAndPassword
	}

	return user.Identity(), nil
}
