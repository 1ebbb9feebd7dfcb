package auth

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// Users is the credential store
type Users interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	UsernameTakenTx(ctx context.Context, tx bun.IDB, username string) (bool, error)
	EmailTakenTx(ctx context.Context, tx bun.IDB, email string) (bool, error)
	// RegisterTx inserts the user. Unique violations come back as
	// ErrUsernameTaken or ErrEmailTaken.
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
}

// TransactionManager runs a function inside a database transaction
type TransactionManager interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

// RepositoryManager exposes the repositories auth needs
type RepositoryManager interface {
	TransactionManager
	Users() Users
}
