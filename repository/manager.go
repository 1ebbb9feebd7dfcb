package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/records"
	"github.com/uptrace/bun"
)

// Manager exposes every repository and the transaction runner
type Manager struct {
	db     *bun.DB
	users  auth.Users
	books  records.Store[*records.Book]
	quotes records.Store[*records.Quote]
}

var _ auth.RepositoryManager = (*Manager)(nil)

func NewRepositoryManager(db *bun.DB) *Manager {
	return &Manager{
		db:     db,
		users:  NewUsersRepository(db),
		books:  NewBooksRepository(db),
		quotes: NewQuotesRepository(db),
	}
}

func (m *Manager) Validate() error {
	if m.db == nil {
		return errors.New("repository db should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.books == nil || m.quotes == nil {
		return errors.New("repository records should be initialized")
	}

	return nil
}

func (m *Manager) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m *Manager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m *Manager) Users() auth.Users {
	return m.users
}

func (m *Manager) Books() records.Store[*records.Book] {
	return m.books
}

func (m *Manager) Quotes() records.Store[*records.Quote] {
	return m.quotes
}

func (m *Manager) DB() *bun.DB {
	return m.db
}
