package repository

import (
	"context"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/records"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ModelHandlers describe how the generic repository builds and updates a
// record type.
type ModelHandlers[T records.Record] struct {
	NewRecord func() T
	// UpdateColumns are the content columns written by Update
	UpdateColumns []string
}

type ownedRepository[T records.Record] struct {
	db       bun.IDB
	handlers ModelHandlers[T]
}

var _ records.Store[*records.Book] = (*ownedRepository[*records.Book])(nil)

// NewOwnedRepository returns a store for records that carry a user_id
// owner column and a User relation.
func NewOwnedRepository[T records.Record](db bun.IDB, handlers ModelHandlers[T]) records.Store[T] {
	return &ownedRepository[T]{db: db, handlers: handlers}
}

func (r *ownedRepository[T]) List(ctx context.Context, opts records.ListOptions) ([]T, error) {
	out := make([]T, 0)
	q := r.db.NewSelect().
		Model(&out).
		Relation("User").
		OrderExpr("?TableAlias.id DESC")

	if opts.OwnerID != 0 {
		q = q.Where("?TableAlias.user_id = ?", opts.OwnerID)
	}

	limit := opts.Limit
	if limit <= 0 || limit > records.MaxListSize {
		limit = records.MaxListSize
	}

	if err := q.Limit(limit).Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list records")
	}

	return out, nil
}

func (r *ownedRepository[T]) Get(ctx context.Context, id int64) (T, error) {
	record := r.handlers.NewRecord()
	err := r.db.NewSelect().
		Model(record).
		Relation("User").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		var zero T
		return zero, notFoundOr(err, id)
	}
	return record, nil
}

func (r *ownedRepository[T]) Create(ctx context.Context, record T) (T, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		var zero T
		return zero, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create record")
	}
	return r.Get(ctx, record.GetID())
}

func (r *ownedRepository[T]) Update(ctx context.Context, callerID int64, record T) (T, error) {
	var zero T

	res, err := r.db.NewUpdate().
		Model(record).
		Column(r.handlers.UpdateColumns...).
		Where("id = ?", record.GetID()).
		Where("user_id = ?", callerID).
		Exec(ctx)
	if err != nil {
		return zero, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update record")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return zero, auth.ErrRecordNotFound
	}

	return r.Get(ctx, record.GetID())
}

func (r *ownedRepository[T]) Delete(ctx context.Context, callerID, id int64) error {
	res, err := r.db.NewDelete().
		Model(r.handlers.NewRecord()).
		Where("id = ?", id).
		Where("user_id = ?", callerID).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete record")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return auth.ErrRecordNotFound
	}

	return nil
}

// NewBooksRepository returns the books store
func NewBooksRepository(db bun.IDB) records.Store[*records.Book] {
	return NewOwnedRepository(db, ModelHandlers[*records.Book]{
		NewRecord:     func() *records.Book { return &records.Book{} },
		UpdateColumns: []string{"title", "author", "published"},
	})
}

// NewQuotesRepository returns the quotes store
func NewQuotesRepository(db bun.IDB) records.Store[*records.Quote] {
	return NewOwnedRepository(db, ModelHandlers[*records.Quote]{
		NewRecord:     func() *records.Quote { return &records.Quote{} },
		UpdateColumns: []string{"text", "author", "source"},
	})
}
