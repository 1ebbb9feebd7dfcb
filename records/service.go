package records

import (
	"context"

	auth "github.com/goliatone/go-bookquotes-auth"
)

// MaxListSize caps every list response
const MaxListSize = 100

// ListOptions narrows a list query. A zero OwnerID lists every owner.
type ListOptions struct {
	OwnerID int64
	Limit   int
}

// Store persists owned records. Update and Delete only touch rows owned by
// callerID and report ErrRecordNotFound when nothing matched.
type Store[T Record] interface {
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, callerID int64, record T) (T, error)
	Delete(ctx context.Context, callerID, id int64) error
}

// Service applies ownership rules on top of a Store
type Service[T Record] struct {
	store      Store[T]
	logger     auth.Logger
	activity   auth.ActivitySink
	objectType string
}

// NewService wraps store
func NewService[T Record](store Store[T]) *Service[T] {
	return &Service[T]{
		store:      store,
		logger:     auth.DefaultLogger(),
		objectType: "record",
	}
}

func (s *Service[T]) WithLogger(logger auth.Logger) *Service[T] {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink reports writes and denied writes to sink, tagging
// events with objectType.
func (s *Service[T]) WithActivitySink(objectType string, sink auth.ActivitySink) *Service[T] {
	if objectType != "" {
		s.objectType = objectType
	}
	s.activity = sink
	return s
}

// List returns records from every owner, newest first.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx, ListOptions{Limit: MaxListSize})
}

// ListByOwner returns the owner's records, newest first.
func (s *Service[T]) ListByOwner(ctx context.Context, ownerID int64) ([]T, error) {
	if ownerID == 0 {
		return nil, auth.ErrIdentityMissing
	}
	return s.store.List(ctx, ListOptions{OwnerID: ownerID, Limit: MaxListSize})
}

// Create stores record owned by callerID.
func (s *Service[T]) Create(ctx context.Context, callerID int64, record T) (T, error) {
	var zero T

	record.Normalize()
	if err := record.Validate(); err != nil {
		return zero, auth.NewValidationError(err)
	}

	record.SetID(0)
	record.SetOwner(callerID)

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return zero, err
	}

	s.logger.Debug("record %d created by user %d", created.GetID(), callerID)
	s.emit(ctx, auth.ActivityEventRecordCreated, callerID, created.GetID())
	return created, nil
}

// Update loads the record, checks ownership, applies the change and
// persists it. The owner never changes.
func (s *Service[T]) Update(ctx context.Context, callerID, id int64, apply func(T)) (T, error) {
	var zero T

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := auth.Authorize(callerID, current); err != nil {
		s.logger.Info("user %d denied update of record %d owned by %d", callerID, id, current.OwnerID())
		s.emit(ctx, auth.ActivityEventAccessDenied, callerID, id)
		return zero, err
	}

	owner := current.OwnerID()
	apply(current)
	current.SetID(id)
	current.SetOwner(owner)
	current.Normalize()

	if err := current.Validate(); err != nil {
		return zero, auth.NewValidationError(err)
	}

	updated, err := s.store.Update(ctx, callerID, current)
	if err != nil {
		return zero, err
	}

	s.emit(ctx, auth.ActivityEventRecordUpdated, callerID, id)
	return updated, nil
}

// Delete removes the record when callerID owns it.
func (s *Service[T]) Delete(ctx context.Context, callerID, id int64) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(callerID, current); err != nil {
		s.logger.Info("user %d denied delete of record %d owned by %d", callerID, id, current.OwnerID())
		s.emit(ctx, auth.ActivityEventAccessDenied, callerID, id)
		return err
	}

	if err := s.store.Delete(ctx, callerID, id); err != nil {
		return err
	}

	s.emit(ctx, auth.ActivityEventRecordDeleted, callerID, id)
	return nil
}

func (s *Service[T]) emit(ctx context.Context, event auth.ActivityEventType, callerID, id int64) {
	if s.activity == nil {
		return
	}
	auth.RecordActivity(ctx, s.activity, s.logger, auth.ActivityEvent{
		EventType:  event,
		UserID:     callerID,
		ObjectType: s.objectType,
		ObjectID:   id,
	})
}
