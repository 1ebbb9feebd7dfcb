package auth

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventUserRegistered ActivityEventType = "auth.user.registered"
	ActivityEventLoginSuccess   ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure   ActivityEventType = "auth.login.failure"
	ActivityEventRecordCreated  ActivityEventType = "record.created"
	ActivityEventRecordUpdated  ActivityEventType = "record.updated"
	ActivityEventRecordDeleted  ActivityEventType = "record.deleted"
	ActivityEventAccessDenied   ActivityEventType = "record.access.denied"
)

// ActivityEvent captures audit-friendly information about an action.
type ActivityEvent struct {
	EventType ActivityEventType
	UserID    int64
	Username  string
	// ObjectType and ObjectID name the record acted on, empty for user events
	ObjectType string
	ObjectID   int64
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}

// RecordActivity hands evt to sink. It is best effort, a failing sink
// never fails the caller.
func RecordActivity(ctx context.Context, sink ActivitySink, logger Logger, evt ActivityEvent) {
	recordActivity(ctx, normalizeActivitySink(sink), logger, evt)
}

// recordActivity is best effort, a failing sink never fails the caller.
func recordActivity(ctx context.Context, sink ActivitySink, logger Logger, evt ActivityEvent) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}
	if err := sink.Record(ctx, evt); err != nil && logger != nil {
		logger.Warn("activity sink failed for %s: %s", evt.EventType, err)
	}
}
