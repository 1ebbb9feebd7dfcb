// Package activitymap flattens activity events into a transport agnostic
// shape that log sinks and downstream consumers can index.
package activitymap

import (
	"strconv"
	"strings"
	"time"

	auth "github.com/goliatone/go-bookquotes-auth"
)

const (
	// MetadataKeyUsername stores the username attached to the event.
	MetadataKeyUsername = "username"
)

const (
	defaultAuthChannel   = "auth"
	defaultRecordChannel = "records"
	defaultObjectType    = "user"
	defaultActorID       = "anonymous"
)

// Normalized is the flattened activity record
type Normalized struct {
	ActorID    string         `json:"actor_id"`
	Verb       string         `json:"verb"`
	ObjectType string         `json:"object_type,omitempty"`
	ObjectID   string         `json:"object_id,omitempty"`
	Channel    string         `json:"channel,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Option customizes normalization behavior.
type Option func(*normalizeOptions)

type normalizeOptions struct {
	channel       string
	actorFallback string
	now           func() time.Time
}

// Normalize converts an auth.ActivityEvent into a Normalized record. User
// events are their own object, record events point at the record.
func Normalize(event auth.ActivityEvent, opts ...Option) Normalized {
	options := normalizeOptions{
		actorFallback: defaultActorID,
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	actorID := options.actorFallback
	if event.UserID > 0 {
		actorID = strconv.FormatInt(event.UserID, 10)
	}

	objectType := strings.TrimSpace(event.ObjectType)
	objectID := event.ObjectID
	channel := defaultRecordChannel
	if objectType == "" {
		objectType = defaultObjectType
		objectID = event.UserID
		channel = defaultAuthChannel
	}
	if options.channel != "" {
		channel = options.channel
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = options.now().UTC()
	}

	out := Normalized{
		ActorID:    actorID,
		Verb:       string(event.EventType),
		ObjectType: objectType,
		Channel:    channel,
		Metadata:   normalizeMetadata(event),
		OccurredAt: occurredAt,
	}
	if objectID > 0 {
		out.ObjectID = strconv.FormatInt(objectID, 10)
	}

	return out
}

// WithChannel forces the channel for every normalized record.
func WithChannel(channel string) Option {
	return func(opts *normalizeOptions) {
		opts.channel = strings.TrimSpace(channel)
	}
}

// WithActorFallback sets the actor id used when the event has no user.
func WithActorFallback(actorID string) Option {
	return func(opts *normalizeOptions) {
		if actorID = strings.TrimSpace(actorID); actorID != "" {
			opts.actorFallback = actorID
		}
	}
}

// WithClock sets the time source for events without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(opts *normalizeOptions) {
		if now != nil {
			opts.now = now
		}
	}
}

// Fields returns the record as flat log fields
func (n Normalized) Fields() map[string]any {
	fields := map[string]any{
		"activity.actor":   n.ActorID,
		"activity.verb":    n.Verb,
		"activity.channel": n.Channel,
		"activity.at":      n.OccurredAt,
	}
	if n.ObjectType != "" {
		fields["activity.object.type"] = n.ObjectType
	}
	if n.ObjectID != "" {
		fields["activity.object.id"] = n.ObjectID
	}
	for k, v := range n.Metadata {
		fields["activity.meta."+k] = v
	}
	return fields
}

func normalizeMetadata(event auth.ActivityEvent) map[string]any {
	metadata := cloneMap(event.Metadata)

	if username := strings.TrimSpace(event.Username); username != "" {
		if metadata == nil {
			metadata = map[string]any{}
		}
		if _, exists := metadata[MetadataKeyUsername]; !exists {
			metadata[MetadataKeyUsername] = username
		}
	}

	return metadata
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
