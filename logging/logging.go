// Package logging wires logrus into the auth.Logger interface and provides
// the HTTP request logger.
package logging

import (
	"context"
	"io"
	"os"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/activitymap"
	"github.com/sirupsen/logrus"
)

// New builds a logrus logger. format is "json" or "text".
func New(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	if out == nil {
		out = os.Stdout
	}
	log.Out = out

	if format == "text" {
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	} else {
		log.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
		}
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.Level = lvl

	return log
}

// Logger adapts a logrus entry to auth.Logger
type Logger struct {
	entry *logrus.Entry
}

var _ auth.Logger = Logger{}

// Wrap returns an auth.Logger tagged with component
func Wrap(log *logrus.Logger, component string) Logger {
	return Logger{entry: log.WithField("component", component)}
}

func (l Logger) Debug(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l Logger) Info(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l Logger) Warn(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l Logger) Error(format string, args ...any) { l.entry.Errorf(format, args...) }

// Named returns a child logger for another component
func (l Logger) Named(component string) Logger {
	return Logger{entry: l.entry.WithField("component", component)}
}

// ActivitySink writes auth and record activity to the log
func ActivitySink(log *logrus.Logger, opts ...activitymap.Option) auth.ActivitySink {
	return auth.ActivitySinkFunc(func(ctx context.Context, evt auth.ActivityEvent) error {
		fields := logrus.Fields(activitymap.Normalize(evt, opts...).Fields())
		fields["component"] = "activity"
		if id := RequestIDFromContext(ctx); id != "" {
			fields["http.req.id"] = id
		}
		log.WithFields(fields).Info("activity")
		return nil
	})
}
