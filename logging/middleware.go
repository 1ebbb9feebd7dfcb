package logging

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HeaderRequestID carries the request id back to the client
const HeaderRequestID = "X-Request-Id"

type ctxKeyRequestID struct{}

// RequestIDFromContext returns the id stored by RequestLogger
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// RequestLogger logs one line per request with a generated request id.
func RequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()

		c.Set(HeaderRequestID, requestID)
		c.SetUserContext(context.WithValue(c.UserContext(), ctxKeyRequestID{}, requestID))

		entry := log.WithFields(logrus.Fields{
			"http.req.path":   c.Path(),
			"http.req.method": c.Method(),
			"http.req.id":     requestID,
		})
		entry.Debug("request started")

		// errors are rendered here so the logged status is the one sent
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()

		entry.WithFields(logrus.Fields{
			"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
			"http.resp.status":  status,
			"http.resp.bytes":   len(c.Response().Body()),
		}).Info("request complete")

		return nil
	}
}
