package api

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/logging"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message  string         `json:"message"`
	Category string         `json:"category,omitempty"`
	TextCode string         `json:"textCode,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// ErrorHandler renders rich errors as JSON with the matching status code.
// Authentication failures get a generic body.
func ErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(ErrorResponse{
					Error: ErrorBody{Message: fiberErr.Message},
				})
			}

			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := statusFor(richErr)

		if status >= http.StatusInternalServerError {
			logger.Error("request %s %s [%s] failed: %s details=%s", c.Method(), c.Path(),
				logging.RequestIDFromContext(c.UserContext()), err, print.MaybePrettyJSON(richErr.Metadata))
			return c.Status(status).JSON(ErrorResponse{
				Error: ErrorBody{Message: "An unexpected server error occurred"},
			})
		}

		logger.Debug("request %s %s rejected: %s (%s)", c.Method(), c.Path(), richErr.Message, richErr.TextCode)

		if status == http.StatusUnauthorized {
			return c.Status(status).JSON(ErrorResponse{
				Error: ErrorBody{Message: "Unauthorized"},
			})
		}

		body := ErrorBody{
			Message:  richErr.Message,
			Category: richErr.Category.String(),
			TextCode: richErr.TextCode,
		}
		if fields, ok := richErr.Metadata["fields"].(map[string]any); ok {
			body.Fields = fields
		}

		return c.Status(status).JSON(ErrorResponse{Error: body})
	}
}

func statusFor(richErr *errors.Error) int {
	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	}

	if richErr.Code >= 400 && richErr.Code < 600 {
		return richErr.Code
	}

	return http.StatusInternalServerError
}
