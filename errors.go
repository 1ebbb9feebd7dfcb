package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

const (
	TextCodeValidation         = "VALIDATION_FAILED"
	TextCodeUsernameTaken      = "USERNAME_TAKEN"
	TextCodeEmailTaken         = "EMAIL_TAKEN"
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeIdentityMissing    = "IDENTITY_MISSING"
	TextCodeForbidden          = "FORBIDDEN"
	TextCodeRecordNotFound     = "RECORD_NOT_FOUND"
	TextCodeMissingSigningKey  = "MISSING_SIGNING_KEY"
	TextCodeEntropy            = "ENTROPY_UNAVAILABLE"
)

// ErrUsernameTaken is returned when registering an existing username.
var ErrUsernameTaken = errors.New("Username is already taken.", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrEmailTaken is returned when registering an email already in use.
var ErrEmailTaken = errors.New("Email is already in-use.", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrMismatchedHashAndPassword covers both unknown usernames and bad
// passwords so callers cannot tell them apart.
var ErrMismatchedHashAndPassword = errors.New("Username or password is incorrect.", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for tokens past their exp claim.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail any other check.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrIdentityMissing is returned when verified claims carry no usable user id.
var ErrIdentityMissing = errors.New("user id claim missing or invalid", errors.CategoryAuth).
	WithTextCode(TextCodeIdentityMissing).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when a caller mutates a record it does not own.
var ErrForbidden = errors.New("you do not own this record", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrRecordNotFound is returned when a record id does not exist.
var ErrRecordNotFound = errors.New("record not found", errors.CategoryNotFound).
	WithTextCode(TextCodeRecordNotFound).
	WithCode(errors.CodeNotFound)

// ErrMissingSigningKey aborts startup when no signing key is configured.
var ErrMissingSigningKey = errors.New("jwt signing key is not configured", errors.CategoryInternal).
	WithTextCode(TextCodeMissingSigningKey).
	WithCode(errors.CodeInternal)

// NewValidationError builds a 400 error carrying per field messages.
func NewValidationError(err error) *errors.Error {
	fields := map[string]any{}
	if verrs, ok := err.(validation.Errors); ok {
		for k, v := range verrs {
			fields[k] = v.Error()
		}
	}

	return errors.Wrap(err, errors.CategoryValidation, "One or more validation errors occurred.").
		WithTextCode(TextCodeValidation).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"fields": fields})
}

// HasTextCode reports whether err carries the given text code.
func HasTextCode(err error, code string) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

// IsUnauthorized reports whether err maps to a 401 response.
func IsUnauthorized(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth
}
