package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated user
type Identity interface {
	ID() int64
	Username() string
	Email() string
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningKeyID() string
	GetVerificationKeys() map[string]string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() string
	GetContextKey() string
	GetTokenLookup() string
	GetAuthScheme() string
}

// TokenService issues and validates bearer tokens
type TokenService interface {
	Issue(username string, userID int64) (string, error)
	Validate(tokenString string) (Claims, error)
}

// Hasher derives and checks credential pairs
type Hasher interface {
	Hash(password string) (hash, salt []byte, err error)
	Verify(password string, hash, salt []byte) bool
}

// IdentityProvider ensure we have a store to retrieve auth identity
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, username, password string) (Identity, error)
}

// Authenticator logs users in
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// LoginResult is what a successful login hands back to the caller
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

// DefaultLogger returns the stdout logger used when none is configured
func DefaultLogger() Logger {
	return defLogger{}
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
