package auth

import (
	"context"
)

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the verified Claims in the given context
func WithClaimsContext(r context.Context, claims Claims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the Claims from the standard context
func GetClaims(ctx context.Context) (Claims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(Claims)
	return raw, ok
}

// UserIDFromContext resolves the caller id from claims stored by the
// bearer middleware.
func UserIDFromContext(ctx context.Context) (int64, error) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return 0, ErrIdentityMissing
	}
	return ResolveUserID(claims)
}
