package auth

import (
	"strconv"
	"strings"
)

// ResolveUserID reads the caller id from verified claims. The subject
// claim is tried first, then the long form name identifier.
func ResolveUserID(claims ClaimLookup) (int64, error) {
	if claims == nil {
		return 0, ErrIdentityMissing
	}

	for _, key := range []string{ClaimSubject, ClaimNameIdentifier} {
		raw, ok := claims.Lookup(key)
		if !ok {
			continue
		}
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return id, nil
		}
	}

	return 0, ErrIdentityMissing
}
