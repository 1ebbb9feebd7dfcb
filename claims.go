package auth

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ClaimSubject is the registered subject claim carrying the user id.
	ClaimSubject = "sub"
	// ClaimName carries the username.
	ClaimName = "name"
	// ClaimNameIdentifier is the long form identifier some frameworks
	// rename "sub" to when reading tokens.
	ClaimNameIdentifier = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
)

// ClaimLookup is the read side of a verified claim set
type ClaimLookup interface {
	Lookup(key string) (string, bool)
}

// TokenClaims is the payload we sign at login
type TokenClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// Claims is a verified claim set. It is only produced by a validator.
type Claims map[string]any

var _ ClaimLookup = Claims{}

// Lookup returns the claim rendered as a string. Integral numbers are
// rendered in base 10 so numeric subjects resolve like string ones.
func (c Claims) Lookup(key string) (string, bool) {
	raw, ok := c[key]
	if !ok || raw == nil {
		return "", false
	}

	switch v := raw.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		if v != float64(int64(v)) {
			return "", false
		}
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// Subject returns the subject claim
func (c Claims) Subject() string {
	s, _ := c.Lookup(ClaimSubject)
	return s
}

// Name returns the username claim
func (c Claims) Name() string {
	s, _ := c.Lookup(ClaimName)
	return s
}

// Expires returns the expiration time
func (c Claims) Expires() time.Time {
	return c.numericDate("exp")
}

// IssuedAt returns the issued at time
func (c Claims) IssuedAt() time.Time {
	return c.numericDate("iat")
}

func (c Claims) numericDate(key string) time.Time {
	switch v := c[key].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}
		}
		return time.Unix(n, 0)
	default:
		return time.Time{}
	}
}

// remap renames claim keys according to mapping, returning a new set.
func (c Claims) remap(mapping map[string]string) Claims {
	if len(mapping) == 0 {
		return c
	}

	out := make(Claims, len(c))
	for k, v := range c {
		if to, ok := mapping[k]; ok && to != "" {
			out[to] = v
			continue
		}
		out[k] = v
	}
	return out
}
