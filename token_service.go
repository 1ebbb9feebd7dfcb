package auth

import (
	"strconv"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultTokenExpiration is the token lifetime in minutes
const DefaultTokenExpiration = 60

// DefaultSigningKeyID is used for the kid header when none is configured
const DefaultSigningKeyID = "default"

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey      []byte
	keyID           string
	tokenExpiration int
	issuer          string
	audience        string
	keys            *keyfunc.JWKS
	inboundClaimMap map[string]string
	now             func() time.Time
	logger          Logger
}

var _ TokenService = (*TokenServiceImpl)(nil)

// TokenServiceOption configures a TokenServiceImpl
type TokenServiceOption func(*TokenServiceImpl)

// WithClock overrides the time source used for iat, exp and validation
func WithClock(now func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if now != nil {
			ts.now = now
		}
	}
}

// WithInboundClaimMap renames claim keys after a token is verified.
// Nothing is renamed unless a mapping is given.
func WithInboundClaimMap(mapping map[string]string) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		ts.inboundClaimMap = make(map[string]string, len(mapping))
		for k, v := range mapping {
			ts.inboundClaimMap[k] = v
		}
	}
}

// WithTokenLogger sets the logger
func WithTokenLogger(logger Logger) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// NewTokenService creates a new TokenService instance. An empty signing
// key is rejected, we never sign with an empty secret.
func NewTokenService(cfg Config, opts ...TokenServiceOption) (*TokenServiceImpl, error) {
	if cfg == nil || cfg.GetSigningKey() == "" {
		return nil, ErrMissingSigningKey
	}

	expiration := cfg.GetTokenExpiration()
	if expiration <= 0 {
		expiration = DefaultTokenExpiration
	}

	keyID := cfg.GetSigningKeyID()
	if keyID == "" {
		keyID = DefaultSigningKeyID
	}

	ts := &TokenServiceImpl{
		signingKey:      []byte(cfg.GetSigningKey()),
		keyID:           keyID,
		tokenExpiration: expiration,
		issuer:          cfg.GetIssuer(),
		audience:        cfg.GetAudience(),
		now:             time.Now,
		logger:          defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}

	givenKeys := map[string]keyfunc.GivenKey{
		keyID: keyfunc.NewGivenCustom(ts.signingKey, keyfunc.GivenKeyOptions{
			Algorithm: jwt.SigningMethodHS256.Alg(),
		}),
	}
	for kid, key := range cfg.GetVerificationKeys() {
		if kid == keyID || key == "" {
			continue
		}
		givenKeys[kid] = keyfunc.NewGivenCustom([]byte(key), keyfunc.GivenKeyOptions{
			Algorithm: jwt.SigningMethodHS256.Alg(),
		})
	}
	ts.keys = keyfunc.NewGiven(givenKeys)

	return ts, nil
}

// Issue mints a token whose subject is the decimal user id
func (ts *TokenServiceImpl) Issue(username string, userID int64) (string, error) {
	now := ts.now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			Audience:  jwt.ClaimStrings{ts.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Lifetime())),
			ID:        uuid.NewString(),
		},
		Name: username,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary claims with the current key.
func (ts *TokenServiceImpl) SignClaims(claims jwt.Claims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = ts.keyID

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate checks signature, algorithm, issuer, audience and expiry
func (ts *TokenServiceImpl) Validate(tokenString string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ts.issuer),
		jwt.WithAudience(ts.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(ts.now),
	)

	mapClaims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, mapClaims, ts.keys.Keyfunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		ts.logger.Debug("token rejected: %s", err)
		return nil, ErrTokenMalformed
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return Claims(mapClaims).remap(ts.inboundClaimMap), nil
}

// Lifetime is the configured token lifetime
func (ts *TokenServiceImpl) Lifetime() time.Duration {
	return time.Duration(ts.tokenExpiration) * time.Minute
}
