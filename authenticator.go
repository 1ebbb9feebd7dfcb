package auth

import (
	"context"
)

type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
	activitySink ActivitySink
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, tokenService TokenService) *Auther {
	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and mints a bearer token for the user.
func (s *Auther) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	identity, err := s.provider.VerifyIdentity(ctx, username, password)
	if err != nil {
		s.logger.Info("login rejected for %q: %s", username, err)
		recordActivity(ctx, s.activitySink, s.logger, ActivityEvent{
			EventType: ActivityEventLoginFailure,
			Username:  username,
			Metadata:  map[string]any{"error": err.Error()},
		})
		return nil, err
	}

	if identity == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	token, err := s.tokenService.Issue(identity.Username(), identity.ID())
	if err != nil {
		s.logger.Error("login failed to issue token for user %d: %s", identity.ID(), err)
		return nil, err
	}

	recordActivity(ctx, s.activitySink, s.logger, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		UserID:    identity.ID(),
		Username:  identity.Username(),
	})

	return &LoginResult{
		Token:    token,
		Username: identity.Username(),
		UserID:   identity.ID(),
	}, nil
}
