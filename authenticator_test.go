package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-bookquotes-auth"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()

	mockProvider := new(MockIdentityProvider)
	mockProvider.On("VerifyIdentity", ctx, "alice", "Password1").
		Return(TestIdentity{id: 42, username: "alice"}, nil)

	sink := &recordingSink{}
	tokens := newTestTokenService(t)

	authenticator := auth.NewAuthenticator(mockProvider, tokens).
		WithLogger(newQuietLogger()).
		WithActivitySink(sink)

	res, err := authenticator.Login(ctx, "alice", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, int64(42), res.UserID)

	claims, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject())
	assert.Equal(t, "alice", claims.Name())

	require.Len(t, sink.events, 1)
	assert.Equal(t, auth.ActivityEventLoginSuccess, sink.events[0].EventType)
	assert.Equal(t, int64(42), sink.events[0].UserID)
	assert.False(t, sink.events[0].OccurredAt.IsZero())

	assert.Same(t, tokens, authenticator.TokenService())
	mockProvider.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()

	mockProvider := new(MockIdentityProvider)
	mockProvider.On("VerifyIdentity", ctx, "alice", "nope").
		Return(nil, auth.ErrMismatchedHashAndPassword)

	mockTokens := new(MockTokenService)
	sink := &recordingSink{}

	authenticator := auth.NewAuthenticator(mockProvider, mockTokens).
		WithLogger(newQuietLogger()).
		WithActivitySink(sink)

	res, err := authenticator.Login(ctx, "alice", "nope")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	assert.True(t, auth.IsUnauthorized(err))

	require.Len(t, sink.events, 1)
	assert.Equal(t, auth.ActivityEventLoginFailure, sink.events[0].EventType)
	assert.Equal(t, "alice", sink.events[0].Username)

	mockTokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestLogin_IssueFailure(t *testing.T) {
	ctx := context.Background()

	mockProvider := new(MockIdentityProvider)
	mockProvider.On("VerifyIdentity", ctx, "alice", "Password1").
		Return(TestIdentity{id: 42, username: "alice"}, nil)

	mockTokens := new(MockTokenService)
	mockTokens.On("Issue", "alice", int64(42)).Return("", errors.New("signing failed"))

	authenticator := auth.NewAuthenticator(mockProvider, mockTokens).WithLogger(newQuietLogger())

	res, err := authenticator.Login(ctx, "alice", "Password1")
	assert.Nil(t, res)
	assert.EqualError(t, err, "signing failed")
}

func TestLogin_SinkFailureIsIgnored(t *testing.T) {
	ctx := context.Background()

	mockProvider := new(MockIdentityProvider)
	mockProvider.On("VerifyIdentity", ctx, "alice", "Password1").
		Return(TestIdentity{id: 1, username: "alice"}, nil)

	mockTokens := new(MockTokenService)
	mockTokens.On("Issue", "alice", int64(1)).Return("token", nil)

	logger := newQuietLogger()
	sink := &recordingSink{err: errors.New("sink down")}

	authenticator := auth.NewAuthenticator(mockProvider, mockTokens).
		WithLogger(logger).
		WithActivitySink(sink)

	res, err := authenticator.Login(ctx, "alice", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "token", res.Token)
	logger.AssertCalled(t, "Warn", mock.Anything, mock.Anything)
}
