package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	auth "github.com/goliatone/go-bookquotes-auth"
)

// MockConfig implements auth.Config
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetSigningKey() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetSigningKeyID() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetVerificationKeys() map[string]string {
	args := m.Called()
	keys, _ := args.Get(0).(map[string]string)
	return keys
}

func (m *MockConfig) GetTokenExpiration() int {
	return m.Called().Int(0)
}

func (m *MockConfig) GetIssuer() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetAudience() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetContextKey() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetTokenLookup() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetAuthScheme() string {
	return m.Called().String(0)
}

func newMockConfig() *MockConfig {
	mockConfig := new(MockConfig)
	mockConfig.On("GetSigningKey").Return("test-signing-key-test-signing-key")
	mockConfig.On("GetSigningKeyID").Return("")
	mockConfig.On("GetVerificationKeys").Return(nil)
	mockConfig.On("GetTokenExpiration").Return(60)
	mockConfig.On("GetIssuer").Return("test-issuer")
	mockConfig.On("GetAudience").Return("test:audience")
	return mockConfig
}

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, username, password string) (auth.Identity, error) {
	args := m.Called(ctx, username, password)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

// MockUserFinder implements auth.UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

// MockTokenService implements auth.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(username string, userID int64) (string, error) {
	args := m.Called(username, userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(token string) (auth.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(auth.Claims)
	return claims, args.Error(1)
}

// MockLogger implements auth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) { m.Called(format, args) }
func (m *MockLogger) Info(format string, args ...any)  { m.Called(format, args) }
func (m *MockLogger) Warn(format string, args ...any)  { m.Called(format, args) }
func (m *MockLogger) Error(format string, args ...any) { m.Called(format, args) }

func newQuietLogger() *MockLogger {
	logger := new(MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}

// TestIdentity is a simple Identity for tests
type TestIdentity struct {
	id       int64
	username string
	email    string
}

func (t TestIdentity) ID() int64        { return t.id }
func (t TestIdentity) Username() string { return t.username }
func (t TestIdentity) Email() string    { return t.email }

type recordingSink struct {
	events []auth.ActivityEvent
	err    error
}

func (r *recordingSink) Record(_ context.Context, evt auth.ActivityEvent) error {
	r.events = append(r.events, evt)
	return r.err
}
