package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/api"
	"github.com/goliatone/go-bookquotes-auth/records"
	"github.com/goliatone/go-bookquotes-auth/repository"
)

type testConfig struct{}

func (testConfig) GetSigningKey() string                  { return "api-test-secret-api-test-secret-0000" }
func (testConfig) GetSigningKeyID() string                { return "" }
func (testConfig) GetVerificationKeys() map[string]string { return nil }
func (testConfig) GetTokenExpiration() int                { return 60 }
func (testConfig) GetIssuer() string                      { return "bookquotes" }
func (testConfig) GetAudience() string                    { return "bookquotes-clients" }
func (testConfig) GetContextKey() string                  { return "user" }
func (testConfig) GetTokenLookup() string                 { return "" }
func (testConfig) GetAuthScheme() string                  { return "Bearer" }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type harness struct {
	t      *testing.T
	app    *fiber.App
	tokens *auth.TokenServiceImpl
	repo   *repository.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := repository.Open(repository.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.CreateSchema(context.Background(), db))

	repo := repository.NewRepositoryManager(db)

	tokens, err := auth.NewTokenService(testConfig{}, auth.WithTokenLogger(nopLogger{}))
	require.NoError(t, err)

	provider := auth.NewUserProvider(repo.Users()).WithLogger(nopLogger{})

	app := api.NewApp(api.Dependencies{
		Config:        testConfig{},
		Tokens:        tokens,
		Registrar:     auth.NewRegisterUserHandler(repo).WithLogger(nopLogger{}),
		Authenticator: auth.NewAuthenticator(provider, tokens).WithLogger(nopLogger{}),
		Books:         records.NewService(repo.Books()).WithLogger(nopLogger{}),
		Quotes:        records.NewService(repo.Quotes()).WithLogger(nopLogger{}),
		Prefix:        "/api",
	})

	return &harness{t: t, app: app, tokens: tokens, repo: repo}
}

// do sends a JSON request and decodes the JSON response into out when
// out is not nil.
func (h *harness) do(method, path, token string, body any, out any) int {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(h.t, err)

	if out != nil && len(raw) > 0 {
		require.NoError(h.t, json.Unmarshal(raw, out), string(raw))
	}

	return res.StatusCode
}

func (h *harness) register(username, password string) api.RegisterResponse {
	h.t.Helper()

	var out api.RegisterResponse
	status := h.do(http.MethodPost, "/auth/register", "", map[string]any{
		"username":        username,
		"password":        password,
		"confirmPassword": password,
	}, &out)
	require.Equal(h.t, http.StatusOK, status)
	return out
}

func (h *harness) login(username, password string) auth.LoginResult {
	h.t.Helper()

	var out auth.LoginResult
	status := h.do(http.MethodPost, "/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	}, &out)
	require.Equal(h.t, http.StatusOK, status)
	require.NotEmpty(h.t, out.Token)
	return out
}

func (h *harness) signup(username string) (auth.LoginResult, string) {
	h.t.Helper()
	h.register(username, "Password1")
	res := h.login(username, "Password1")
	return res, res.Token
}
