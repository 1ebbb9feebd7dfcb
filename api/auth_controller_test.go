package api_test

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/api"
)

func TestRegister(t *testing.T) {
	h := newHarness(t)

	var out api.RegisterResponse
	status := h.do(http.MethodPost, "/auth/register", "", map[string]any{
		"username":        "alice",
		"email":           "alice@example.com",
		"password":        "Password1",
		"confirmPassword": "Password1",
	}, &out)

	require.Equal(t, http.StatusOK, status)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "alice", out.Username)
	require.NotNil(t, out.Email)
	assert.Equal(t, "alice@example.com", *out.Email)

	t.Run("without email", func(t *testing.T) {
		res := h.register("bob", "Password1")
		assert.Nil(t, res.Email)
	})
}

func TestRegister_Validation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{
			name:  "short username",
			body:  map[string]any{"username": "al", "password": "Password1", "confirmPassword": "Password1"},
			field: "username",
		},
		{
			name:  "blank username",
			body:  map[string]any{"username": "   ", "password": "Password1", "confirmPassword": "Password1"},
			field: "username",
		},
		{
			name:  "short password",
			body:  map[string]any{"username": "alice", "password": "abc", "confirmPassword": "abc"},
			field: "password",
		},
		{
			name:  "mismatched confirmation",
			body:  map[string]any{"username": "alice", "password": "Password1", "confirmPassword": "Password2"},
			field: "confirmPassword",
		},
		{
			name:  "bad email",
			body:  map[string]any{"username": "alice", "email": "nope", "password": "Password1", "confirmPassword": "Password1"},
			field: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out api.ErrorResponse
			status := h.do(http.MethodPost, "/auth/register", "", tt.body, &out)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, auth.TextCodeValidation, out.Error.TextCode)
			assert.Contains(t, out.Error.Fields, tt.field)
		})
	}
}

func TestRegister_Conflicts(t *testing.T) {
	h := newHarness(t)

	status := h.do(http.MethodPost, "/auth/register", "", map[string]any{
		"username": "alice", "email": "alice@example.com",
		"password": "Password1", "confirmPassword": "Password1",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	t.Run("username taken", func(t *testing.T) {
		var out api.ErrorResponse
		status := h.do(http.MethodPost, "/auth/register", "", map[string]any{
			"username": "alice", "password": "Password1", "confirmPassword": "Password1",
		}, &out)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, auth.TextCodeUsernameTaken, out.Error.TextCode)
		assert.Equal(t, "Username is already taken.", out.Error.Message)
	})

	t.Run("email taken", func(t *testing.T) {
		var out api.ErrorResponse
		status := h.do(http.MethodPost, "/auth/register", "", map[string]any{
			"username": "alicia", "email": "alice@example.com",
			"password": "Password1", "confirmPassword": "Password1",
		}, &out)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, auth.TextCodeEmailTaken, out.Error.TextCode)
	})
}

func TestRegister_Concurrent(t *testing.T) {
	h := newHarness(t)

	const attempts = 8
	statuses := make([]int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i] = h.do(http.MethodPost, "/auth/register", "", map[string]any{
				"username": "racer", "password": "Password1", "confirmPassword": "Password1",
			}, nil)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, status := range statuses {
		switch status {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d", status)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	registered := h.register("alice", "Password1")

	res := h.login("alice", "Password1")
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, registered.ID, res.UserID)

	claims, err := h.tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name())

	id, err := auth.ResolveUserID(claims)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)
}

func TestLogin_Failures(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "Password1")

	tests := []struct {
		name     string
		body     map[string]any
		expected int
	}{
		{"wrong password", map[string]any{"username": "alice", "password": "Password2"}, http.StatusUnauthorized},
		{"unknown user", map[string]any{"username": "nobody", "password": "Password1"}, http.StatusUnauthorized},
		{"missing password", map[string]any{"username": "alice"}, http.StatusBadRequest},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out api.ErrorResponse
			status := h.do(http.MethodPost, "/auth/login", "", tt.body, &out)
			assert.Equal(t, tt.expected, status)
			if status == http.StatusUnauthorized {
				assert.Empty(t, out.Error.TextCode)
				bodies = append(bodies, out.Error.Message)
			}
		})
	}

	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestLogin_UnderPrefix(t *testing.T) {
	h := newHarness(t)
	h.register("alice", "Password1")

	var out auth.LoginResult
	status := h.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice", "password": "Password1",
	}, &out)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Count(out.Token, ".") == 2)
}
