package auth_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"testing"

	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy pool exhausted")
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "ascii password", password: "securePassword123!"},
		{name: "unicode password", password: "contraseña-ñandú"},
		{name: "empty password", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, salt, err := auth.HashPassword(tt.password)
			require.NoError(t, err)

			assert.Len(t, salt, auth.SaltSize)
			assert.Len(t, hash, sha512.Size)
			assert.True(t, auth.VerifyPassword(tt.password, hash, salt))
		})
	}
}

func TestHashPassword_UsesSaltAsKey(t *testing.T) {
	salt := bytes.Repeat([]byte{0x2a}, auth.SaltSize)
	hasher := auth.NewHMACHasherWithSource(bytes.NewReader(salt))

	hash, gotSalt, err := hasher.Hash("password1")
	require.NoError(t, err)

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte("password1"))

	assert.Equal(t, salt, gotSalt)
	assert.Equal(t, mac.Sum(nil), hash)
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	h1, s1, err := auth.HashPassword("same-password")
	require.NoError(t, err)
	h2, s2, err := auth.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}

func TestHashPassword_EntropyFailure(t *testing.T) {
	hasher := auth.NewHMACHasherWithSource(failingReader{})

	hash, salt, err := hasher.Hash("password1")

	require.Error(t, err)
	assert.Nil(t, hash)
	assert.Nil(t, salt)
	assert.True(t, auth.HasTextCode(err, auth.TextCodeEntropy))
}

func TestVerifyPassword(t *testing.T) {
	hash, salt, err := auth.HashPassword("testPassword123!")
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		assert.True(t, auth.VerifyPassword("testPassword123!", hash, salt))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.False(t, auth.VerifyPassword("testPassword123", hash, salt))
	})

	t.Run("case matters", func(t *testing.T) {
		assert.False(t, auth.VerifyPassword("TESTPASSWORD123!", hash, salt))
	})

	t.Run("wrong salt", func(t *testing.T) {
		other := make([]byte, len(salt))
		copy(other, salt)
		other[0] ^= 0xff
		assert.False(t, auth.VerifyPassword("testPassword123!", hash, other))
	})

	t.Run("empty stored values", func(t *testing.T) {
		assert.False(t, auth.VerifyPassword("testPassword123!", nil, salt))
		assert.False(t, auth.VerifyPassword("testPassword123!", hash, nil))
	})
}
