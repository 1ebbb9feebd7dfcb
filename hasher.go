package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"io"

	"github.com/goliatone/go-errors"
)

// SaltSize matches the HMAC-SHA512 block size, the salt is the HMAC key.
const SaltSize = 64

// HMACHasher derives credential pairs with HMAC-SHA512 keyed by a random salt.
type HMACHasher struct {
	rand io.Reader
}

var _ Hasher = HMACHasher{}

// NewHMACHasher returns a hasher reading salts from crypto/rand.
func NewHMACHasher() HMACHasher {
	return HMACHasher{rand: rand.Reader}
}

// NewHMACHasherWithSource is used in tests to control the salt source.
func NewHMACHasherWithSource(r io.Reader) HMACHasher {
	return HMACHasher{rand: r}
}

// Hash generates a fresh salt and returns HMAC-SHA512(salt, password).
func (h HMACHasher) Hash(password string) ([]byte, []byte, error) {
	src := h.rand
	if src == nil {
		src = rand.Reader
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(src, salt); err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to read password salt").
			WithTextCode(TextCodeEntropy).
			WithCode(errors.CodeInternal)
	}

	return computeHMAC(password, salt), salt, nil
}

// Verify recomputes the keyed hash and compares it in constant time.
func (h HMACHasher) Verify(password string, hash, salt []byte) bool {
	if len(hash) == 0 || len(salt) == 0 {
		return false
	}
	return hmac.Equal(computeHMAC(password, salt), hash)
}

// HashPassword hashes with the default hasher.
func HashPassword(password string) (hash, salt []byte, err error) {
	return NewHMACHasher().Hash(password)
}

// VerifyPassword verifies with the default hasher.
func VerifyPassword(password string, hash, salt []byte) bool {
	return NewHMACHasher().Verify(password, hash, salt)
}

func computeHMAC(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
