// Package auth is responsible for authentication: credential hashing, the
// signed session token lifecycle, the session cookie transport, the session
// middleware, and the register/login/logout operations.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher one-way transforms plaintext passwords into storable bcrypt
// hashes and verifies plaintexts against stored hashes. It is stateless apart
// from its configured work factor.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt work factor.
// A cost below bcrypt's minimum falls back to the library default (10).
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plaintext. An empty string is a
// valid (if weak) password; input validation belongs to the handler layer.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. It never returns
// an error: any mismatch, including a malformed stored hash, is false.
// bcrypt's comparison is constant-time over the hash output.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
