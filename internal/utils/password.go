package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when the configured cost is
// zero or out of bcrypt's accepted range. Deliberately above the library
// default to keep offline brute force expensive.
const DefaultBcryptCost = 12

// HashPassword derives a salted bcrypt hash from the plaintext password.
// The salt is generated by bcrypt itself, so two hashes of the same
// password never match byte-for-byte.
//
// cost is clamped to bcrypt's valid range; pass 0 to use DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
// A malformed or empty hash yields false, never a panic or an error:
// callers treat every failure identically as a credential mismatch.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
