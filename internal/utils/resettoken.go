package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a password-reset token.
// 32 random bytes encode to 64 hex characters on the wire.
const resetTokenBytes = 32

// NewResetToken generates a single-use password-reset token.
//
// It returns the plaintext token (delivered to the user out-of-band and
// never persisted) and its sha256 hex digest (the only form stored on the
// account). Matching a presented token against the stored record is done
// by re-hashing, exactly like a password.
func NewResetToken() (plaintext string, digest string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("error generating reset token: %w", err)
	}

	plaintext = hex.EncodeToString(buf)
	return plaintext, HashResetToken(plaintext), nil
}

// HashResetToken returns the sha256 hex digest of a plaintext reset token.
// sha256 is sufficient here: the input is 256 bits of fresh entropy, not a
// guessable user password, so a slow KDF would add nothing.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
