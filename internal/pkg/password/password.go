// Package password hashes and verifies user credentials with bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxBytes is the bcrypt input limit. Longer secrets are cut to their
// first maxBytes bytes on both hash and verify.
const maxBytes = 72

// Hash returns a self-describing bcrypt digest (algorithm, cost, salt, hash).
// Every call uses a fresh salt.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches digest. A malformed digest is a mismatch.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(plain)) == nil
}

func truncate(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxBytes {
		b = b[:maxBytes]
	}
	return b
}
