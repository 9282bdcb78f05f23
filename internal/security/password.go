package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// PasswordHash returns the lower-case hex SHA-256 digest of plaintext.
// The digest is deterministic so stored hashes can be compared directly.
func PasswordHash(plaintext Secret) string {
	var out string
	_ = plaintext.Use(func(b []byte) error {
		sum := sha256.Sum256(b)
		out = hex.EncodeToString(sum[:])
		return nil
	})
	return out
}

// VerifyPassword reports whether plaintext hashes to hash.
func VerifyPassword(hash string, plaintext Secret) bool {
	if hash == "" {
		return false
	}
	candidate := PasswordHash(plaintext)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}
