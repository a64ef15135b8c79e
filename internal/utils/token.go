package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// resetTokenBytes gives 256 bits of entropy.
const resetTokenBytes = 32

// NewResetToken returns a random password-reset token and the SHA-256 hash
// that is stored in its place.
func NewResetToken() (raw, hash string, err error) {
	raw, err = randomHex(resetTokenBytes)
	if err != nil {
		return "", "", err
	}
	return raw, HashToken(raw), nil
}

// HashToken returns the SHA-256 hex digest of a raw token.  Refresh and
// reset tokens are persisted only in this form.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string built from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
