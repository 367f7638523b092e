package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetTokenTTL is how long a password reset link stays usable.
const ResetTokenTTL = 15 * time.Minute

// NewResetToken generates a password recovery token. The raw token is mailed
// to the user and never persisted; only its hash is stored, paired with an
// absolute expiry.
func NewResetToken() (raw string, hash string, expiry time.Time, err error) {
	buf := make([]byte, 20)
	if _, err = rand.Read(buf); err != nil {
		return "", "", time.Time{}, err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), time.Now().Add(ResetTokenTTL), nil
}

// HashResetToken computes the stored form of a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
