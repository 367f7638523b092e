package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the fixed work factor the dashboard accounts were
// created with; changing it would not invalidate existing digests but keeps
// hashing cost predictable.
const bcryptCost = 10

// HashPassword hashes a password with bcrypt. The salt is generated per call
// and embedded in the returned digest.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches the stored digest.
// A malformed digest counts as a mismatch.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
