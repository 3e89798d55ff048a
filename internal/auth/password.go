package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Cost 10 keeps admin unlock under ~100ms on the small boxes this runs on.
const bcryptCost = 10

// HashSecret generates a bcrypt hash of the shared administrator code.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifySecret checks the provided code against the stored hash.
func VerifySecret(hashedSecret, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(secret)) == nil
}

// IsHashed reports whether the stored value is already a bcrypt hash.
// Documents written by the legacy application stored the code in plaintext;
// those are migrated when the store opens.
func IsHashed(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
