package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// UnusablePasswordHash is persisted for federated-only accounts. It is not
// a valid bcrypt digest, so ComparePasswordAndHash rejects it for every
// input and the account can never authenticate locally.
const UnusablePasswordHash = "!"

// HashPassword will generate a salted password hash. The salt is random per
// call, so hashing the same password twice yields different digests.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password against
// a stored digest. Every failure mode, including a malformed digest, is
// reported as ErrMismatchedHashAndPassword so callers treat them uniformly.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
