package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher performs one-way salted hashing of plaintext passwords.
// bcrypt generates a fresh salt per call, so two hashes of the same password
// never match byte-for-byte, and its compare is timing-safe.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a salted one-way hash of plaintext. It fails only on
// catastrophic conditions (entropy exhaustion, invalid cost).
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A normal mismatch returns
// (false, nil); an error is returned only when hash is not a bcrypt hash.
func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
