package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Register accepts
const MinPasswordLength = 8

const hashCost = 12

// ErrPasswordTooShort signals a password below MinPasswordLength
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// HashPassword enforces the length policy and returns a bcrypt hash
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// PasswordMatches reports whether password matches the stored hash.
// A malformed hash reads the same as a wrong password: login denied.
func PasswordMatches(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
