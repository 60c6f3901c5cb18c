package pkg

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 12

// MaxPasswordBytes is the longest password bcrypt can hash without truncating.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password is longer than 72 bytes")

func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	if len(password) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
