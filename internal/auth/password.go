package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminUser is the only account accepted on the admin routes. Its password is
// configured as a bcrypt hash, never in clear text.
const AdminUser = "admin"

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidHash      = errors.New("not a bcrypt hash")
)

const (
	adminHashCost     = 12
	minPasswordLength = 8
)

// HashPassword produces the ADMIN_PASSWORD_HASH value for a password.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), adminHashCost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(hash), nil
}

// CheckAdmin reports whether user and password match the admin account.
// A malformed hash never matches.
func CheckAdmin(user, password, hash string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(AdminUser)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	return userOK && passOK
}

// ValidateHash rejects configuration values that bcrypt cannot compare against.
func ValidateHash(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return nil
}
