package password

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the recommended bcrypt cost (12)
	DefaultCost = 12
	// MinLength is the minimum accepted password length
	MinLength = 8

	errPasswordEmpty    = "password cannot be empty"
	errPasswordTooShort = "password must be at least %d characters"
	errPasswordNoLetter = "password must contain at least one letter"
	errPasswordNoDigit  = "password must contain at least one digit"
	errHashPasswordFmt  = "failed to hash password: %w"
)

// Hash generates a bcrypt hash of the password
func Hash(password string) (string, error) {
	if len(password) == 0 {
		return "", fmt.Errorf(errPasswordEmpty)
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf(errHashPasswordFmt, err)
	}

	return string(bytes), nil
}

// Verify checks if the password matches the hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Validate enforces the minimum password policy for registration
func Validate(password string) error {
	if len(password) < MinLength {
		return fmt.Errorf(errPasswordTooShort, MinLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter {
		return fmt.Errorf(errPasswordNoLetter)
	}
	if !hasDigit {
		return fmt.Errorf(errPasswordNoDigit)
	}

	return nil
}
