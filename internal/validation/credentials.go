// Package validation contains input format rules shared by signup and
// account-management flows.
package validation

import (
	"errors"
	"unicode"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 8
	maxPasswordLen = 128
)

// ValidateUsername checks that a username is well formed: 3-30 characters,
// letters, digits and underscores only.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen {
		return errors.New("username must be at least 3 characters")
	}
	if len(username) > maxUsernameLen {
		return errors.New("username must be at most 30 characters")
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return errors.New("username may only contain letters, digits and underscores")
		}
	}
	return nil
}

// ValidatePassword checks password length bounds. Composition rules are
// deliberately loose; length is the main defense with bcrypt behind it.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > maxPasswordLen {
		return errors.New("password must be at most 128 characters")
	}
	return nil
}
