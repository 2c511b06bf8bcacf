package validation

import (
	"bytes"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8

	// SpecialCharacters is the accepted set for the special-character rule.
	SpecialCharacters = `!@#$%^&*(),.?":{}|<>`
)

// ValidatePassword checks the strength rules shared by registration,
// change-password and recovery: at least 8 characters with an uppercase
// letter, a digit and a special character. Lowercase letters are optional.
func ValidatePassword(password []byte) error {
	pw := string(password)
	if len([]rune(pw)) < MinPasswordLength {
		return invalid("password", "Password must be at least 8 characters long.")
	}
	if !strings.ContainsFunc(pw, unicode.IsUpper) {
		return invalid("password", "Password must contain at least one uppercase letter.")
	}
	if !strings.ContainsFunc(pw, unicode.IsDigit) {
		return invalid("password", "Password must contain at least one number.")
	}
	if !strings.ContainsAny(pw, SpecialCharacters) {
		return invalid("password", "Password must contain at least one special character ("+SpecialCharacters+").")
	}
	return nil
}

// ConfirmPassword checks that the confirmation repeats the password exactly.
func ConfirmPassword(password, confirmation []byte) error {
	if !bytes.Equal(password, confirmation) {
		return invalid("password_confirmation", "Passwords do not match.")
	}
	return nil
}
