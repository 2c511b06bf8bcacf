package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/verifyme/internal/common"
)

const MinUsernameLength = 2

// ValidateUsername applies the username shape rules: at least two characters,
// at most one space, at least one letter (so never all digits), and it must
// differ from the identifier chosen in the same registration.
func ValidateUsername(username, identifier string) error {
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return invalid("username", "Username must be at least 2 characters long.")
	}
	if strings.Contains(username, common.FieldDelimiter) {
		return invalid("username", "Username must not contain a comma.")
	}
	if strings.Count(username, " ") > 1 {
		return invalid("username", "Username can only contain one space.")
	}
	if isAllDigits(username) {
		return invalid("username", "Username cannot be all digits.")
	}
	if !strings.ContainsFunc(username, unicode.IsLetter) {
		return invalid("username", "Username must contain at least one letter.")
	}
	if username == identifier {
		return invalid("username", "Username must be different from your email or phone number.")
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
