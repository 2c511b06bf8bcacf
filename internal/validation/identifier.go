package validation

import (
	"strings"

	"github.com/dmitrijs2005/verifyme/internal/common"
)

const (
	minPhoneLength = 9
	maxPhoneLength = 10
)

// IsEmail reports whether identifier is meant as an email address.
func IsEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// ValidateIdentifier checks an email (anything containing "@") against the
// required domain suffix, and anything else as a phone number: a leading
// zero followed by digits only, 9 to 10 characters in total.
func ValidateIdentifier(identifier, emailDomain string) error {
	if identifier == "" {
		return invalid("identifier", "Email or phone number must not be empty.")
	}
	if strings.Contains(identifier, common.FieldDelimiter) {
		return invalid("identifier", "Email or phone number must not contain a comma.")
	}
	if IsEmail(identifier) {
		if !strings.HasSuffix(identifier, emailDomain) || len(identifier) == len(emailDomain) {
			return invalid("identifier", "Invalid email format. Use an address ending in "+emailDomain+" (e.g., example"+emailDomain+").")
		}
		return nil
	}
	if !validPhone(identifier) {
		return invalid("identifier", "Invalid phone number. Ensure it starts with '0' and is 9-10 digits long.")
	}
	return nil
}

func validPhone(phone string) bool {
	if len(phone) < minPhoneLength || len(phone) > maxPhoneLength {
		return false
	}
	if phone[0] != '0' {
		return false
	}
	for _, r := range phone[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
