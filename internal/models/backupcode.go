package models

import (
	"strings"

	"github.com/dmitrijs2005/verifyme/internal/common"
)

// BackupCodeLength is the number of decimal digits in a backup code.
const BackupCodeLength = 8

// BackupCode is one outstanding single-use recovery code of an identity.
// Used codes are removed from the store rather than flagged.
type BackupCode struct {
	Identifier string
	Code       string
}

func (c BackupCode) Line() string {
	return c.Identifier + common.FieldDelimiter + c.Code
}

// Matches compares both fields exactly.
func (c BackupCode) Matches(identifier, code string) bool {
	return c.Identifier == identifier && c.Code == code
}

// ParseBackupCode decodes an "identifier,code" line. ok is false for lines
// that do not split into exactly two fields.
func ParseBackupCode(line string) (c BackupCode, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), common.FieldDelimiter)
	if len(parts) != 2 {
		return BackupCode{}, false
	}
	return BackupCode{Identifier: parts[0], Code: parts[1]}, true
}
