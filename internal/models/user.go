// Package models defines the records kept in the verifyme stores and their
// single-line text encoding.
package models

import (
	"encoding/hex"
	"strings"

	"github.com/dmitrijs2005/verifyme/internal/common"
)

// userFieldCount is the number of fields in a well-formed identity line.
const userFieldCount = 4

// User is one identity record: identifier, username, salt, password_hash.
type User struct {
	// Identifier is the email or phone number. Primary lookup key, immutable.
	Identifier string
	// Username is unique across the store.
	Username string
	// SaltHex is the per-credential random salt, hex encoded.
	SaltHex string
	// PasswordHash is hex(digest(salt || password)).
	PasswordHash string
}

// NewUser builds a record from a raw salt and its password hash.
func NewUser(identifier, username string, salt []byte, passwordHash string) *User {
	return &User{
		Identifier:   identifier,
		Username:     username,
		SaltHex:      hex.EncodeToString(salt),
		PasswordHash: passwordHash,
	}
}

// Salt decodes SaltHex.
func (u *User) Salt() ([]byte, error) {
	return hex.DecodeString(u.SaltHex)
}

// Line renders the record without a line terminator.
func (u *User) Line() string {
	return strings.Join([]string{u.Identifier, u.Username, u.SaltHex, u.PasswordHash}, common.FieldDelimiter)
}

// ParseUser decodes a store line. Lines that do not split into exactly four
// fields are not records; ok is false and the caller keeps them verbatim.
func ParseUser(line string) (u *User, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), common.FieldDelimiter)
	if len(parts) != userFieldCount {
		return nil, false
	}
	return &User{
		Identifier:   parts[0],
		Username:     parts[1],
		SaltHex:      parts[2],
		PasswordHash: parts[3],
	}, true
}
