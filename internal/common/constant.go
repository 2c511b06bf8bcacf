// Package common contains shared constants, sentinel errors and small helpers
// used across verifyme components.
package common

// FieldDelimiter separates fields in both record store files.
const FieldDelimiter = ","

// Default locations of the record store files, relative to the working directory.
const (
	DefaultDataDir         = "Database_txt"
	DefaultUsersFile       = "database.txt"
	DefaultBackupCodesFile = "backup_codes.txt"
)
