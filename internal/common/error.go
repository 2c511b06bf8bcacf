package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorStoreIO marks a missing, unreadable or unwritable store file.
	// It is usually joined with the underlying os error.
	ErrorStoreIO = errors.New("store i/o error")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorCodesNotStored means the identity was saved but its backup codes
	// were not.
	ErrorCodesNotStored = errors.New("identity saved without backup codes")

	// Flow control errors returned by interactive checkpoints.
	ErrorLockedOut = errors.New("too many failed attempts")
	ErrorAborted   = errors.New("aborted")
)
