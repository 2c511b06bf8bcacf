// Package validation holds the format rules for identifiers, usernames and
// passwords. Every rule failure is a *ValidationError that matches
// common.ErrorValidation under errors.Is.
package validation

import "github.com/dmitrijs2005/verifyme/internal/common"

// ValidationError reports which field failed and a message fit for the operator.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrorValidation
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
