package cli

import (
	"errors"
	"io"
	"io/fs"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/validation"
)

// HumanError turns a flow or service error into a message for the operator.
func HumanError(err error) string {
	var ve *validation.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, io.EOF):
		return "Input closed."
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, common.ErrorCodesNotStored):
		return "Your account was created, but backup codes could not be saved. Please contact support."
	case errors.Is(err, common.ErrorStoreIO) && errors.Is(err, fs.ErrNotExist):
		return "Data file not found. Please contact support."
	case errors.Is(err, common.ErrorStoreIO):
		return "Could not access the data files. Please contact support."
	case errors.Is(err, common.ErrorAlreadyExists):
		return "This email, phone number or username is already registered."
	case errors.Is(err, common.ErrorNotFound):
		return "No account found with that email or phone number."
	case errors.Is(err, common.ErrorUnauthorized):
		return "Incorrect password."
	case errors.Is(err, common.ErrorLockedOut):
		return "Too many failed attempts."
	case errors.Is(err, common.ErrorAborted):
		return "Operation cancelled."
	default:
		return "Unexpected error: " + err.Error()
	}
}
