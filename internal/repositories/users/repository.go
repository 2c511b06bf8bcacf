// Package users is the record store for identity records. The backing file
// holds one comma-delimited record per line and is always rewritten whole.
package users

import (
	"context"

	"github.com/dmitrijs2005/verifyme/internal/models"
)

// Repository gives line-oriented access to the identity records.
//
// Errors: lookups that find nothing return common.ErrorNotFound; a missing or
// unreadable file is reported as common.ErrorStoreIO joined with the os error.
type Repository interface {
	// Find returns the first record whose identifier equals identifier exactly.
	Find(ctx context.Context, identifier string) (*models.User, error)
	// FindByUsername returns the first record whose username equals username exactly.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// Append adds a new record, creating the file if needed.
	Append(ctx context.Context, u *models.User) error
	// UpsertByIdentifier replaces the record keyed by identifier with u and
	// copies every other line verbatim.
	UpsertByIdentifier(ctx context.Context, identifier string, u *models.User) error
}
