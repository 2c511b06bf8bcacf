// Package backupcodes is the record store for one-time recovery codes,
// one "identifier,code" pair per line.
package backupcodes

import (
	"context"

	"github.com/dmitrijs2005/verifyme/internal/models"
)

type Repository interface {
	// Append adds codes at the end of the store, creating it if needed.
	Append(ctx context.Context, codes []models.BackupCode) error
	// Consume removes every line matching both identifier and code and
	// reports whether any was found. On a miss the file is not rewritten.
	Consume(ctx context.Context, identifier, code string) (bool, error)
	// ListByIdentifier returns outstanding codes of identifier; a missing
	// store yields none.
	ListByIdentifier(ctx context.Context, identifier string) ([]models.BackupCode, error)
}
