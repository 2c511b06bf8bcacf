package users

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/filex"
	"github.com/dmitrijs2005/verifyme/internal/models"
)

const filePerm os.FileMode = 0o600

// TextFileRepository keeps identity records in a flat text file.
// It assumes a single writer.
type TextFileRepository struct {
	path string
}

func NewTextFileRepository(path string) *TextFileRepository {
	return &TextFileRepository{path: path}
}

func (r *TextFileRepository) Find(ctx context.Context, identifier string) (*models.User, error) {
	return r.findFirst(ctx, func(u *models.User) bool { return u.Identifier == identifier })
}

func (r *TextFileRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findFirst(ctx, func(u *models.User) bool { return u.Username == username })
}

func (r *TextFileRepository) Append(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lines, err := r.readLines()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, line := range lines {
		if e, ok := models.ParseUser(line); ok {
			if e.Identifier == u.Identifier || e.Username == u.Username {
				return fmt.Errorf("append %s: %w", u.Identifier, common.ErrorAlreadyExists)
			}
		}
	}
	lines = append(lines, u.Line())
	return r.writeLines(lines)
}

func (r *TextFileRepository) UpsertByIdentifier(ctx context.Context, identifier string, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lines, err := r.readLines()
	if err != nil {
		return err
	}

	replaced := false
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		e, ok := models.ParseUser(line)
		if ok && !replaced && e.Identifier == identifier {
			out = append(out, u.Line())
			replaced = true
			continue
		}
		// Malformed lines and other records pass through untouched.
		out = append(out, line)
	}
	if !replaced {
		return fmt.Errorf("update %s: %w", identifier, common.ErrorNotFound)
	}
	return r.writeLines(out)
}

func (r *TextFileRepository) findFirst(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, err := r.readLines()
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if u, ok := models.ParseUser(line); ok && match(u) {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *TextFileRepository) readLines() ([]string, error) {
	lines, err := filex.ReadLines(r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", r.path, common.ErrorStoreIO, err)
	}
	return lines, nil
}

func (r *TextFileRepository) writeLines(lines []string) error {
	if err := filex.WriteLinesAtomic(r.path, lines, filePerm); err != nil {
		return fmt.Errorf("write %s: %w: %w", r.path, common.ErrorStoreIO, err)
	}
	return nil
}
