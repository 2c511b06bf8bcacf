package backupcodes

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

type TextFileRepository struct {
	path string
}

func NewTextFileRepository(path string) *TextFileRepository {
	return &TextFileRepository{path: path}
}

func (r *TextFileRepository) Append(ctx context.Context, codes []models.BackupCode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lines, err := r.readLines()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, c := range codes {
		lines = append(lines, c.Line())
	}
	return r.writeLines(lines)
}

func (r *TextFileRepository) Consume(ctx context.Context, identifier, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	lines, err := r.readLines()
	if err != nil {
		return false, err
	}

	found := false
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		c, ok := models.ParseBackupCode(line)
		if ok && c.Matches(identifier, code) {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return false, nil
	}
	if err := r.writeLines(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (r *TextFileRepository) ListByIdentifier(ctx context.Context, identifier string) ([]models.BackupCode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, err := r.readLines()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []models.BackupCode
	for _, line := range lines {
		if c, ok := models.ParseBackupCode(line); ok && c.Identifier == identifier {
			out = append(out, c)
		}
	}
	return out, nil
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
