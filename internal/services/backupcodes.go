// Package services holds the non-interactive core of verifyme. Flows in the
// cli package do the prompting and retry bookkeeping and call into these
// services for every hash, lookup and store write.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/verifyme/internal/logging"
	"github.com/dmitrijs2005/verifyme/internal/models"
	"github.com/dmitrijs2005/verifyme/internal/repositories/backupcodes"
)

// DefaultBackupCodeCount is how many codes a registration issues.
const DefaultBackupCodeCount = 10

// maxResamplesPerCode bounds the collision loop in Generate.
const maxResamplesPerCode = 100

var backupCodeSpace = big.NewInt(100_000_000)

// BackupCodeService issues and redeems one-time recovery codes.
type BackupCodeService interface {
	// Generate returns count distinct fresh codes without storing them.
	Generate(count int) ([]string, error)
	// Store saves codes for identifier. They are shown once and cannot be
	// listed in clear later.
	Store(ctx context.Context, identifier string, codes []string) error
	// Consume redeems a code exactly once.
	Consume(ctx context.Context, identifier, code string) (bool, error)
	// Remaining counts the outstanding codes of identifier.
	Remaining(ctx context.Context, identifier string) (int, error)
}

type backupCodeService struct {
	repo    backupcodes.Repository
	log     logging.Logger
	newCode func() (string, error)
}

func NewBackupCodeService(repo backupcodes.Repository, log logging.Logger) BackupCodeService {
	return &backupCodeService{repo: repo, log: log, newCode: GenerateBackupCode}
}

// GenerateBackupCode returns a uniformly random 8-digit numeric string.
func GenerateBackupCode() (string, error) {
	n, err := rand.Int(rand.Reader, backupCodeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", models.BackupCodeLength, n.Int64()), nil
}

func (s *backupCodeService) Generate(count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("backup code count must be positive, got %d", count)
	}

	seen := make(map[string]struct{}, count)
	codes := make([]string, 0, count)
	for tries := 0; len(codes) < count; tries++ {
		if tries >= count*maxResamplesPerCode {
			return nil, errors.New("backup code generator keeps colliding")
		}
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate backup code: %w", err)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

func (s *backupCodeService) Store(ctx context.Context, identifier string, codes []string) error {
	records := make([]models.BackupCode, len(codes))
	for i, c := range codes {
		records[i] = models.BackupCode{Identifier: identifier, Code: c}
	}
	if err := s.repo.Append(ctx, records); err != nil {
		s.log.Error(ctx, "storing backup codes failed", "identifier", identifier, "error", err)
		return err
	}

	s.log.Info(ctx, "backup codes issued", "identifier", identifier, "count", len(codes))
	return nil
}

func (s *backupCodeService) Consume(ctx context.Context, identifier, code string) (bool, error) {
	ok, err := s.repo.Consume(ctx, identifier, code)
	if err != nil {
		s.log.Error(ctx, "reading backup codes failed", "error", err)
		return false, err
	}
	if ok {
		s.log.Info(ctx, "backup code consumed", "identifier", identifier)
	} else {
		s.log.Warn(ctx, "backup code rejected", "identifier", identifier)
	}
	return ok, nil
}

func (s *backupCodeService) Remaining(ctx context.Context, identifier string) (int, error) {
	codes, err := s.repo.ListByIdentifier(ctx, identifier)
	if err != nil {
		return 0, err
	}
	return len(codes), nil
}
