package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/cryptox"
	"github.com/dmitrijs2005/verifyme/internal/logging"
	"github.com/dmitrijs2005/verifyme/internal/models"
	"github.com/dmitrijs2005/verifyme/internal/repositories/users"
	"github.com/dmitrijs2005/verifyme/internal/validation"
)

// AuthService is the credential core used by the interactive flows.
//
// Contract:
//   - IdentifierTaken / UsernameTaken: uniqueness checks; a store that does
//     not exist yet has no records.
//   - Register: validate, generate backup codes, salt, hash, append the
//     record, store the codes. If only the codes fail to save, the error
//     wraps common.ErrorCodesNotStored.
//   - Lookup: the record for identifier, or common.ErrorNotFound.
//   - Login: common.ErrorNotFound for an unknown identifier,
//     common.ErrorUnauthorized for a wrong password.
//   - ChangePassword: validate strength, fresh salt, rewrite the record. Used
//     both after re-verification and after backup-code recovery.
//
// A missing user store surfaces as common.ErrorStoreIO from every method
// except the uniqueness checks and Register.
type AuthService interface {
	IdentifierTaken(ctx context.Context, identifier string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, identifier, username string, password []byte) ([]string, error)
	Lookup(ctx context.Context, identifier string) (*models.User, error)
	Login(ctx context.Context, identifier string, password []byte) (*models.User, error)
	VerifyPassword(ctx context.Context, identifier string, password []byte) error
	ChangePassword(ctx context.Context, identifier string, newPassword []byte) error
	ConsumeBackupCode(ctx context.Context, identifier, code string) (bool, error)
	RemainingBackupCodes(ctx context.Context, identifier string) (int, error)
}

// AuthOptions carries the configurable parts of AuthService.
type AuthOptions struct {
	EmailDomain     string
	BackupCodeCount int
	Digest          cryptox.Digest
}

type authService struct {
	users   users.Repository
	codes   BackupCodeService
	hasher  *cryptox.Hasher
	opts    AuthOptions
	log     logging.Logger
	newSalt func() ([]byte, error)
}

// NewAuthService wires the user store and backup code issuer.
func NewAuthService(u users.Repository, codes BackupCodeService, opts AuthOptions, log logging.Logger) AuthService {
	if opts.BackupCodeCount <= 0 {
		opts.BackupCodeCount = DefaultBackupCodeCount
	}
	return &authService{
		users:   u,
		codes:   codes,
		hasher:  cryptox.NewHasher(opts.Digest),
		opts:    opts,
		log:     log,
		newSalt: cryptox.NewSalt,
	}
}

func (a *authService) IdentifierTaken(ctx context.Context, identifier string) (bool, error) {
	_, err := a.users.Find(ctx, identifier)
	return taken(err)
}

func (a *authService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := a.users.FindByUsername(ctx, username)
	return taken(err)
}

func taken(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (a *authService) Register(ctx context.Context, identifier, username string, password []byte) ([]string, error) {
	if err := validation.ValidateIdentifier(identifier, a.opts.EmailDomain); err != nil {
		return nil, err
	}
	if err := validation.ValidateUsername(username, identifier); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	codes, err := a.codes.Generate(a.opts.BackupCodeCount)
	if err != nil {
		return nil, err
	}
	salt, err := a.newSalt()
	if err != nil {
		return nil, err
	}
	u := models.NewUser(identifier, username, salt, a.hasher.Hash(password, salt))
	if err := a.users.Append(ctx, u); err != nil {
		if !errors.Is(err, common.ErrorAlreadyExists) {
			a.log.Error(ctx, "saving identity failed", "identifier", identifier, "error", err)
		}
		return nil, err
	}
	a.log.Info(ctx, "identity registered", "identifier", identifier, "username", username)

	if err := a.codes.Store(ctx, identifier, codes); err != nil {
		a.log.Error(ctx, "identity registered without backup codes", "identifier", identifier, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrorCodesNotStored, err)
	}
	return codes, nil
}

func (a *authService) Lookup(ctx context.Context, identifier string) (*models.User, error) {
	u, err := a.users.Find(ctx, identifier)
	if err != nil && errors.Is(err, common.ErrorStoreIO) {
		a.log.Error(ctx, "reading user store failed", "error", err)
	}
	return u, err
}

func (a *authService) Login(ctx context.Context, identifier string, password []byte) (*models.User, error) {
	u, err := a.users.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorStoreIO) {
			a.log.Error(ctx, "reading user store failed", "error", err)
		}
		return nil, err
	}
	if !a.check(u, password) {
		a.log.Warn(ctx, "wrong password", "identifier", identifier)
		return nil, common.ErrorUnauthorized
	}
	a.log.Info(ctx, "login succeeded", "identifier", identifier)
	return u, nil
}

func (a *authService) VerifyPassword(ctx context.Context, identifier string, password []byte) error {
	u, err := a.users.Find(ctx, identifier)
	if err != nil {
		return err
	}
	if !a.check(u, password) {
		return common.ErrorUnauthorized
	}
	return nil
}

func (a *authService) ChangePassword(ctx context.Context, identifier string, newPassword []byte) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}
	u, err := a.users.Find(ctx, identifier)
	if err != nil {
		return err
	}

	salt, err := a.newSalt()
	if err != nil {
		return err
	}
	updated := models.NewUser(u.Identifier, u.Username, salt, a.hasher.Hash(newPassword, salt))
	if err := a.users.UpsertByIdentifier(ctx, identifier, updated); err != nil {
		a.log.Error(ctx, "rewriting user store failed", "identifier", identifier, "error", err)
		return err
	}
	a.log.Info(ctx, "password changed", "identifier", identifier)
	return nil
}

func (a *authService) ConsumeBackupCode(ctx context.Context, identifier, code string) (bool, error) {
	return a.codes.Consume(ctx, identifier, code)
}

func (a *authService) RemainingBackupCodes(ctx context.Context, identifier string) (int, error) {
	return a.codes.Remaining(ctx, identifier)
}

// check treats an undecodable salt as a mismatch.
func (a *authService) check(u *models.User, password []byte) bool {
	salt, err := u.Salt()
	if err != nil {
		return false
	}
	return a.hasher.Check(password, salt, u.PasswordHash)
}
