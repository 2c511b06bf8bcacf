package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/config"
	"github.com/dmitrijs2005/verifyme/internal/cryptox"
	"github.com/dmitrijs2005/verifyme/internal/logging"
	"github.com/dmitrijs2005/verifyme/internal/models"
	"github.com/dmitrijs2005/verifyme/internal/repositories/backupcodes"
	"github.com/dmitrijs2005/verifyme/internal/repositories/users"
	"github.com/dmitrijs2005/verifyme/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	cfg    *config.Config
	auth   services.AuthService
	codes  *backupcodes.TextFileRepository
	out    *bytes.Buffer
	sleeps []time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()

	h := &harness{cfg: cfg, out: &bytes.Buffer{}}
	h.codes = backupcodes.NewTextFileRepository(cfg.BackupCodesPath())
	h.auth = services.NewAuthService(
		users.NewTextFileRepository(cfg.UsersPath()),
		services.NewBackupCodeService(h.codes, logging.Nop()),
		services.AuthOptions{EmailDomain: cfg.EmailDomain, BackupCodeCount: cfg.BackupCodeCount, Digest: cryptox.DigestSHA256},
		logging.Nop(),
	)
	return h
}

// app returns an App reading the given lines as operator input.
func (h *harness) app(lines ...string) *App {
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	a := newApp(h.cfg, h.auth, logging.Nop(), in, h.out, false)
	a.sleep = func(_ context.Context, d time.Duration) error {
		h.sleeps = append(h.sleeps, d)
		return nil
	}
	return a
}

func (h *harness) register(t *testing.T) []string {
	t.Helper()
	codes, err := h.auth.Register(context.Background(), "0912345678", "alice", []byte("Secret1!"))
	require.NoError(t, err)
	return codes
}

func (h *harness) canLogin(password string) bool {
	_, err := h.auth.Login(context.Background(), "0912345678", []byte(password))
	return err == nil
}

func TestRegister_Success(t *testing.T) {
	h := newHarness(t)

	err := h.app("0912345678", "alice", "Secret1!", "Secret1!").Register(context.Background())
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "[Step 1]")
	assert.Contains(t, out, "[Step 3]")
	assert.Contains(t, out, "User 'alice' registered successfully!")
	assert.True(t, h.canLogin("Secret1!"))

	codes, err := h.codes.ListByIdentifier(context.Background(), "0912345678")
	require.NoError(t, err)
	require.Len(t, codes, 10)
	for _, c := range codes {
		assert.Contains(t, out, c.Code)
	}
	assert.Empty(t, h.sleeps)
}

func TestRegister_RetriesEachStep(t *testing.T) {
	h := newHarness(t)

	err := h.app(
		"12345", "bob@yahoo.com", "alice@gmail.com",
		"alice@gmail.com", "alice",
		"weak", "Secret1!", "Secret1?", "Secret1!", "Secret1!",
	).Register(context.Background())
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "Invalid phone number")
	assert.Contains(t, out, "Invalid email format")
	assert.Contains(t, out, "Username must be different")
	assert.Contains(t, out, "Password must be at least 8 characters long.")
	assert.Contains(t, out, "Passwords do not match.")
	assert.Empty(t, h.sleeps)

	_, err = h.auth.Login(context.Background(), "alice@gmail.com", []byte("Secret1!"))
	require.NoError(t, err)
}

func TestRegister_StepExhaustionPenalizesWithoutWriting(t *testing.T) {
	h := newHarness(t)

	err := h.app("1", "2", "3").Register(context.Background())
	require.ErrorIs(t, err, common.ErrorLockedOut)
	assert.Equal(t, []time.Duration{30 * time.Second}, h.sleeps)
	assert.Contains(t, h.out.String(), "Too many invalid attempts. Try again after 30s.")

	_, statErr := os.Stat(h.cfg.UsersPath())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	_, statErr = os.Stat(h.cfg.BackupCodesPath())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRegister_PasswordExhaustionLeavesStoreUntouched(t *testing.T) {
	h := newHarness(t)
	h.register(t)
	before, err := os.ReadFile(h.cfg.UsersPath())
	require.NoError(t, err)

	err = h.app("bob@gmail.com", "bob", "short", "short", "short").Register(context.Background())
	require.ErrorIs(t, err, common.ErrorLockedOut)

	after, err := os.ReadFile(h.cfg.UsersPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegister_DuplicateIdentifierAndUsername(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	err := h.app("0912345678", "0987654321", "alice", "bob", "Secret1!", "Secret1!").Register(context.Background())
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "This email or phone number is already registered.")
	assert.Contains(t, out, "This username is already taken.")
}

func TestRegister_CodesNotStoredIsReported(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.Mkdir(h.cfg.BackupCodesPath(), 0o700))

	err := h.app("0912345678", "alice", "Secret1!", "Secret1!").Register(context.Background())
	require.ErrorIs(t, err, common.ErrorCodesNotStored)

	out := h.out.String()
	assert.Contains(t, out, "Your account was created, but backup codes could not be saved.")
	assert.NotContains(t, out, "Here are your backup codes:")
	assert.True(t, h.canLogin("Secret1!"))
}

func TestRegister_InputClosed(t *testing.T) {
	h := newHarness(t)
	a := newApp(h.cfg, h.auth, logging.Nop(), strings.NewReader(""), h.out, false)

	err := a.Register(context.Background())
	require.ErrorIs(t, err, io.EOF)
	assert.Contains(t, h.out.String(), "Input closed.")
}

func TestLogin_Success(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	id, err := h.app("0912345678", "Secret1!").Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0912345678", id)
	assert.Contains(t, h.out.String(), "Login successful!")
}

func TestLogin_LockoutThenRetrySilently(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	id, err := h.app(
		"nobody@gmail.com",
		"0912345678", "Wrong1!!",
		"0912345678", "Wrong2!!",
		"0912345678", "Wrong3!!",
		"0912345678", "Wrong4!!",
		"0912345678", "Wrong5!!",
		"0912345678", "Wrong6!!",
		"0912345678", "Wrong7!!",
		"0912345678", "Secret1!",
	).Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0912345678", id)

	assert.Equal(t, []time.Duration{30 * time.Second, 90 * time.Second}, h.sleeps)
	out := h.out.String()
	assert.Contains(t, out, "No account found with that email or phone number.")
	assert.Contains(t, out, "Incorrect password.")
	assert.Contains(t, out, "Please wait 1m30s before trying again.")
}

func TestLogin_MissingStoreIsFatal(t *testing.T) {
	h := newHarness(t)

	_, err := h.app("0912345678", "Secret1!").Login(context.Background())
	require.ErrorIs(t, err, common.ErrorStoreIO)
	assert.Contains(t, h.out.String(), "Data file not found.")
	assert.Empty(t, h.sleeps)
}

func TestLogin_InputClosed(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	_, err := h.app("0912345678").Login(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestChangePassword_Success(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	err := h.app("Secret1!", "NewPass2@").ChangePassword(context.Background(), "0912345678")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Password changed successfully!")
	assert.False(t, h.canLogin("Secret1!"))
	assert.True(t, h.canLogin("NewPass2@"))
}

func TestChangePassword_OperatorDeclinesAfterLockout(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	err := h.app("a", "b", "c", "n").ChangePassword(context.Background(), "0912345678")
	require.ErrorIs(t, err, common.ErrorAborted)
	assert.Empty(t, h.sleeps)
	assert.Contains(t, h.out.String(), "Password change failed.")
	assert.True(t, h.canLogin("Secret1!"))
}

func TestChangePassword_OperatorContinuesAfterLockout(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	err := h.app("a", "b", "c", "y", "d", "e", "f", "yes", "Secret1!", "NewPass2@").
		ChangePassword(context.Background(), "0912345678")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{30 * time.Second, 90 * time.Second}, h.sleeps)
	assert.True(t, h.canLogin("NewPass2@"))
}

func TestChangePassword_WeakNewPasswordAborts(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	err := h.app("Secret1!", "nouppercase1!").ChangePassword(context.Background(), "0912345678")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, h.out.String(), "Password does not meet the required standards.")
	assert.True(t, h.canLogin("Secret1!"))
}

func TestRecoverPassword_Success(t *testing.T) {
	h := newHarness(t)
	codes := h.register(t)

	err := h.app(
		"0912345678", "not-a-code",
		"0987654321", codes[0],
		"0912345678", codes[0],
		"weakpass",
		"NewPass2@",
	).RecoverPassword(context.Background())
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "Invalid backup code. You have 2 attempt(s) remaining.")
	assert.Contains(t, out, "Invalid backup code. You have 1 attempt(s) remaining.")
	assert.Contains(t, out, "Backup code verified successfully!")
	assert.Contains(t, out, "Password does not meet the required standards. Try again.")
	assert.Contains(t, out, "Password reset successfully!")
	assert.Contains(t, out, "You have 9 backup code(s) left.")

	assert.True(t, h.canLogin("NewPass2@"))
	assert.False(t, h.canLogin("Secret1!"))

	left, err := h.codes.ListByIdentifier(context.Background(), "0912345678")
	require.NoError(t, err)
	assert.Len(t, left, 9)
	assert.NotContains(t, left, models.BackupCode{Identifier: "0912345678", Code: codes[0]})
}

func TestRecoverPassword_CodeIsSingleUse(t *testing.T) {
	h := newHarness(t)
	codes := h.register(t)

	require.NoError(t, h.app("0912345678", codes[1], "NewPass2@").RecoverPassword(context.Background()))

	err := h.app(
		"0912345678", codes[1],
		"0912345678", codes[1],
		"0912345678", codes[1],
	).RecoverPassword(context.Background())
	require.ErrorIs(t, err, common.ErrorLockedOut)
	assert.Contains(t, h.out.String(), "You have 0 attempt(s) remaining.")
	assert.Contains(t, h.out.String(), "Maximum attempts reached. Password recovery failed.")
	assert.Empty(t, h.sleeps)
}

func TestRecoverPassword_ResetExhaustion(t *testing.T) {
	h := newHarness(t)
	codes := h.register(t)

	err := h.app("0912345678", codes[2], "weak", "weaker", "weakest").RecoverPassword(context.Background())
	require.ErrorIs(t, err, common.ErrorLockedOut)
	assert.Contains(t, h.out.String(), "Failed to reset password after multiple attempts.")
	assert.True(t, h.canLogin("Secret1!"))
}

func TestRecoverPassword_MissingCodeStore(t *testing.T) {
	h := newHarness(t)

	err := h.app("0912345678", "12345678").RecoverPassword(context.Background())
	require.ErrorIs(t, err, common.ErrorStoreIO)
	assert.Contains(t, h.out.String(), "Data file not found. Please contact support.")
}

func TestRecoverPassword_MissingUserStore(t *testing.T) {
	h := newHarness(t)
	codes := h.register(t)
	require.NoError(t, os.Remove(h.cfg.UsersPath()))

	err := h.app("0912345678", codes[0], "NewPass2@").RecoverPassword(context.Background())
	require.ErrorIs(t, err, common.ErrorStoreIO)
	_, statErr := os.Stat(filepath.Join(h.cfg.DataDir, "database.txt"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
