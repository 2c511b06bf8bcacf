package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/config"
	"github.com/dmitrijs2005/verifyme/internal/cryptox"
	"github.com/dmitrijs2005/verifyme/internal/logging"
	"github.com/dmitrijs2005/verifyme/internal/repositories/users"
	"github.com/dmitrijs2005/verifyme/internal/services"
	"github.com/dmitrijs2005/verifyme/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewApp_CreatesDataDir(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = filepath.Join(t.TempDir(), "nested", "Database_txt")

	a, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, a)

	info, err := os.Stat(cfg.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Digest = "md5"

	_, err := NewApp(cfg)
	require.Error(t, err)
}

func TestApp_RunRegisterLoginChangeExit(t *testing.T) {
	h := newHarness(t)
	a := h.app(
		"1", "0912345678", "alice", "Secret1!", "Secret1!",
		"2", "0912345678", "Secret1!",
		"1", "Secret1!", "NewPass2@",
		"2",
		"4",
	)
	a.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "registered successfully")
	assert.Contains(t, out, "Password changed successfully!")
	assert.Contains(t, out, "Goodbye!")
	assert.True(t, h.canLogin("NewPass2@"))
}

func TestApp_SessionTagsServiceLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewJSONZapLogger(&buf, zapcore.InfoLevel)

	h := newHarness(t)
	h.register(t)
	h.auth = services.NewAuthService(
		users.NewTextFileRepository(h.cfg.UsersPath()),
		services.NewBackupCodeService(h.codes, log),
		services.AuthOptions{EmailDomain: h.cfg.EmailDomain, Digest: cryptox.DigestSHA256},
		log,
	)
	a := h.app(
		"2", "0912345678", "Secret1!",
		"1", "Secret1!", "NewPass2@",
		"2",
		"4",
	)
	a.log = log
	a.Run(context.Background())

	var changed, stopped map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		switch m["msg"] {
		case "password changed":
			changed = m
		case "verifyme stopped":
			stopped = m
		}
	}
	require.NotNil(t, changed, buf.String())
	require.NotNil(t, stopped, buf.String())
	assert.Len(t, changed["session"], 36)
	assert.NotContains(t, stopped, "session")
}

func TestHumanError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&validation.ValidationError{Field: "password", Message: "Passwords do not match."}, "Passwords do not match."},
		{fmt.Errorf("read: %w: %w", common.ErrorStoreIO, fs.ErrNotExist), "Data file not found. Please contact support."},
		{fmt.Errorf("write: %w: %w", common.ErrorStoreIO, fs.ErrPermission), "Could not access the data files. Please contact support."},
		{fmt.Errorf("%w: %w", common.ErrorCodesNotStored, common.ErrorStoreIO), "Your account was created, but backup codes could not be saved. Please contact support."},
		{common.ErrorAlreadyExists, "This email, phone number or username is already registered."},
		{common.ErrorNotFound, "No account found with that email or phone number."},
		{common.ErrorUnauthorized, "Incorrect password."},
		{common.ErrorLockedOut, "Too many failed attempts."},
		{common.ErrorAborted, "Operation cancelled."},
		{fmt.Errorf("boom"), "Unexpected error: boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanError(tt.err))
	}
}
