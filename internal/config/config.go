package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/verifyme/internal/common"
	"github.com/dmitrijs2005/verifyme/internal/cryptox"
	"github.com/dmitrijs2005/verifyme/internal/lockout"
	"github.com/dmitrijs2005/verifyme/internal/logging"
	"github.com/dmitrijs2005/verifyme/internal/services"
)

const DefaultEmailDomain = "@gmail.com"

// Config holds runtime settings for the verifyme CLI.
type Config struct {
	DataDir         string
	UsersFile       string
	BackupCodesFile string
	EmailDomain     string
	Digest          string
	BackupCodeCount int
	LockoutDelay    time.Duration
	LogLevel        string
	LogBackend      string
}

// LoadDefaults populates c with the stock settings.
func (c *Config) LoadDefaults() {
	c.DataDir = common.DefaultDataDir
	c.UsersFile = common.DefaultUsersFile
	c.BackupCodesFile = common.DefaultBackupCodesFile
	c.EmailDomain = DefaultEmailDomain
	c.Digest = string(cryptox.DigestSHA256)
	c.BackupCodeCount = services.DefaultBackupCodeCount
	c.LockoutDelay = lockout.DefaultDelay
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
}

// UsersPath is the identity store location.
func (c *Config) UsersPath() string {
	return filepath.Join(c.DataDir, c.UsersFile)
}

// BackupCodesPath is the backup code store location.
func (c *Config) BackupCodesPath() string {
	return filepath.Join(c.DataDir, c.BackupCodesFile)
}

// Validate reports every setting that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir is empty"))
	}
	if c.UsersFile == "" || c.BackupCodesFile == "" {
		errs = append(errs, errors.New("store file names must not be empty"))
	}
	if c.UsersFile == c.BackupCodesFile {
		errs = append(errs, errors.New("users and backup code stores must be different files"))
	}
	if !strings.HasPrefix(c.EmailDomain, "@") || len(c.EmailDomain) < 2 {
		errs = append(errs, fmt.Errorf("email domain %q must look like @example.com", c.EmailDomain))
	}
	if _, err := cryptox.ParseDigest(c.Digest); err != nil {
		errs = append(errs, err)
	}
	if c.BackupCodeCount <= 0 {
		errs = append(errs, fmt.Errorf("backup code count must be positive, got %d", c.BackupCodeCount))
	}
	if c.LockoutDelay < 0 {
		errs = append(errs, fmt.Errorf("lockout delay must not be negative, got %s", c.LockoutDelay))
	}
	switch c.LogBackend {
	case logging.BackendSlog, logging.BackendZap:
	default:
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.LogBackend))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config from defaults, the environment, JSON (if
// present) and command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
