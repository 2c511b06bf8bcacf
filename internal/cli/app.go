package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/verifyme/internal/config"
	"github.com/dmitrijs2005/verifyme/internal/cryptox"
	"github.com/dmitrijs2005/verifyme/internal/filex"
	"github.com/dmitrijs2005/verifyme/internal/lockout"
	"github.com/dmitrijs2005/verifyme/internal/logging"
	"github.com/dmitrijs2005/verifyme/internal/repositories/backupcodes"
	"github.com/dmitrijs2005/verifyme/internal/repositories/users"
	"github.com/dmitrijs2005/verifyme/internal/services"
)

type App struct {
	config   *config.Config
	auth     services.AuthService
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	sleep    lockout.SleepFunc
	terminal bool
}

// NewApp validates c, creates the data directory and wires the stores and
// services behind the interactive flows. Logs go to stderr.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	dir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		log.Error(context.Background(), "creating data directory failed", "dir", c.DataDir, "error", err)
		return nil, err
	}
	cfg := *c
	cfg.DataDir = dir

	digest, err := cryptox.ParseDigest(cfg.Digest)
	if err != nil {
		return nil, err
	}

	codes := services.NewBackupCodeService(backupcodes.NewTextFileRepository(cfg.BackupCodesPath()), log)
	auth := services.NewAuthService(
		users.NewTextFileRepository(cfg.UsersPath()),
		codes,
		services.AuthOptions{
			EmailDomain:     cfg.EmailDomain,
			BackupCodeCount: cfg.BackupCodeCount,
			Digest:          digest,
		},
		log,
	)

	return newApp(&cfg, auth, log, os.Stdin, os.Stdout, stdinIsTerminal()), nil
}

func newApp(c *config.Config, auth services.AuthService, log logging.Logger, in io.Reader, out io.Writer, terminal bool) *App {
	return &App{
		config:   c,
		auth:     auth,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		sleep:    lockout.Sleep,
		terminal: terminal,
	}
}

// Run shows the main menu until the operator exits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) {
	a.log.Info(ctx, "verifyme started", "data_dir", a.config.DataDir)
	runREPL(ctx, a, a.out, a.reader)
	a.log.Info(ctx, "verifyme stopped")
	// stderr rejects fsync on some platforms; nothing useful to do about it.
	_ = logging.Sync(a.log)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) text(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// password reads without echo on a terminal and as a plain line otherwise.
func (a *App) password(prompt string) ([]byte, error) {
	if a.terminal {
		return GetPassword(prompt, a.out)
	}
	line, err := a.text(prompt)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// checkpoint builds a Checkpoint with the configured initial delay.
func (a *App) checkpoint(maxAttempts int) *lockout.Checkpoint {
	return &lockout.Checkpoint{
		Policy: lockout.NewPolicy(maxAttempts, a.config.LockoutDelay),
		Sleep:  a.sleep,
	}
}
