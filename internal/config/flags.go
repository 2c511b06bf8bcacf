package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/verifyme/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory
//	-e string   email domain suffix
//	-l int      initial lockout delay in seconds
//	-v string   log level
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and any
// unknown flags do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-l", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory holding the stores")
	fs.StringVar(&cfg.EmailDomain, "e", cfg.EmailDomain, "email domain suffix required for email identifiers")
	lockoutDelay := fs.Int("l", int(cfg.LockoutDelay.Seconds()), "initial lockout delay (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -l only counts when given; otherwise sub-second delays from JSON or
	// the environment would be truncated.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "l" {
			cfg.LockoutDelay = time.Duration(*lockoutDelay) * time.Second
		}
	})
}
