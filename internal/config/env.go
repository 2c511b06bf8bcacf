package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "VERIFYME_"

// loadDotEnv copies variables from the given files (".env" when none) into
// the process environment without overriding ones already set. A missing
// file is not an error.
func loadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

// parseEnv overlays cfg with VERIFYME_* variables. Unset variables keep the
// current value; malformed numbers and durations panic like bad flags do.
func parseEnv(cfg *Config) {
	setString(&cfg.DataDir, "DATA_DIR")
	setString(&cfg.UsersFile, "USERS_FILE")
	setString(&cfg.BackupCodesFile, "BACKUP_CODES_FILE")
	setString(&cfg.EmailDomain, "EMAIL_DOMAIN")
	setString(&cfg.Digest, "DIGEST")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogBackend, "LOG_BACKEND")

	if v, ok := os.LookupEnv(envPrefix + "BACKUP_CODE_COUNT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.BackupCodeCount = n
	}
	if v, ok := os.LookupEnv(envPrefix + "LOCKOUT_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.LockoutDelay = d
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		*dst = v
	}
}
