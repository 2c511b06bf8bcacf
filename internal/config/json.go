package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/verifyme/internal/flagx"
	"github.com/dmitrijs2005/verifyme/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values so a partial file only
// overrides what it names.
type JsonConfig struct {
	DataDir         *string         `json:"data_dir"`
	UsersFile       *string         `json:"users_file"`
	BackupCodesFile *string         `json:"backup_codes_file"`
	EmailDomain     *string         `json:"email_domain"`
	Digest          *string         `json:"digest"`
	BackupCodeCount *int            `json:"backup_code_count"`
	LockoutDelay    *timex.Duration `json:"lockout_delay"`
	LogLevel        *string         `json:"log_level"`
	LogBackend      *string         `json:"log_backend"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Without
// such a flag nothing happens. Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.UsersFile, jc.UsersFile)
	overlay(&cfg.BackupCodesFile, jc.BackupCodesFile)
	overlay(&cfg.EmailDomain, jc.EmailDomain)
	overlay(&cfg.Digest, jc.Digest)
	overlay(&cfg.BackupCodeCount, jc.BackupCodeCount)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogBackend, jc.LogBackend)
	if jc.LockoutDelay != nil {
		cfg.LockoutDelay = jc.LockoutDelay.Duration
	}
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
