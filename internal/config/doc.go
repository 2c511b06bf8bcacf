// Package config loads runtime configuration for verifyme.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if any, and VERIFYME_* variables.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Supported flags
//
//	-d string   data directory holding both stores
//	-e string   required email domain suffix, e.g. @gmail.com
//	-l int      initial lockout delay in seconds
//	-v string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work:
//
//	{
//	  "data_dir": "Database_txt",
//	  "users_file": "database.txt",
//	  "backup_codes_file": "backup_codes.txt",
//	  "email_domain": "@gmail.com",
//	  "digest": "sha256",
//	  "backup_code_count": 10,
//	  "lockout_delay": "30s",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
package config
