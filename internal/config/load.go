package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Flag names shared with the command line.
const (
	FlagConfig      = "config"
	FlagStorage     = "storage"
	FlagDataDir     = "data-dir"
	FlagStorageKey  = "storage-key"
	FlagRedisURL    = "redis-url"
	FlagSaveTimeout = "save-timeout"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
	FlagLogFile     = "log-file"
)

// RegisterFlags adds the configuration flags to flags. Flag defaults are empty
// so that only flags set explicitly override the lower layers.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "config file (default $XDG_CONFIG_HOME/nest/config.toml)")
	flags.String(FlagStorage, "", "storage backend: file, sqlite or redis")
	flags.String(FlagDataDir, "", "directory for the file and sqlite backends")
	flags.String(FlagStorageKey, "", "slot key (default kanban-data)")
	flags.String(FlagRedisURL, "", "redis URL for the redis backend")
	flags.Duration(FlagSaveTimeout, 0, "timeout for each save")
	flags.String(FlagLogLevel, "", "log level: debug, info, warn or error")
	flags.String(FlagLogFormat, "", "log format: text, json or logfmt")
	flags.String(FlagLogFile, "", "log file")
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. Config file (--config, else the user config dir if present)
// 3. Environment variables
// 4. Flags explicitly set on flags (flags may be nil)
func Load(flags *pflag.FlagSet) (*Config, error) {
	cfg := Default()

	path, explicit := "", false
	if flags != nil {
		if v, _ := flags.GetString(FlagConfig); v != "" {
			path, explicit = v, true
		}
	}
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(cfg, path, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if flags != nil {
		if err := applyFlags(cfg, flags); err != nil {
			return nil, fmt.Errorf("parsing flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the user config file location, or "" if the user
// config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nest", "config.toml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "nest")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nest"
	}
	return filepath.Join(home, ".local", "share", "nest")
}

// loadFile decodes path over cfg. A missing file is only an error when the
// path was given explicitly. Unknown keys are rejected.
func loadFile(cfg *Config, path string, explicit bool) error {
	meta, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("NEST_STORAGE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("NEST_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("NEST_STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("NEST_REDIS_URL"); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := os.Getenv("NEST_SAVE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Storage.SaveTimeout = Duration{d}
		}
	}
	if v := os.Getenv("NEST_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("NEST_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("NEST_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func applyFlags(cfg *Config, flags *pflag.FlagSet) error {
	stringFlags := map[string]*string{
		FlagStorage:    &cfg.Storage.Backend,
		FlagDataDir:    &cfg.Storage.DataDir,
		FlagStorageKey: &cfg.Storage.Key,
		FlagRedisURL:   &cfg.Storage.RedisURL,
		FlagLogLevel:   &cfg.Log.Level,
		FlagLogFormat:  &cfg.Log.Format,
		FlagLogFile:    &cfg.Log.File,
	}
	for name, dst := range stringFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if flags.Lookup(FlagSaveTimeout) != nil && flags.Changed(FlagSaveTimeout) {
		d, err := flags.GetDuration(FlagSaveTimeout)
		if err != nil {
			return err
		}
		cfg.Storage.SaveTimeout = Duration{d}
	}
	return nil
}
