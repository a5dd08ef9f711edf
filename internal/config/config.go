// Package config loads nest settings from defaults, a TOML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/robby/nest/internal/slot"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Defaults.
const (
	DefaultBackend     = slot.BackendFile
	DefaultSaveTimeout = 5 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config is the full set of settings.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where the board state slot lives.
type StorageConfig struct {
	Backend     string   `toml:"backend"`
	DataDir     string   `toml:"data_dir"`
	Key         string   `toml:"key"`
	RedisURL    string   `toml:"redis_url"`
	SaveTimeout Duration `toml:"save_timeout"`
}

// LogConfig controls the logger. An empty File lets the caller choose.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Duration is a time.Duration written as a Go duration string ("5s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     DefaultBackend,
			DataDir:     defaultDataDir(),
			Key:         slot.DefaultKey,
			SaveTimeout: Duration{DefaultSaveTimeout},
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// SlotOptions returns the options for opening the configured slot.
func (c *Config) SlotOptions() slot.Options {
	return slot.Options{
		Backend:  c.Storage.Backend,
		Dir:      c.Storage.DataDir,
		Key:      c.Storage.Key,
		RedisURL: c.Storage.RedisURL,
	}
}

var (
	validBackends = []string{slot.BackendFile, slot.BackendSQLite, slot.BackendRedis}
	validLevels   = []string{"debug", "info", "warn", "error"}
	validFormats  = []string{"text", "json", "logfmt"}
)

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(validBackends, c.Storage.Backend) {
		errs = append(errs, fmt.Errorf("%w: storage.backend %q (want one of %v)", ErrInvalid, c.Storage.Backend, validBackends))
	}
	if c.Storage.Backend == slot.BackendRedis && c.Storage.RedisURL == "" {
		errs = append(errs, fmt.Errorf("%w: storage.redis_url is required for the redis backend", ErrInvalid))
	}
	if c.Storage.Backend != slot.BackendRedis && c.Storage.DataDir == "" {
		errs = append(errs, fmt.Errorf("%w: storage.data_dir is empty", ErrInvalid))
	}
	if c.Storage.Key == "" {
		errs = append(errs, fmt.Errorf("%w: storage.key is empty", ErrInvalid))
	}
	if c.Storage.SaveTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("%w: storage.save_timeout must be positive", ErrInvalid))
	}
	if !slices.Contains(validLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("%w: log.level %q (want one of %v)", ErrInvalid, c.Log.Level, validLevels))
	}
	if !slices.Contains(validFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("%w: log.format %q (want one of %v)", ErrInvalid, c.Log.Format, validFormats))
	}
	return errors.Join(errs...)
}
