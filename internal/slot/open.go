package slot

import (
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // Data directory for the file and sqlite backends
	Key      string
	RedisURL string
}

// Open returns the slot described by opts.
func Open(opts Options) (Slot, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}

	switch opts.Backend {
	case BackendFile, "":
		return NewFile(FilePath(opts.Dir, key)), nil
	case BackendSQLite:
		return NewSQLite(filepath.Join(opts.Dir, "nest.db"), key)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a redis url")
		}
		return DialRedis(opts.RedisURL, key)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
