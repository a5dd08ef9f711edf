package slot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores the slot as a single JSON file. Writes go to a temporary file
// that is renamed over the target, so readers never see a partial value.
type File struct {
	path string
}

// NewFile returns a slot backed by the file at path. The parent directory is
// created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// FilePath returns the conventional slot file for key inside dir.
func FilePath(dir, key string) string {
	return filepath.Join(dir, key+".json")
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Read returns the file contents, or ErrEmpty if the file is missing or empty.
func (f *File) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

// Write atomically replaces the file contents.
func (f *File) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create slot directory: %w", err)
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("write temporary slot file: %w", err)
	}
	if err := os.Rename(tempPath, f.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace slot file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }
