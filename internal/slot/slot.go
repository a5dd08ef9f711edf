// Package slot provides the single durable key-value slot that holds the
// serialized board state. Every backend replaces the stored value wholesale.
package slot

import (
	"context"
	"errors"
	"sync"
)

// DefaultKey is the well-known slot key.
const DefaultKey = "kanban-data"

// ErrEmpty indicates nothing has been stored in the slot yet.
var ErrEmpty = errors.New("slot is empty")

// Slot reads and overwrites one serialized value.
type Slot interface {
	// Read returns the stored value, or ErrEmpty if there is none.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored value.
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Memory is an in-process Slot, used by tests and dry runs.
type Memory struct {
	mu   sync.Mutex
	data []byte
	// FailWrites makes Write return this error when set.
	FailWrites error
}

// NewMemory returns an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns a copy of the stored value.
func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrEmpty
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores a copy of data.
func (m *Memory) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data = append([]byte(nil), data...)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
