package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/robby/nest/internal/domain"
	"github.com/robby/nest/internal/slot"
	"github.com/robby/nest/internal/snapshot"
)

// Adapter persists board state in a single durable slot.
type Adapter struct {
	slot   slot.Slot
	logger *log.Logger
}

// NewAdapter wraps s. A nil logger discards output.
func NewAdapter(s slot.Slot, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{slot: s, logger: logger}
}

// Save writes the encoded state to the slot, replacing any previous value.
func (a *Adapter) Save(ctx context.Context, state domain.AppState) error {
	data, err := snapshot.Encode(state)
	if err != nil {
		return err
	}
	if err := a.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// Load reads the slot and decodes it. It reports false when the slot is
// empty, unreadable or holds a document that fails validation.
func (a *Adapter) Load(ctx context.Context) (domain.AppState, bool) {
	data, err := a.slot.Read(ctx)
	if errors.Is(err, slot.ErrEmpty) {
		a.logger.Info("no saved state, starting fresh")
		return domain.AppState{}, false
	}
	if err != nil {
		a.logger.Warn("read saved state", "err", err)
		return domain.AppState{}, false
	}

	state, err := snapshot.Decode(data)
	if err != nil {
		a.logger.Warn("discarding saved state", "err", err)
		return domain.AppState{}, false
	}
	return state, true
}

// Close releases the slot.
func (a *Adapter) Close() error {
	return a.slot.Close()
}
