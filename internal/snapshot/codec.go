// Package snapshot encodes board state as JSON and decodes untrusted documents,
// rejecting any that do not describe a consistent state.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robby/nest/internal/domain"
)

var (
	// ErrMalformed indicates the input is not parseable JSON.
	ErrMalformed = errors.New("malformed JSON document")
	// ErrInvalidDocument indicates parseable JSON that is not a valid board state.
	ErrInvalidDocument = errors.New("invalid board document")
)

// FieldError is a structural problem found by the schema check.
type FieldError struct {
	Path    string
	Message string
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Export is the shape of an exported document. ExportedAt is informational
// and ignored on import.
type Export struct {
	domain.AppState
	ExportedAt string `json:"exportedAt"`
}

// ExportFilename returns the default file name for an export taken at t.
func ExportFilename(t time.Time) string {
	return "kanban-" + t.UTC().Format(time.DateOnly) + ".json"
}

// Encode serializes the state for the durable slot.
func Encode(state domain.AppState) ([]byte, error) {
	data, err := json.Marshal(state.Normalize())
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// EncodeExport serializes the state as an export document stamped with at,
// indented with two spaces.
func EncodeExport(state domain.AppState, at time.Time) ([]byte, error) {
	doc := Export{
		AppState:   state.Normalize(),
		ExportedAt: at.UTC().Format(time.RFC3339Nano),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// Decode parses a persisted or exported document. The structure is checked
// against the state schema, then every state invariant is checked. A missing
// or null history decodes as empty.
func Decode(data []byte) (domain.AppState, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.AppState{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	sch, err := schema()
	if err != nil {
		return domain.AppState{}, err
	}
	if err := sch.Validate(raw); err != nil {
		return domain.AppState{}, fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(schemaErrors(err)...))
	}

	var doc Export
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.AppState{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	state := doc.AppState.Normalize()
	if err := state.Validate(); err != nil {
		return domain.AppState{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return state, nil
}
