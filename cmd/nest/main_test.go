package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robby/nest/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config and data lookups at temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, name := range []string{"NEST_STORAGE", "NEST_DATA_DIR", "NEST_STORAGE_KEY", "NEST_LOG_FILE", "NEST_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	return t.TempDir()
}

// execute runs the CLI against dataDir and returns stdout.
func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data-dir", dataDir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := execute(t, dataDir, args...)
	require.NoError(t, err, "nest %s", strings.Join(args, " "))
	return out
}

func TestCLI_ShowDefaultBoard(t *testing.T) {
	dir := isolate(t)

	out := mustExecute(t, dir, "show")
	assert.Contains(t, out, "My Projects")
	assert.Contains(t, out, "To Do (0) [col-1]")
	assert.Contains(t, out, "In Progress (0) [col-2]")
	assert.Contains(t, out, "Done (0) [col-3]")
}

func TestCLI_ChangesPersist(t *testing.T) {
	dir := isolate(t)

	id := strings.TrimSpace(mustExecute(t, dir, "add-card", "col-1", "Write", "release", "notes"))
	require.Len(t, id, 36)

	out := mustExecute(t, dir, "show")
	assert.Contains(t, out, "Write release notes ["+id+"]")

	mustExecute(t, dir, "move", id, "col-3", "0")
	out = mustExecute(t, dir, "show")
	assert.Contains(t, out, "To Do (0)")
	assert.Contains(t, out, "Done (1)")

	colID := strings.TrimSpace(mustExecute(t, dir, "add-column", "Blocked"))
	assert.Contains(t, mustExecute(t, dir, "show"), "Blocked (0) ["+colID+"]")

	mustExecute(t, dir, "delete-column", colID)
	assert.NotContains(t, mustExecute(t, dir, "show"), "Blocked")

	mustExecute(t, dir, "delete-card", id)
	assert.NotContains(t, mustExecute(t, dir, "show"), "Write release notes")
}

func TestCLI_OpenAndBack(t *testing.T) {
	dir := isolate(t)
	id := strings.TrimSpace(mustExecute(t, dir, "add-card", "col-1", "Epic"))

	out := mustExecute(t, dir, "open", id)
	assert.Contains(t, out, "My Projects › Epic")
	assert.Contains(t, out, "[col-"+id+"-1]")

	// Navigation is part of the saved state
	assert.Contains(t, mustExecute(t, dir, "show"), "My Projects › Epic")

	out = mustExecute(t, dir, "back")
	assert.NotContains(t, out, "›")
	assert.Contains(t, out, "Epic ▸")

	_, err := execute(t, dir, "back")
	assert.ErrorIs(t, err, store.ErrBoardNotFound)
}

func TestCLI_ExportImportReset(t *testing.T) {
	dir := isolate(t)
	mustExecute(t, dir, "add-card", "col-2", "Keep me")

	file := filepath.Join(t.TempDir(), "backup.json")
	assert.Contains(t, mustExecute(t, dir, "export", "-o", file), "Exported to")

	_, err := execute(t, dir, "reset")
	require.Error(t, err, "reset requires --yes")
	assert.Contains(t, mustExecute(t, dir, "show"), "Keep me")

	mustExecute(t, dir, "reset", "--yes")
	assert.NotContains(t, mustExecute(t, dir, "show"), "Keep me")

	out := mustExecute(t, dir, "import", file)
	assert.Contains(t, out, "Imported 1 boards, 3 columns, 1 cards")
	assert.Contains(t, mustExecute(t, dir, "show"), "Keep me")

	stdout := mustExecute(t, dir, "export")
	assert.Contains(t, stdout, `"exportedAt"`)
	assert.Contains(t, stdout, `"Keep me"`)
}

func TestCLI_Errors(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing column", []string{"add-card", "nope", "x"}, store.ErrColumnNotFound},
		{"missing card to move", []string{"move", "nope", "col-1", "0"}, store.ErrCardNotFound},
		{"missing card to open", []string{"open", "nope"}, store.ErrCardNotFound},
		{"missing column to delete", []string{"delete-column", "nope"}, store.ErrColumnNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, dir, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("bad index", func(t *testing.T) {
		_, err := execute(t, dir, "move", "c1", "col-1", "first")
		assert.ErrorContains(t, err, "invalid index")
	})

	t.Run("bad import keeps state", func(t *testing.T) {
		mustExecute(t, dir, "add-card", "col-1", "Survivor")
		_, err := execute(t, dir, "import", filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
		assert.Contains(t, mustExecute(t, dir, "show"), "Survivor")
	})
}

func TestSession_RunReportsCloseErrors(t *testing.T) {
	errClose := errors.New("close log")
	errRun := errors.New("run failed")
	newSession := func() *session {
		return &session{store: store.New(), closeLog: func() error { return errClose }}
	}

	err := newSession().run(func() error { return nil })
	assert.ErrorIs(t, err, errClose)

	err = newSession().run(func() error { return errRun })
	assert.ErrorIs(t, err, errRun)
	assert.ErrorIs(t, err, errClose)

	ok := &session{store: store.New(), closeLog: func() error { return nil }}
	assert.NoError(t, ok.run(func() error { return nil }))
}
