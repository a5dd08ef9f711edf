package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/robby/nest/internal/config"
	"github.com/robby/nest/internal/logging"
	"github.com/robby/nest/internal/slot"
	"github.com/robby/nest/internal/store"
	"github.com/robby/nest/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nest",
		Short: "Nested kanban boards in the terminal",
		Long: `nest is a terminal kanban where every card can open into a board of its own.

Boards start with "To Do", "In Progress" and "Done" columns. Press enter on a
card to open its board and esc to go back.

Storage:
  The board is saved after every change. The file backend (default) writes
  JSON under the data directory; sqlite and redis are also available.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newShowCmd(),
		newExportCmd(),
		newImportCmd(),
		newResetCmd(),
		newAddCardCmd(),
		newAddColumnCmd(),
		newMoveCmd(),
		newDeleteCardCmd(),
		newDeleteColumnCmd(),
		newOpenCmd(),
		newBackCmd(),
	)
	return rootCmd
}

// session is an opened store plus the resources behind it.
type session struct {
	cfg      *config.Config
	store    *store.Store
	logger   *log.Logger
	closeLog func() error
}

// openSession loads the configuration and opens the store it describes. The
// TUI logs to a file in the data directory since stderr belongs to the screen.
func openSession(cmd *cobra.Command, tuiMode bool) (*session, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logFile := ""
	if tuiMode {
		logFile = filepath.Join(cfg.Storage.DataDir, "nest.log")
	}
	logger, closeLog, err := logging.Open(cfg.Log, logFile)
	if err != nil {
		return nil, err
	}

	sl, err := slot.Open(cfg.SlotOptions())
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("opened storage", "backend", cfg.Storage.Backend, "dir", cfg.Storage.DataDir, "key", cfg.Storage.Key)

	s := store.Open(store.NewAdapter(sl, logger),
		store.WithLogger(logger),
		store.WithSaveTimeout(cfg.Storage.SaveTimeout.Duration),
	)
	return &session{cfg: cfg, store: s, logger: logger, closeLog: closeLog}, nil
}

func (s *session) Close() error {
	return errors.Join(s.store.Close(), s.closeLog())
}

// run calls fn and then closes the session, joining both errors.
func (s *session) run(fn func() error) (err error) {
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn()
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, true)
	if err != nil {
		return err
	}

	return sess.run(func() error {
		app := tui.NewAppModel(sess.store, sess.logger)

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("program error: %w", err)
		}

		// A failed save leaves the last change in memory only; try once more
		if !sess.store.Synced() {
			if err := sess.store.Flush(); err != nil {
				return fmt.Errorf("unsaved changes: %w", err)
			}
		}
		return nil
	})
}
