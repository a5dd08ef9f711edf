package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/robby/nest/internal/domain"
	"github.com/robby/nest/internal/store"
	"github.com/spf13/cobra"
)

// withStore opens a session for a subcommand and closes it afterwards.
func withStore(fn func(cmd *cobra.Command, args []string, s *store.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd, false)
		if err != nil {
			return err
		}
		return sess.run(func() error {
			return fn(cmd, args, sess.store)
		})
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current board",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ []string, s *store.Store) error {
			printBoard(cmd.OutOrStdout(), s)
			return nil
		}),
	}
}

func printBoard(w io.Writer, s *store.Store) {
	crumbs := s.Breadcrumbs()
	titles := make([]string, len(crumbs))
	for i, b := range crumbs {
		titles[i] = b.Title
	}
	fmt.Fprintln(w, strings.Join(titles, " › "))

	for _, col := range s.GetColumns() {
		cards := s.GetColumnCards(col.ID)
		fmt.Fprintf(w, "\n%s (%d) [%s]\n", col.Title, len(cards), col.ID)
		for _, card := range cards {
			marker := ""
			if s.GetBoard(domain.SubBoardID(card.ID)) != nil {
				marker = " ▸"
			}
			fmt.Fprintf(w, "  %s%s [%s]\n", card.Title, marker, card.ID)
		}
	}
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all boards as JSON",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ []string, s *store.Store) error {
			data, err := s.ExportData()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), data)
				return err
			}
			if err := os.WriteFile(output, []byte(data), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all boards with an export",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, s *store.Store) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			if err := s.ImportData(string(data)); err != nil {
				return err
			}
			state := s.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d boards, %d columns, %d cards\n",
				len(state.Boards), len(state.Columns), len(state.Cards))
			return nil
		}),
	}
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete everything and start from the default board",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ []string, s *store.Store) error {
			if !yes {
				return errors.New("reset deletes all boards; pass --yes to confirm")
			}
			if err := s.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reset to the default board")
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}

func newAddCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-card <column-id> <title>",
		Short: "Add a card to the bottom of a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, s *store.Store) error {
			if s.GetColumn(args[0]) == nil {
				return fmt.Errorf("%w: %s", store.ErrColumnNotFound, args[0])
			}
			title := strings.Join(args[1:], " ")
			id, err := s.AddCard(args[0], title)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}
}

func newAddColumnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-column <title>",
		Short: "Add a column to the current board",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, s *store.Store) error {
			id, err := s.AddColumn(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		}),
	}
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <card-id> <column-id> <index>",
		Short: "Move a card to a position in a column",
		Args:  cobra.ExactArgs(3),
		RunE: withStore(func(_ *cobra.Command, args []string, s *store.Store) error {
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[2], err)
			}
			if s.GetCard(args[0]) == nil {
				return fmt.Errorf("%w: %s", store.ErrCardNotFound, args[0])
			}
			if s.GetColumn(args[1]) == nil {
				return fmt.Errorf("%w: %s", store.ErrColumnNotFound, args[1])
			}
			return s.MoveCard(args[0], args[1], index)
		}),
	}
}

func newDeleteCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-card <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(_ *cobra.Command, args []string, s *store.Store) error {
			if s.GetCard(args[0]) == nil {
				return fmt.Errorf("%w: %s", store.ErrCardNotFound, args[0])
			}
			return s.DeleteCard(args[0])
		}),
	}
}

func newDeleteColumnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-column <column-id>",
		Short: "Delete a column and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(_ *cobra.Command, args []string, s *store.Store) error {
			if s.GetColumn(args[0]) == nil {
				return fmt.Errorf("%w: %s", store.ErrColumnNotFound, args[0])
			}
			return s.DeleteColumn(args[0])
		}),
	}
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <card-id>",
		Short: "Make a card's board the current board",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, s *store.Store) error {
			if s.GetCard(args[0]) == nil {
				return fmt.Errorf("%w: %s", store.ErrCardNotFound, args[0])
			}
			if err := s.OpenBoard(args[0]); err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), s)
			return nil
		}),
	}
}

func newBackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Return to the previous board",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ []string, s *store.Store) error {
			if !s.CanGoBack() {
				return fmt.Errorf("%w: already at the top board", store.ErrBoardNotFound)
			}
			if err := s.GoBack(); err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), s)
			return nil
		}),
	}
}
