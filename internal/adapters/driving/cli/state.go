package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect stored sync state",
	Long: `Shows and manages the per-book cursors recorded after each sync.
Clearing a book's state forces a full re-transfer of its content on
the next run.`,
	RunE: runStateList,
}

var stateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sync state for all books",
	RunE:  runStateList,
}

var clearAll bool

var stateClearCmd = &cobra.Command{
	Use:   "clear <book-id>",
	Short: "Clear sync state for a book, or all books with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStateClear,
}

func init() {
	stateClearCmd.Flags().BoolVar(&clearAll, "all", false, "clear state for every book")
	stateCmd.AddCommand(stateListCmd)
	stateCmd.AddCommand(stateClearCmd)
	rootCmd.AddCommand(stateCmd)
}

func runStateList(cmd *cobra.Command, _ []string) error {
	if stateStore == nil {
		if err := initStateStore(); err != nil {
			return err
		}
	}

	states, err := stateStore.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing sync state: %w", err)
	}

	if len(states) == 0 {
		cmd.Println("No sync state recorded yet.")
		return nil
	}

	for _, s := range states {
		cmd.Printf("%s  last synced %s  (highlights %s, notes %s)\n",
			s.BookID, s.LastSync.Format(time.RFC3339),
			orDash(s.HighlightsCursor), orDash(s.NotesCursor))
	}
	return nil
}

func runStateClear(cmd *cobra.Command, args []string) error {
	if stateStore == nil {
		if err := initStateStore(); err != nil {
			return err
		}
	}

	ctx := cmd.Context()

	if clearAll {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with a book ID")
		}
		states, err := stateStore.List(ctx)
		if err != nil {
			return fmt.Errorf("listing sync state: %w", err)
		}
		for _, s := range states {
			if err := stateStore.Delete(ctx, s.BookID); err != nil {
				return fmt.Errorf("clearing sync state for %s: %w", s.BookID, err)
			}
		}
		cmd.Printf("Cleared sync state for %d books. The next run will re-transfer everything.\n", len(states))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("a book ID or --all is required")
	}

	bookID := args[0]
	if err := stateStore.Delete(ctx, bookID); err != nil {
		return fmt.Errorf("clearing sync state: %w", err)
	}

	cmd.Printf("Cleared sync state for %s. The next run will re-transfer its content.\n", bookID)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
