package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marginote/shelfsync/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass over the library",
	Long: `Runs one reconciliation pass: lists the WeRead library, filters it
against the sync configuration, and brings the Notion database up to
date book by book. Books that fail are reported and skipped; the run
continues with the rest.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncRunner == nil {
		if err := initRunner(); err != nil {
			return err
		}
	}

	cmd.Println("Syncing library...")

	summary, err := syncRunner.Run(cmd.Context())
	if summary != nil {
		printSummary(cmd, summary)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func printSummary(cmd *cobra.Command, s *driving.RunSummary) {
	if s.Total > 0 {
		cmd.Printf("Library: %d books, %d in scope\n", s.Total, s.Matched)
	}

	for _, r := range s.Results {
		if r.Outcome.Failed() {
			cmd.Printf("  failed: %s (%s): %v\n", r.Title, r.Outcome, r.Err)
		}
	}

	cmd.Printf("Done in %s: %d synced, %d failed, %d unchanged\n",
		s.FinishedAt.Sub(s.StartedAt).Round(time.Second),
		s.Succeeded, s.Failed, s.Skipped)
}
