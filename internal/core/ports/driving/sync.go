package driving

import (
	"context"
	"time"

	"github.com/marginote/shelfsync/internal/core/domain"
)

// SyncRunner drives one reconciliation run over the whole library.
type SyncRunner interface {
	// Run lists, filters and reconciles every in-scope book.
	// Per-book failures are contained in the summary; only a run-level
	// fatal error (e.g. the library cannot be listed at all) is
	// returned, alongside whatever summary had accumulated.
	Run(ctx context.Context) (*RunSummary, error)
}

// ItemResult is the reconciliation result for a single book.
type ItemResult struct {
	// BookID identifies the book.
	BookID string

	// Title is the display title, for reporting.
	Title string

	// Outcome is the per-book reconciliation outcome.
	Outcome domain.Outcome

	// Err is the contained item-level error, nil unless Outcome is a
	// failure.
	Err error
}

// RunSummary aggregates the results of one run.
type RunSummary struct {
	// RunID uniquely identifies the run.
	RunID string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Total is the library size before filtering.
	Total int

	// Matched is the number of books in scope after filtering.
	Matched int

	// Succeeded counts Created and Updated outcomes.
	Succeeded int

	// Failed counts MetadataFailed and ContentFailed outcomes.
	Failed int

	// Skipped counts books with no new content.
	Skipped int

	// Results holds the per-book outcomes in processing order.
	Results []ItemResult
}
