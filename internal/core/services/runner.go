package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/marginote/shelfsync/internal/core/domain"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
	"github.com/marginote/shelfsync/internal/core/ports/driving"
	"github.com/marginote/shelfsync/internal/logger"
)

// DefaultPace is the fixed delay applied after each book, to respect
// rate constraints of the external services.
const DefaultPace = time.Second

// Ensure Runner implements the interface.
var _ driving.SyncRunner = (*Runner)(nil)

// Runner drives the batch reconciliation loop: configure, list,
// filter, iterate, summarize.
//
// Iteration is strictly sequential. The sync state store has no
// concurrency guard, so books must never be processed in parallel.
type Runner struct {
	source     driven.SourceClient
	config     driven.SyncConfigStore
	reconciler *Reconciler
	pace       time.Duration
}

// NewRunner creates a batch runner. The config store may be nil, in
// which case the permissive default configuration is synthesised in
// memory for every run.
func NewRunner(
	source driven.SourceClient,
	config driven.SyncConfigStore,
	reconciler *Reconciler,
) *Runner {
	return &Runner{
		source:     source,
		config:     config,
		reconciler: reconciler,
		pace:       DefaultPace,
	}
}

// SetPace overrides the inter-book pacing delay.
func (r *Runner) SetPace(d time.Duration) {
	if d > 0 {
		r.pace = d
	}
}

// Run executes one reconciliation pass over the whole library.
func (r *Runner) Run(ctx context.Context) (*driving.RunSummary, error) {
	summary := &driving.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() { summary.FinishedAt = time.Now() }()

	cfg, err := r.loadConfig(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", domain.ErrConfigUnavailable, err)
	}

	opts := ItemOptions{
		Incremental:       cfg.Incremental(),
		OrganizeByChapter: cfg.OrganizeByChapter,
	}
	logger.Info("Sync mode: %s, organize by chapter: %v", cfg.Mode, cfg.OrganizeByChapter)

	// Fail fast on an expired session instead of part-way into the loop.
	if err := r.source.Validate(ctx); err != nil {
		return summary, fmt.Errorf("validate session: %w", err)
	}

	// Listing failures are run-level fatal and are not retried.
	logger.Section("Listing library")
	shelf, err := r.source.ListShelf(ctx)
	if err != nil {
		return summary, fmt.Errorf("list shelf: %w", err)
	}
	notebooks, err := r.source.ListNotebooks(ctx)
	if err != nil {
		return summary, fmt.Errorf("list notebooks: %w", err)
	}
	books := MergeBooks(shelf, notebooks)

	matched, stats := Filter(books, cfg)
	summary.Total = stats.Total
	summary.Matched = stats.Matched
	logger.Info("Library: %d books, %d in scope (%d excluded by status, %d by author)",
		stats.Total, stats.Matched, stats.ExcludedByStatus, stats.ExcludedByAuthor)

	// One book per pacing interval, strictly in order. The bucket
	// starts full, so drain it up front: the delay must apply after
	// every book, including the first.
	limiter := rate.NewLimiter(rate.Every(r.pace), 1)
	limiter.Allow()

	for _, book := range matched {
		result := r.reconciler.Reconcile(ctx, book, opts)
		r.fold(summary, result)

		if err := limiter.Wait(ctx); err != nil {
			return summary, fmt.Errorf("pacing: %w", err)
		}
	}

	logger.Info("Run %s complete: %d succeeded, %d failed, %d skipped",
		summary.RunID, summary.Succeeded, summary.Failed, summary.Skipped)
	return summary, nil
}

// loadConfig ensures a configuration exists and loads it, creating the
// permissive default when the store is empty. With no store designated
// the default is synthesised in memory.
func (r *Runner) loadConfig(ctx context.Context) (domain.SyncConfig, error) {
	if r.config == nil {
		return domain.DefaultSyncConfig(), nil
	}

	exists, err := r.config.Exists(ctx)
	if err != nil {
		return domain.SyncConfig{}, fmt.Errorf("check configuration: %w", err)
	}
	if !exists {
		logger.Info("No sync configuration found, creating default")
		if err := r.config.CreateDefault(ctx); err != nil {
			return domain.SyncConfig{}, fmt.Errorf("create default configuration: %w", err)
		}
	}

	cfg, err := r.config.Load(ctx)
	if err != nil {
		return domain.SyncConfig{}, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// fold accumulates one result into the running counters.
func (r *Runner) fold(summary *driving.RunSummary, result driving.ItemResult) {
	summary.Results = append(summary.Results, result)

	switch {
	case result.Outcome.Succeeded():
		summary.Succeeded++
		logger.Debug("%s: %s", result.Title, result.Outcome)
	case result.Outcome.Failed():
		summary.Failed++
		logger.Warn("%s: %s: %v", result.Title, result.Outcome, result.Err)
	default:
		summary.Skipped++
		logger.Debug("%s: no new content", result.Title)
	}
}
