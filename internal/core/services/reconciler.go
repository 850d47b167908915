package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marginote/shelfsync/internal/core/domain"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
	"github.com/marginote/shelfsync/internal/core/ports/driving"
	"github.com/marginote/shelfsync/internal/logger"
)

// ItemOptions are the effective per-run flags derived from the sync
// configuration. They are fixed for the whole run.
type ItemOptions struct {
	// Incremental is false when the run forces a full re-transfer.
	Incremental bool

	// OrganizeByChapter groups destination content by chapter.
	OrganizeByChapter bool
}

// Reconciler processes one book at a time: resolves the destination
// page, writes metadata when the page is new, transfers content, and
// records cursor progress.
//
// All failures are contained: every path converts to an ItemResult and
// never propagates to sibling books.
type Reconciler struct {
	source   driven.SourceClient
	dest     driven.DestinationClient
	transfer driven.ContentSyncer
	states   driven.SyncStateStore

	// now is injectable for tests.
	now func() time.Time
}

// NewReconciler creates a per-book reconciler.
func NewReconciler(
	source driven.SourceClient,
	dest driven.DestinationClient,
	transfer driven.ContentSyncer,
	states driven.SyncStateStore,
) *Reconciler {
	return &Reconciler{
		source:   source,
		dest:     dest,
		transfer: transfer,
		states:   states,
		now:      time.Now,
	}
}

// Reconcile runs the full per-book pipeline and returns the outcome.
func (r *Reconciler) Reconcile(ctx context.Context, book domain.Book, opts ItemOptions) driving.ItemResult {
	result := driving.ItemResult{BookID: book.ID, Title: book.Title}

	// 1. Identity resolution: exact (title, author) match.
	pageID, err := r.dest.FindPage(ctx, book.Title, book.Author)
	exists := err == nil
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		result.Outcome = domain.OutcomeMetadataFailed
		result.Err = fmt.Errorf("find page: %w", err)
		return result
	}

	// 2. Metadata phase. Skipped entirely when the page already exists.
	if !exists {
		pageID, err = r.createPage(ctx, book)
		if err != nil {
			result.Outcome = domain.OutcomeMetadataFailed
			result.Err = err
			return result
		}
	}

	// 3. Content phase, consulting the stored cursors.
	prior, err := r.states.Get(ctx, book.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Reading sync state for %s: %v", book.ID, err)
		prior = nil
	}

	res, transferErr := r.transfer.Transfer(ctx, driven.TransferRequest{
		Book:              book,
		PageID:            pageID,
		Prior:             prior,
		Incremental:       opts.Incremental,
		OrganizeByChapter: opts.OrganizeByChapter,
	})
	observed := res != nil
	if !observed {
		res = &driven.TransferResult{}
	}

	// 4. Update decision: full mode always counts as an update.
	changed := res.HasUpdate || !opts.Incremental
	if transferErr == nil && !changed {
		// Previous cursors remain valid; the store is left untouched.
		result.Outcome = domain.OutcomeSkipped
		return result
	}

	// 5. State persistence. Freshly observed cursors are recorded even
	// when the transfer failed, so the next incremental pass does not
	// reprocess the already-advanced range. A failure with nothing
	// observed leaves the stored cursors alone.
	if observed && changed {
		state := domain.SyncState{
			BookID:           book.ID,
			LastSync:         r.now(),
			HighlightsCursor: res.HighlightsCursor,
			NotesCursor:      res.NotesCursor,
		}
		if err := r.states.Save(ctx, state); err != nil {
			logger.Warn("Saving sync state for %s: %v", book.ID, err)
		}
	}

	if transferErr != nil {
		result.Outcome = domain.OutcomeContentFailed
		result.Err = fmt.Errorf("transfer content: %w", transferErr)
		return result
	}

	if exists {
		result.Outcome = domain.OutcomeUpdated
	} else {
		result.Outcome = domain.OutcomeCreated
	}
	return result
}

// createPage enriches the book from the detail lookup and writes its
// metadata as a new destination page.
func (r *Reconciler) createPage(ctx context.Context, book domain.Book) (string, error) {
	detail, err := r.source.FetchBookDetail(ctx, book.ID)
	if err != nil {
		// Best-effort enrichment: a missing detail is not an error.
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Detail lookup for %s: %v", book.ID, err)
		}
		detail = nil
	}
	book = book.MergeDetail(detail)

	pageID, err := r.dest.CreatePage(ctx, book)
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	if pageID == "" {
		return "", domain.ErrNoPageID
	}
	return pageID, nil
}
