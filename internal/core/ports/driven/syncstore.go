package driven

import (
	"context"

	"github.com/marginote/shelfsync/internal/core/domain"
)

// SyncStateStore persists per-book sync progress.
//
// Saves are last-write-wins whole-record overwrites; the store is
// assumed to have a single writer for the duration of a run.
type SyncStateStore interface {
	// Save stores or overwrites the sync state for a book.
	Save(ctx context.Context, state domain.SyncState) error

	// Get retrieves sync state for a book.
	// Returns domain.ErrNotFound when the book was never synced.
	Get(ctx context.Context, bookID string) (*domain.SyncState, error)

	// List returns all stored sync states.
	List(ctx context.Context) ([]domain.SyncState, error)

	// Delete removes sync state for a book, forcing a full re-transfer
	// on the next run. Never called by the core reconciler.
	Delete(ctx context.Context, bookID string) error
}
