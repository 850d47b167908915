package driven

import (
	"context"

	"github.com/marginote/shelfsync/internal/core/domain"
)

// DestinationClient manages book pages in the destination knowledge base.
type DestinationClient interface {
	// FindPage looks up an existing page by exact (title, author)
	// match. Returns the page ID, or domain.ErrNotFound when no page
	// matches. No fuzzy matching is performed.
	FindPage(ctx context.Context, title, author string) (string, error)

	// CreatePage writes the book's metadata as a new page and returns
	// the new page ID.
	CreatePage(ctx context.Context, book domain.Book) (string, error)
}

// TransferRequest carries everything the content phase needs for one book.
type TransferRequest struct {
	// Book is the merged library entry being synced.
	Book domain.Book

	// PageID is the resolved destination page identity.
	PageID string

	// Prior is the stored sync state for the book, nil on first sync.
	Prior *domain.SyncState

	// Incremental requests delta transfer from the stored cursors.
	// When false the transfer re-sends everything from the beginning.
	Incremental bool

	// OrganizeByChapter groups highlights under chapter headings.
	OrganizeByChapter bool
}

// TransferResult reports what the content phase observed.
type TransferResult struct {
	// HasUpdate is true when the source reported cursor advancement
	// relative to the request's prior state.
	HasUpdate bool

	// HighlightsCursor and NotesCursor are the freshly observed
	// synckeys. They are populated whenever the fetch succeeded, even
	// if writing to the destination subsequently failed.
	HighlightsCursor string
	NotesCursor      string
}

// ContentSyncer transfers a book's highlights and notes to its
// destination page.
//
// Transfer may return a non-nil result alongside a non-nil error: when
// the source fetch succeeded but the destination write failed, the
// result still carries the observed cursors so the caller can record
// forward progress.
type ContentSyncer interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}
