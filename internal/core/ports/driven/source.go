package driven

import (
	"context"

	"github.com/marginote/shelfsync/internal/core/domain"
)

// SourceClient reads the user's library from the source service.
//
// Listing failures are run-level fatal: the core does not retry them
// and aborts the run. The detail lookup is best-effort; a partial or
// absent result is valid.
type SourceClient interface {
	// Validate checks the session is still usable.
	// Returns domain.ErrSessionExpired when the cookie has lapsed.
	Validate(ctx context.Context) error

	// ListShelf returns every book on the user's shelf.
	ListShelf(ctx context.Context) ([]domain.Book, error)

	// ListNotebooks returns every book with highlights or notes.
	ListNotebooks(ctx context.Context) ([]domain.Book, error)

	// FetchBookDetail returns supplementary bibliographic fields for a
	// book. Returns domain.ErrNotFound when the source has no detail.
	FetchBookDetail(ctx context.Context, bookID string) (*domain.BookDetail, error)
}
