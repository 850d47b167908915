package domain

import "time"

// SyncState tracks the content-transfer progress for one book.
//
// A record is created on the first content transfer for a book and
// overwritten whole (never merged) on every subsequent transfer. The
// cursors are opaque tokens owned by the source service; equality is
// the only comparison the core performs on them.
type SyncState struct {
	// BookID links to the book being synced.
	BookID string

	// LastSync is when the last content transfer was attempted.
	LastSync time.Time

	// HighlightsCursor is the synckey covering transferred highlights.
	HighlightsCursor string

	// NotesCursor is the synckey covering transferred notes/reviews.
	NotesCursor string
}
