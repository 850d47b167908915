package services

import (
	"github.com/marginote/shelfsync/internal/core/domain"
)

// MergeBooks unions the shelf and notebook listings into one book per
// identity. Shelf entries take precedence for fields present in both;
// notebook-only books (e.g. imported books annotated but never
// shelved) are appended after the shelf in listing order.
//
// This is a pure merge over already-fetched data; it has no failure
// modes.
func MergeBooks(shelf, notebooks []domain.Book) []domain.Book {
	merged := make([]domain.Book, 0, len(shelf))
	index := make(map[string]int, len(shelf))

	for _, book := range shelf {
		index[book.ID] = len(merged)
		merged = append(merged, book)
	}

	for _, book := range notebooks {
		if i, ok := index[book.ID]; ok {
			merged[i] = merged[i].Merge(book)
			continue
		}
		index[book.ID] = len(merged)
		merged = append(merged, book)
	}

	return merged
}
