package services

import (
	"github.com/marginote/shelfsync/internal/core/domain"
)

// FilterStats reports how filtering scoped the library.
// The counts are observability-only; they carry no control-flow weight.
type FilterStats struct {
	// Total is the input library size.
	Total int

	// Matched is the number of books that passed both predicates.
	Matched int

	// ExcludedByStatus counts books whose status is not enabled.
	ExcludedByStatus int

	// ExcludedByAuthor counts books whose status passed but whose
	// author is not enabled.
	ExcludedByAuthor int
}

// Filter returns the books in scope for the given configuration.
//
// A book matches iff its status is enabled AND its author is enabled;
// an empty status or author set disables that predicate. Input order
// is preserved and the input slice is never mutated. Filtering is
// deterministic and has no failure modes: a malformed status label
// simply never matches and is counted as excluded.
func Filter(books []domain.Book, cfg domain.SyncConfig) ([]domain.Book, FilterStats) {
	stats := FilterStats{Total: len(books)}

	matched := make([]domain.Book, 0, len(books))
	for _, book := range books {
		if !cfg.StatusEnabled(book.Status) {
			stats.ExcludedByStatus++
			continue
		}
		if !cfg.AuthorEnabled(book.Author) {
			stats.ExcludedByAuthor++
			continue
		}
		matched = append(matched, book)
	}

	stats.Matched = len(matched)
	return matched, stats
}
