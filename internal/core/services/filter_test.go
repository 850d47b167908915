package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginote/shelfsync/internal/core/domain"
)

func TestFilter_NoRestrictions(t *testing.T) {
	books := []domain.Book{
		{ID: "1", Title: "A", Status: domain.StatusUnread},
		{ID: "2", Title: "B", Status: domain.StatusFinished},
	}

	matched, stats := Filter(books, domain.SyncConfig{})

	assert.Equal(t, books, matched)
	assert.Equal(t, FilterStats{Total: 2, Matched: 2}, stats)
}

func TestFilter_ByStatus(t *testing.T) {
	books := []domain.Book{
		{ID: "1", Title: "X", Status: domain.StatusUnread},
		{ID: "2", Title: "Y", Status: domain.StatusFinished},
	}
	cfg := domain.SyncConfig{Statuses: []domain.ReadStatus{domain.StatusFinished}}

	matched, stats := Filter(books, cfg)

	assert.Len(t, matched, 1)
	assert.Equal(t, "Y", matched[0].Title)
	assert.Equal(t, 1, stats.ExcludedByStatus)
	assert.Equal(t, 0, stats.ExcludedByAuthor)
}

func TestFilter_ByAuthor(t *testing.T) {
	books := []domain.Book{
		{ID: "1", Author: "东野圭吾", Status: domain.StatusFinished},
		{ID: "2", Author: "村上春树", Status: domain.StatusFinished},
	}
	cfg := domain.SyncConfig{Authors: []string{"东野圭吾"}}

	matched, stats := Filter(books, cfg)

	assert.Len(t, matched, 1)
	assert.Equal(t, "东野圭吾", matched[0].Author)
	assert.Equal(t, 1, stats.ExcludedByAuthor)
}

func TestFilter_PredicatesAreANDed(t *testing.T) {
	books := []domain.Book{
		{ID: "1", Author: "东野圭吾", Status: domain.StatusFinished},
		{ID: "2", Author: "东野圭吾", Status: domain.StatusUnread},
		{ID: "3", Author: "村上春树", Status: domain.StatusFinished},
	}
	cfg := domain.SyncConfig{
		Statuses: []domain.ReadStatus{domain.StatusFinished},
		Authors:  []string{"东野圭吾"},
	}

	matched, stats := Filter(books, cfg)

	assert.Len(t, matched, 1)
	assert.Equal(t, "1", matched[0].ID)
	assert.Equal(t, 1, stats.ExcludedByStatus)
	assert.Equal(t, 1, stats.ExcludedByAuthor)
}

func TestFilter_PreservesOrder(t *testing.T) {
	books := []domain.Book{
		{ID: "3", Status: domain.StatusFinished},
		{ID: "1", Status: domain.StatusFinished},
		{ID: "2", Status: domain.StatusUnread},
		{ID: "4", Status: domain.StatusFinished},
	}
	cfg := domain.SyncConfig{Statuses: []domain.ReadStatus{domain.StatusFinished}}

	matched, _ := Filter(books, cfg)

	ids := make([]string, 0, len(matched))
	for _, b := range matched {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"3", "1", "4"}, ids)
}

func TestFilter_MatchedIsSubsetSatisfyingPredicates(t *testing.T) {
	books := []domain.Book{
		{ID: "1", Author: "a", Status: domain.StatusUnread},
		{ID: "2", Author: "b", Status: domain.StatusReading},
		{ID: "3", Author: "a", Status: domain.StatusFinished},
		{ID: "4", Author: "c", Status: domain.StatusFinished},
	}
	cfg := domain.SyncConfig{
		Statuses: []domain.ReadStatus{domain.StatusReading, domain.StatusFinished},
		Authors:  []string{"a", "b"},
	}

	matched, stats := Filter(books, cfg)

	for _, b := range matched {
		assert.True(t, cfg.StatusEnabled(b.Status), "book %s status", b.ID)
		assert.True(t, cfg.AuthorEnabled(b.Author), "book %s author", b.ID)
	}
	assert.Equal(t, stats.Total, stats.Matched+stats.ExcludedByStatus+stats.ExcludedByAuthor)
}

func TestFilter_DefaultConfigKeepsNotebookOnlyBooks(t *testing.T) {
	shelf := []domain.Book{
		{ID: "b1", Title: "置身事内", Status: domain.StatusFinished},
	}
	// Annotated but never shelved: the notebook listing carries no
	// reading status, so the merged book keeps the zero status.
	notebooks := []domain.Book{
		{ID: "b2", Title: "白夜行", NoteCount: 12},
	}

	merged := MergeBooks(shelf, notebooks)
	matched, stats := Filter(merged, domain.DefaultSyncConfig())

	assert.Equal(t, 2, stats.Matched)
	require.Len(t, matched, 2)
	assert.Equal(t, "b2", matched[1].ID)
	assert.Zero(t, stats.ExcludedByStatus)
}

func TestFilter_EmptyInput(t *testing.T) {
	matched, stats := Filter(nil, domain.DefaultSyncConfig())

	assert.Empty(t, matched)
	assert.Equal(t, FilterStats{}, stats)
}
