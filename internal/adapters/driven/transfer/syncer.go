// Package transfer implements the ContentSyncer port by composing the
// source's highlight/note fetches with destination block writes. The
// fetch side hands back synckeys; those are surfaced on the result even
// when a destination write fails, so the caller can record forward
// progress for everything that did land.
package transfer

import (
	"context"
	"fmt"

	"github.com/marginote/shelfsync/internal/adapters/driven/notion"
	"github.com/marginote/shelfsync/internal/adapters/driven/weread"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
)

// ContentSource fetches a book's annotations, optionally incrementally
// from a prior synckey.
type ContentSource interface {
	FetchHighlights(ctx context.Context, bookID, synckey string) (*weread.HighlightPage, error)
	FetchNotes(ctx context.Context, bookID, synckey string) (*weread.NotePage, error)
}

// PageWriter appends annotation content to a destination page.
type PageWriter interface {
	AppendHighlights(ctx context.Context, pageID string, passages []notion.Passage, byChapter bool) error
	AppendNotes(ctx context.Context, pageID string, thoughts []notion.Thought, byChapter bool) error
}

// Ensure Syncer implements the interface.
var _ driven.ContentSyncer = (*Syncer)(nil)

// Syncer transfers highlights and notes from source to destination.
type Syncer struct {
	source ContentSource
	writer PageWriter
}

// NewSyncer creates a content syncer.
func NewSyncer(source ContentSource, writer PageWriter) *Syncer {
	return &Syncer{source: source, writer: writer}
}

// Transfer fetches and writes one book's content. Highlights are
// handled before notes, and each fetch's synckey is recorded on the
// result as soon as it is known.
func (s *Syncer) Transfer(ctx context.Context, req driven.TransferRequest) (*driven.TransferResult, error) {
	priorHighlights, priorNotes := "", ""
	if req.Incremental && req.Prior != nil {
		priorHighlights = req.Prior.HighlightsCursor
		priorNotes = req.Prior.NotesCursor
	}

	// Seed the result from the stored state, whatever the mode, so a
	// failure before a fetch never hands back an emptier cursor than
	// the one already persisted.
	result := &driven.TransferResult{}
	if req.Prior != nil {
		result.HighlightsCursor = req.Prior.HighlightsCursor
		result.NotesCursor = req.Prior.NotesCursor
	}

	highlights, err := s.source.FetchHighlights(ctx, req.Book.ID, priorHighlights)
	if err != nil {
		return nil, fmt.Errorf("fetching highlights: %w", err)
	}
	result.HighlightsCursor = highlights.Synckey

	if err := s.writer.AppendHighlights(ctx, req.PageID, passages(highlights.Highlights), req.OrganizeByChapter); err != nil {
		return s.finish(result, req), fmt.Errorf("writing highlights: %w", err)
	}

	notes, err := s.source.FetchNotes(ctx, req.Book.ID, priorNotes)
	if err != nil {
		return s.finish(result, req), fmt.Errorf("fetching notes: %w", err)
	}
	result.NotesCursor = notes.Synckey

	if err := s.writer.AppendNotes(ctx, req.PageID, thoughts(notes.Notes), req.OrganizeByChapter); err != nil {
		return s.finish(result, req), fmt.Errorf("writing notes: %w", err)
	}

	return s.finish(result, req), nil
}

// finish computes cursor advancement relative to the prior state.
func (s *Syncer) finish(result *driven.TransferResult, req driven.TransferRequest) *driven.TransferResult {
	result.HasUpdate = req.Prior == nil ||
		result.HighlightsCursor != req.Prior.HighlightsCursor ||
		result.NotesCursor != req.Prior.NotesCursor
	return result
}

func passages(highlights []weread.Highlight) []notion.Passage {
	out := make([]notion.Passage, 0, len(highlights))
	for _, h := range highlights {
		out = append(out, notion.Passage{
			ChapterTitle: h.ChapterTitle,
			Text:         h.Text,
		})
	}
	return out
}

func thoughts(notes []weread.Note) []notion.Thought {
	out := make([]notion.Thought, 0, len(notes))
	for _, n := range notes {
		out = append(out, notion.Thought{
			ChapterTitle: n.ChapterTitle,
			Quote:        n.Abstract,
			Comment:      n.Content,
		})
	}
	return out
}
