package notion

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/marginote/shelfsync/internal/core/domain"
)

// Book database property names. These must match the destination
// database schema.
const (
	PropTitle       = "书名"
	PropAuthor      = "作者"
	PropStatus      = "状态"
	PropISBN        = "ISBN"
	PropPublisher   = "出版社"
	PropSynopsis    = "简介"
	PropPublishDate = "出版日期"
	PropNoteCount   = "笔记数"
	PropSyncedAt    = "同步时间"
)

// maxRichTextLen is Notion's limit for a single rich text content field.
const maxRichTextLen = 2000

// buildBookProperties maps a book onto the destination page schema.
// Empty optional fields are omitted so they render as blank cells.
func buildBookProperties(book domain.Book, now time.Time) notionapi.Properties {
	props := notionapi.Properties{
		PropTitle: notionapi.TitleProperty{
			Title: richText(book.Title),
		},
		PropAuthor: notionapi.RichTextProperty{
			RichText: richText(book.Author),
		},
		PropNoteCount: notionapi.NumberProperty{
			Number: float64(book.NoteCount),
		},
	}

	if book.Status != "" {
		props[PropStatus] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(book.Status)},
		}
	}
	if book.ISBN != "" {
		props[PropISBN] = notionapi.RichTextProperty{RichText: richText(book.ISBN)}
	}
	if book.Publisher != "" {
		props[PropPublisher] = notionapi.RichTextProperty{RichText: richText(book.Publisher)}
	}
	if book.Synopsis != "" {
		props[PropSynopsis] = notionapi.RichTextProperty{RichText: richText(truncate(book.Synopsis, maxRichTextLen))}
	}
	if book.PublishDate != "" {
		props[PropPublishDate] = notionapi.RichTextProperty{RichText: richText(book.PublishDate)}
	}

	syncedAt := notionapi.Date(now)
	props[PropSyncedAt] = notionapi.DateProperty{
		Date: &notionapi.DateObject{Start: &syncedAt},
	}

	return props
}

// richText wraps a plain string as a single-element rich text array.
func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: s}},
	}
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

// plainText flattens a rich text property value back into a string.
// The API populates PlainText on reads; Text.Content is the fallback
// for values this client built itself.
func plainText(rts []notionapi.RichText) string {
	var out string
	for _, rt := range rts {
		if rt.PlainText != "" {
			out += rt.PlainText
			continue
		}
		if rt.Text != nil {
			out += rt.Text.Content
		}
	}
	return out
}
