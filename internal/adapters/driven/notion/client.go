package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/marginote/shelfsync/internal/core/domain"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
)

// maxBlocksPerAppend is Notion's limit on children per append request.
const maxBlocksPerAppend = 100

// Ensure Client implements the interface.
var _ driven.DestinationClient = (*Client)(nil)

// Client manages book pages in a Notion database.
type Client struct {
	api    *notionapi.Client
	bookDB notionapi.DatabaseID
	now    func() time.Time
}

// NewClient creates a Notion client for the given integration token and
// book database.
func NewClient(token, bookDatabaseID string) *Client {
	return &Client{
		api:    notionapi.NewClient(notionapi.Token(token)),
		bookDB: notionapi.DatabaseID(bookDatabaseID),
		now:    time.Now,
	}
}

// FindPage looks up an existing page by exact (title, author) match.
func (c *Client) FindPage(ctx context.Context, title, author string) (string, error) {
	resp, err := c.api.Database.Query(ctx, c.bookDB, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.AndCompoundFilter{
			notionapi.PropertyFilter{
				Property: PropTitle,
				RichText: &notionapi.TextFilterCondition{Equals: title},
			},
			notionapi.PropertyFilter{
				Property: PropAuthor,
				RichText: &notionapi.TextFilterCondition{Equals: author},
			},
		},
		PageSize: 1,
	})
	if err != nil {
		return "", fmt.Errorf("querying book database: %w", err)
	}

	if len(resp.Results) == 0 {
		return "", domain.ErrNotFound
	}

	return string(resp.Results[0].ID), nil
}

// CreatePage writes the book's metadata as a new page.
func (c *Client) CreatePage(ctx context.Context, book domain.Book) (string, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.bookDB,
		},
		Properties: buildBookProperties(book, c.now()),
	}

	if book.Cover != "" {
		req.Cover = &notionapi.Image{
			Type:     notionapi.FileTypeExternal,
			External: &notionapi.FileObject{URL: book.Cover},
		}
	}

	page, err := c.api.Page.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("creating page for %q: %w", book.Title, err)
	}

	return string(page.ID), nil
}

// AppendHighlights writes highlight blocks to the page, optionally
// grouped under chapter headings.
func (c *Client) AppendHighlights(ctx context.Context, pageID string, passages []Passage, byChapter bool) error {
	if len(passages) == 0 {
		return nil
	}
	return c.appendBlocks(ctx, pageID, highlightBlocks(passages, byChapter))
}

// AppendNotes writes note blocks to the page, optionally grouped under
// chapter headings.
func (c *Client) AppendNotes(ctx context.Context, pageID string, thoughts []Thought, byChapter bool) error {
	if len(thoughts) == 0 {
		return nil
	}
	return c.appendBlocks(ctx, pageID, noteBlocks(thoughts, byChapter))
}

// appendBlocks appends children in API-sized chunks.
func (c *Client) appendBlocks(ctx context.Context, pageID string, blocks []notionapi.Block) error {
	for len(blocks) > 0 {
		n := len(blocks)
		if n > maxBlocksPerAppend {
			n = maxBlocksPerAppend
		}

		_, err := c.api.Block.AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
			Children: blocks[:n],
		})
		if err != nil {
			return fmt.Errorf("appending blocks: %w", err)
		}

		blocks = blocks[n:]
	}
	return nil
}
