package weread

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/marginote/shelfsync/internal/core/domain"
	"github.com/marginote/shelfsync/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the WeRead web API endpoint.
	DefaultBaseURL = "https://i.weread.qq.com"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// requestsPerSecond is the sustained rate limit. WeRead has no
	// published quota; this stays well under what the web client does.
	requestsPerSecond = 2.0

	// burstSize is the token bucket burst size.
	burstSize = 4
)

// Ensure Client implements the interface.
var _ driven.SourceClient = (*Client)(nil)

// Client is a cookie-authenticated WeRead API client.
type Client struct {
	http    *http.Client
	baseURL string
	cookie  string
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a WeRead client authenticated with a browser
// session cookie (the full Cookie header value).
func NewClient(cookie string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		cookie:  cookie,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the session cookie by hitting the notebooks
// endpoint, which requires authentication but is cheap.
func (c *Client) Validate(ctx context.Context) error {
	var resp notebooksResponse
	if err := c.get(ctx, "/user/notebooks", nil, &resp); err != nil {
		return err
	}
	return nil
}

// ListShelf returns every book on the user's shelf.
func (c *Client) ListShelf(ctx context.Context) ([]domain.Book, error) {
	var resp shelfResponse
	if err := c.get(ctx, "/shelf/sync", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing shelf: %w", err)
	}

	books := make([]domain.Book, 0, len(resp.Books))
	for _, b := range resp.Books {
		books = append(books, domain.Book{
			ID:     b.BookID,
			Title:  b.Title,
			Author: b.Author,
			Cover:  b.Cover,
			Status: domain.StatusFromMarked(b.MarkedStatus, b.ReadingProgress),
		})
	}
	return books, nil
}

// ListNotebooks returns every book with highlights or notes.
func (c *Client) ListNotebooks(ctx context.Context) ([]domain.Book, error) {
	var resp notebooksResponse
	if err := c.get(ctx, "/user/notebooks", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing notebooks: %w", err)
	}

	books := make([]domain.Book, 0, len(resp.Books))
	for _, e := range resp.Books {
		books = append(books, domain.Book{
			ID:        e.BookID,
			Title:     e.Book.Title,
			Author:    e.Book.Author,
			Cover:     e.Book.Cover,
			NoteCount: e.NoteCount,
		})
	}
	return books, nil
}

// FetchBookDetail returns supplementary bibliographic fields for a book.
func (c *Client) FetchBookDetail(ctx context.Context, bookID string) (*domain.BookDetail, error) {
	var resp bookInfoResponse
	err := c.get(ctx, "/book/info", url.Values{"bookId": {bookID}}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetching detail for %s: %w", bookID, err)
	}
	if resp.BookID == "" {
		return nil, domain.ErrNotFound
	}

	return &domain.BookDetail{
		ISBN:        resp.ISBN,
		Publisher:   resp.Publisher,
		Synopsis:    resp.Intro,
		PublishDate: resp.PublishTime,
		Cover:       resp.Cover,
	}, nil
}

// Highlight is one bookmarked passage, resolved to its chapter.
type Highlight struct {
	ChapterTitle string
	ChapterIdx   int
	Text         string
	CreatedAt    time.Time
}

// Note is one written review/thought, resolved to its chapter.
type Note struct {
	ChapterTitle string
	Abstract     string
	Content      string
	CreatedAt    time.Time
}

// HighlightPage is the result of a (possibly incremental) highlight fetch.
type HighlightPage struct {
	// Synckey is the opaque cursor to persist for the next
	// incremental fetch.
	Synckey    string
	Highlights []Highlight
}

// NotePage is the result of a (possibly incremental) note fetch.
type NotePage struct {
	Synckey string
	Notes   []Note
}

// reviewListTypeNotes selects written reviews (thoughts) only.
const reviewListTypeNotes = "11"

// FetchHighlights returns the book's highlights. With a non-empty
// synckey only highlights added since that key are returned, along
// with the advanced key.
func (c *Client) FetchHighlights(ctx context.Context, bookID, synckey string) (*HighlightPage, error) {
	params := url.Values{"bookId": {bookID}}
	if synckey != "" {
		params.Set("synckey", synckey)
	}

	var resp bookmarkListResponse
	if err := c.get(ctx, "/book/bookmarklist", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching highlights for %s: %w", bookID, err)
	}

	chapters := make(map[int]wireChapter, len(resp.Chapters))
	for _, ch := range resp.Chapters {
		chapters[ch.ChapterUID] = ch
	}

	page := &HighlightPage{Synckey: strconv.FormatInt(resp.Synckey, 10)}
	for _, b := range resp.Updated {
		ch := chapters[b.ChapterUID]
		page.Highlights = append(page.Highlights, Highlight{
			ChapterTitle: ch.Title,
			ChapterIdx:   ch.ChapterIdx,
			Text:         b.MarkText,
			CreatedAt:    time.Unix(b.CreateTime, 0),
		})
	}

	// The API returns newest first; present in reading order.
	sort.SliceStable(page.Highlights, func(i, j int) bool {
		if page.Highlights[i].ChapterIdx != page.Highlights[j].ChapterIdx {
			return page.Highlights[i].ChapterIdx < page.Highlights[j].ChapterIdx
		}
		return page.Highlights[i].CreatedAt.Before(page.Highlights[j].CreatedAt)
	})

	return page, nil
}

// FetchNotes returns the book's written notes. Incremental semantics
// match FetchHighlights.
func (c *Client) FetchNotes(ctx context.Context, bookID, synckey string) (*NotePage, error) {
	params := url.Values{
		"bookId":   {bookID},
		"listType": {reviewListTypeNotes},
	}
	if synckey != "" {
		params.Set("synckey", synckey)
	}

	var resp reviewListResponse
	if err := c.get(ctx, "/review/list", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching notes for %s: %w", bookID, err)
	}

	page := &NotePage{Synckey: strconv.FormatInt(resp.Synckey, 10)}
	for _, r := range resp.Reviews {
		page.Notes = append(page.Notes, Note{
			ChapterTitle: r.Review.ChapterTitle,
			Abstract:     r.Review.Abstract,
			Content:      r.Review.Content,
			CreatedAt:    time.Unix(r.Review.CreateTime, 0),
		})
	}

	sort.SliceStable(page.Notes, func(i, j int) bool {
		return page.Notes[i].CreatedAt.Before(page.Notes[j].CreatedAt)
	})

	return page, nil
}

// get performs a rate-limited GET and decodes the JSON body into out.
// out must embed errBody so application-level errors are surfaced.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{ appError() error }) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Cookie", c.cookie)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrSessionExpired
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return out.appError()
}

// appError maps the WeRead error envelope to domain errors.
// The service reports failures with HTTP 200 and a non-zero errCode.
func (e errBody) appError() error {
	switch {
	case e.ErrCode == 0:
		return nil
	case e.ErrCode == errCodeSessionExpired:
		return domain.ErrSessionExpired
	default:
		return fmt.Errorf("weread error %d: %s", e.ErrCode, e.ErrMsg)
	}
}
