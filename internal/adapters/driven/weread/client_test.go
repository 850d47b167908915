package weread

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginote/shelfsync/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient("wr_vid=1; wr_skey=abc", WithBaseURL(srv.URL))
}

func TestClient_SendsCookie(t *testing.T) {
	var gotCookie string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(`{"books":[]}`))
	}))

	require.NoError(t, client.Validate(context.Background()))
	assert.Equal(t, "wr_vid=1; wr_skey=abc", gotCookie)
}

func TestClient_Validate_SessionExpired(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http 401",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "errCode envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"errCode":-2012,"errMsg":"登录超时"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			err := client.Validate(context.Background())
			assert.ErrorIs(t, err, domain.ErrSessionExpired)
		})
	}
}

func TestClient_ListShelf(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shelf/sync", r.URL.Path)
		w.Write([]byte(`{"books":[
			{"bookId":"b1","title":"置身事内","author":"兰小欢","cover":"https://c/1.jpg","markedStatus":4},
			{"bookId":"b2","title":"活着","author":"余华","readingProgress":35}
		]}`))
	}))

	books, err := client.ListShelf(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "置身事内", books[0].Title)
	assert.Equal(t, domain.StatusFinished, books[0].Status)
	assert.Equal(t, domain.StatusReading, books[1].Status)
}

func TestClient_ListNotebooks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/notebooks", r.URL.Path)
		w.Write([]byte(`{"books":[
			{"bookId":"b1","noteCount":12,"book":{"title":"置身事内","author":"兰小欢"}}
		]}`))
	}))

	books, err := client.ListNotebooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Equal(t, "b1", books[0].ID)
	assert.Equal(t, "置身事内", books[0].Title)
	assert.Equal(t, 12, books[0].NoteCount)
}

func TestClient_FetchBookDetail(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/info", r.URL.Path)
		assert.Equal(t, "b1", r.URL.Query().Get("bookId"))
		w.Write([]byte(`{"bookId":"b1","isbn":"9787208170469","publisher":"上海人民出版社","intro":"中国政府与经济发展","publishTime":"2021-08-01"}`))
	}))

	detail, err := client.FetchBookDetail(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "9787208170469", detail.ISBN)
	assert.Equal(t, "上海人民出版社", detail.Publisher)
	assert.Equal(t, "2021-08-01", detail.PublishDate)
}

func TestClient_FetchBookDetail_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := client.FetchBookDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_FetchHighlights_OrdersByChapter(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/bookmarklist", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("synckey"))
		w.Write([]byte(`{
			"synckey": 1700000200,
			"updated": [
				{"bookmarkId":"m2","chapterUid":5,"markText":"later chapter","createTime":100},
				{"bookmarkId":"m1","chapterUid":2,"markText":"earlier chapter","createTime":200}
			],
			"chapters": [
				{"chapterUid":2,"title":"第一章","chapterIdx":1},
				{"chapterUid":5,"title":"第二章","chapterIdx":2}
			]
		}`))
	}))

	page, err := client.FetchHighlights(context.Background(), "b1", "")
	require.NoError(t, err)

	assert.Equal(t, "1700000200", page.Synckey)
	require.Len(t, page.Highlights, 2)
	assert.Equal(t, "earlier chapter", page.Highlights[0].Text)
	assert.Equal(t, "第一章", page.Highlights[0].ChapterTitle)
	assert.Equal(t, "later chapter", page.Highlights[1].Text)
}

func TestClient_FetchHighlights_PassesSynckey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1700000100", r.URL.Query().Get("synckey"))
		w.Write([]byte(`{"synckey":1700000100,"updated":[]}`))
	}))

	page, err := client.FetchHighlights(context.Background(), "b1", "1700000100")
	require.NoError(t, err)
	assert.Empty(t, page.Highlights)
	assert.Equal(t, "1700000100", page.Synckey)
}

func TestClient_FetchNotes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/review/list", r.URL.Path)
		assert.Equal(t, "b1", r.URL.Query().Get("bookId"))
		assert.Equal(t, "11", r.URL.Query().Get("listType"))
		w.Write([]byte(`{
			"synckey": 42,
			"reviews": [
				{"reviewId":"r2","review":{"chapterTitle":"第二章","abstract":"quoted text","content":"my thought","createTime":200}},
				{"reviewId":"r1","review":{"chapterTitle":"第一章","content":"first thought","createTime":100}}
			]
		}`))
	}))

	page, err := client.FetchNotes(context.Background(), "b1", "")
	require.NoError(t, err)

	assert.Equal(t, "42", page.Synckey)
	require.Len(t, page.Notes, 2)
	assert.Equal(t, "first thought", page.Notes[0].Content) // ordered by create time
	assert.Equal(t, "quoted text", page.Notes[1].Abstract)
}

func TestClient_RateLimited(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.ListShelf(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}
