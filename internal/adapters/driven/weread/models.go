package weread

// Wire shapes for the WeRead web API. Only the fields the sync needs
// are declared; the service returns many more.

// errBody is the error envelope WeRead returns with HTTP 200 on
// application-level failures.
type errBody struct {
	ErrCode int    `json:"errCode"`
	ErrMsg  string `json:"errMsg"`
}

// errCodeSessionExpired is returned when the login cookie has lapsed.
const errCodeSessionExpired = -2012

// shelfResponse is the body of GET /shelf/sync.
type shelfResponse struct {
	errBody
	Books []shelfBook `json:"books"`
}

type shelfBook struct {
	BookID       string `json:"bookId"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Cover        string `json:"cover"`
	MarkedStatus int    `json:"markedStatus"`
	// ReadingProgress is a percentage, 0-100.
	ReadingProgress int `json:"readingProgress"`
}

// notebooksResponse is the body of GET /user/notebooks.
type notebooksResponse struct {
	errBody
	Books []notebookEntry `json:"books"`
}

type notebookEntry struct {
	BookID    string       `json:"bookId"`
	NoteCount int          `json:"noteCount"`
	Book      notebookBook `json:"book"`
}

type notebookBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Cover  string `json:"cover"`
}

// bookInfoResponse is the body of GET /book/info.
type bookInfoResponse struct {
	errBody
	BookID      string `json:"bookId"`
	ISBN        string `json:"isbn"`
	Publisher   string `json:"publisher"`
	Intro       string `json:"intro"`
	PublishTime string `json:"publishTime"`
	Cover       string `json:"cover"`
}

// bookmarkListResponse is the body of GET /book/bookmarklist.
// Synckey is the incremental cursor; with a synckey param only
// bookmarks added since that key are returned.
type bookmarkListResponse struct {
	errBody
	Synckey  int64          `json:"synckey"`
	Updated  []wireBookmark `json:"updated"`
	Chapters []wireChapter  `json:"chapters"`
}

type wireBookmark struct {
	BookmarkID string `json:"bookmarkId"`
	ChapterUID int    `json:"chapterUid"`
	MarkText   string `json:"markText"`
	CreateTime int64  `json:"createTime"`
	Range      string `json:"range"`
}

type wireChapter struct {
	ChapterUID int    `json:"chapterUid"`
	Title      string `json:"title"`
	ChapterIdx int    `json:"chapterIdx"`
}

// reviewListResponse is the body of GET /review/list.
type reviewListResponse struct {
	errBody
	Synckey int64        `json:"synckey"`
	Reviews []wireReview `json:"reviews"`
}

type wireReview struct {
	ReviewID string         `json:"reviewId"`
	Review   wireReviewBody `json:"review"`
}

type wireReviewBody struct {
	ChapterUID   int    `json:"chapterUid"`
	ChapterTitle string `json:"chapterTitle"`
	Abstract     string `json:"abstract"`
	Content      string `json:"content"`
	CreateTime   int64  `json:"createTime"`
}
