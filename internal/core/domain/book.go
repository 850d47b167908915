package domain

// ReadStatus is the source-defined reading status label for a book.
type ReadStatus string

// Reading status labels as reported by the WeRead API.
const (
	StatusUnread   ReadStatus = "未读"
	StatusReading  ReadStatus = "在读"
	StatusFinished ReadStatus = "读完"
)

// markedStatusFinished is the WeRead markedStatus value for a finished book.
const markedStatusFinished = 4

// StatusFromMarked derives a ReadStatus from the WeRead shelf fields.
// markedStatus 4 means finished; any reading progress means in progress.
func StatusFromMarked(markedStatus int, progress int) ReadStatus {
	switch {
	case markedStatus == markedStatusFinished:
		return StatusFinished
	case progress > 0:
		return StatusReading
	default:
		return StatusUnread
	}
}

// Book is one library entry. It is constructed by merging the shelf
// listing with the notebook (annotated books) listing, optionally
// enriched from a per-book detail lookup, and is read-only afterwards.
type Book struct {
	// ID is the stable source-side identifier.
	ID string

	// Title is the display title.
	Title string

	// Author is the display author name.
	Author string

	// Cover is the cover image URL, if known.
	Cover string

	// Status is the reading status label.
	Status ReadStatus

	// NoteCount is the number of notes/highlights reported by the
	// notebook listing. Zero for books that were never annotated.
	NoteCount int

	// Optional bibliographic fields. These may be absent from the
	// initial listings and only available via a detail lookup.
	ISBN        string
	Publisher   string
	Synopsis    string
	PublishDate string
}

// BookDetail holds the supplementary fields returned by the per-book
// detail lookup. A partial or zero value is valid.
type BookDetail struct {
	ISBN        string
	Publisher   string
	Synopsis    string
	PublishDate string
	Cover       string
}

// MergeDetail returns a copy of the book with the detail fields merged
// in using fill-if-absent semantics: a fetched value wins only when it
// is non-empty, otherwise the previously known value is kept.
func (b Book) MergeDetail(d *BookDetail) Book {
	if d == nil {
		return b
	}
	b.ISBN = fillIfAbsent(d.ISBN, b.ISBN)
	b.Publisher = fillIfAbsent(d.Publisher, b.Publisher)
	b.Synopsis = fillIfAbsent(d.Synopsis, b.Synopsis)
	b.PublishDate = fillIfAbsent(d.PublishDate, b.PublishDate)
	b.Cover = fillIfAbsent(d.Cover, b.Cover)
	return b
}

// Merge returns a copy of the book with fields from other filled in
// where this book's fields are empty. Used when the same book appears
// in both the shelf and notebook listings.
func (b Book) Merge(other Book) Book {
	b.Title = fillIfAbsent(b.Title, other.Title)
	b.Author = fillIfAbsent(b.Author, other.Author)
	b.Cover = fillIfAbsent(b.Cover, other.Cover)
	if b.Status == "" {
		b.Status = other.Status
	}
	if other.NoteCount > b.NoteCount {
		b.NoteCount = other.NoteCount
	}
	b.ISBN = fillIfAbsent(b.ISBN, other.ISBN)
	b.Publisher = fillIfAbsent(b.Publisher, other.Publisher)
	b.Synopsis = fillIfAbsent(b.Synopsis, other.Synopsis)
	b.PublishDate = fillIfAbsent(b.PublishDate, other.PublishDate)
	return b
}

// fillIfAbsent returns preferred if non-empty, else fallback.
func fillIfAbsent(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
