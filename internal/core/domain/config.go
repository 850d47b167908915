package domain

// SyncMode selects how the content phase treats stored cursors.
type SyncMode string

const (
	// SyncModeIncremental transfers only books whose cursors advanced
	// since the last recorded sync state.
	SyncModeIncremental SyncMode = "incremental"

	// SyncModeFull forces a complete re-transfer for every matched
	// book, ignoring stored cursors.
	SyncModeFull SyncMode = "full"
)

// SyncConfig describes which books are in scope for a run and which
// sync behaviour to use. It is immutable for the duration of one run.
type SyncConfig struct {
	// Statuses lists the enabled reading statuses. Empty means no
	// status filtering.
	Statuses []ReadStatus

	// Authors lists the enabled author names. Empty means no author
	// filtering.
	Authors []string

	// Mode selects full vs incremental content transfer.
	Mode SyncMode

	// OrganizeByChapter groups transferred highlights under chapter
	// headings on the destination page.
	OrganizeByChapter bool
}

// DefaultSyncConfig returns the permissive default: no status or
// author restriction, incremental mode. The status set is left empty
// rather than enumerating the known labels, so books without a status
// (annotated but never shelved) stay in scope too.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		Mode: SyncModeIncremental,
	}
}

// StatusEnabled reports whether a book with the given status passes
// the status filter. An empty status set disables the filter.
func (c SyncConfig) StatusEnabled(s ReadStatus) bool {
	if len(c.Statuses) == 0 {
		return true
	}
	for _, enabled := range c.Statuses {
		if enabled == s {
			return true
		}
	}
	return false
}

// AuthorEnabled reports whether a book by the given author passes the
// author filter. An empty author set disables the filter.
func (c SyncConfig) AuthorEnabled(author string) bool {
	if len(c.Authors) == 0 {
		return true
	}
	for _, enabled := range c.Authors {
		if enabled == author {
			return true
		}
	}
	return false
}

// Incremental reports the effective incremental flag for the run.
// Every mode except an explicit "full" counts as incremental.
func (c SyncConfig) Incremental() bool {
	return c.Mode != SyncModeFull
}
