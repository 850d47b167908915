package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSyncConfig(t *testing.T) {
	cfg := DefaultSyncConfig()

	assert.Empty(t, cfg.Statuses)
	assert.Empty(t, cfg.Authors)
	assert.Equal(t, SyncModeIncremental, cfg.Mode)
	assert.False(t, cfg.OrganizeByChapter)

	// An empty status set disables the predicate, so even the zero
	// status of a notebook-only book passes.
	assert.True(t, cfg.StatusEnabled(""))
}

func TestSyncConfig_StatusEnabled(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ReadStatus
		status   ReadStatus
		want     bool
	}{
		{name: "empty set passes everything", statuses: nil, status: StatusUnread, want: true},
		{name: "member passes", statuses: []ReadStatus{StatusFinished}, status: StatusFinished, want: true},
		{name: "non-member fails", statuses: []ReadStatus{StatusFinished}, status: StatusUnread, want: false},
		{name: "malformed label never matches", statuses: []ReadStatus{StatusFinished}, status: "???", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SyncConfig{Statuses: tt.statuses}
			assert.Equal(t, tt.want, cfg.StatusEnabled(tt.status))
		})
	}
}

func TestSyncConfig_AuthorEnabled(t *testing.T) {
	cfg := SyncConfig{Authors: []string{"东野圭吾"}}

	assert.True(t, cfg.AuthorEnabled("东野圭吾"))
	assert.False(t, cfg.AuthorEnabled("村上春树"))

	cfg.Authors = nil
	assert.True(t, cfg.AuthorEnabled("anyone"))
}

func TestSyncConfig_Incremental(t *testing.T) {
	assert.True(t, SyncConfig{Mode: SyncModeIncremental}.Incremental())
	assert.False(t, SyncConfig{Mode: SyncModeFull}.Incremental())

	// Anything except an explicit full mode counts as incremental.
	assert.True(t, SyncConfig{Mode: ""}.Incremental())
}
