package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginote/shelfsync/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := newTestStore(t)
	assert.NotEmpty(t, store.Path())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestSyncStateStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	states := store.SyncStateStore()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	state := domain.SyncState{
		BookID:           "book-1",
		LastSync:         now,
		HighlightsCursor: "hl-1",
		NotesCursor:      "nt-1",
	}

	require.NoError(t, states.Save(ctx, state))

	saved, err := states.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "book-1", saved.BookID)
	assert.Equal(t, "hl-1", saved.HighlightsCursor)
	assert.Equal(t, "nt-1", saved.NotesCursor)
	assert.Equal(t, now.Unix(), saved.LastSync.Unix())
}

func TestSyncStateStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	states := store.SyncStateStore()
	ctx := context.Background()

	require.NoError(t, states.Save(ctx, domain.SyncState{
		BookID: "book-1", HighlightsCursor: "hl-v1", NotesCursor: "nt-v1",
	}))
	require.NoError(t, states.Save(ctx, domain.SyncState{
		BookID: "book-1", HighlightsCursor: "hl-v2",
	}))

	saved, err := states.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "hl-v2", saved.HighlightsCursor)
	assert.Empty(t, saved.NotesCursor)
}

func TestSyncStateStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SyncStateStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncStateStore_List(t *testing.T) {
	store := newTestStore(t)
	states := store.SyncStateStore()
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, states.Save(ctx, domain.SyncState{BookID: id}))
	}

	listed, err := states.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "a", listed[0].BookID) // ordered by book_id
}

func TestSyncStateStore_Delete(t *testing.T) {
	store := newTestStore(t)
	states := store.SyncStateStore()
	ctx := context.Background()

	require.NoError(t, states.Save(ctx, domain.SyncState{BookID: "book-1"}))
	require.NoError(t, states.Delete(ctx, "book-1"))

	_, err := states.Get(ctx, "book-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncStateStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SyncStateStore().Save(ctx, domain.SyncState{
		BookID: "book-1", HighlightsCursor: "hl-1",
	}))
	require.NoError(t, store.Close())

	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	saved, err := store.SyncStateStore().Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "hl-1", saved.HighlightsCursor)
}
