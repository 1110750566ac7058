package internal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "articles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, &StoredArticle{
		Owner:     "alice",
		Title:     "First Article",
		SourceURL: "https://youtu.be/tAP1eZYEuKA",
		Content:   "body text",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, "First Article", got.Title)
	assert.Equal(t, "https://youtu.be/tAP1eZYEuKA", got.SourceURL)
	assert.Equal(t, "body text", got.Content)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStoreGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreListByOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, a := range []StoredArticle{
		{Owner: "alice", Title: "A", SourceURL: "u1", Content: "c1"},
		{Owner: "bob", Title: "B", SourceURL: "u2", Content: "c2"},
		{Owner: "alice", Title: "C", SourceURL: "u3", Content: "c3"},
	} {
		_, err := store.Save(ctx, &a)
		require.NoError(t, err)
	}

	articles, err := store.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	for _, article := range articles {
		assert.Equal(t, "alice", article.Owner)
	}

	articles, err = store.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestStoreLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Latest(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Save(ctx, &StoredArticle{Owner: "alice", Title: "Old", Content: "c"})
	require.NoError(t, err)
	newID, err := store.Save(ctx, &StoredArticle{Owner: "alice", Title: "New", Content: "c"})
	require.NoError(t, err)

	latest, err := store.Latest(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, newID, latest.ID)
	assert.Equal(t, "New", latest.Title)
}
