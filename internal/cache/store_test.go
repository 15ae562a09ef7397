package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsync-engine/internal/types"
)

func TestMemoryStore_PutAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	entry := &types.CacheEntry{
		ID:          "e1",
		CandidateID: "c1",
		JobID:       "j1",
		ContentHash: "abc",
		ComputedAt:  time.Now(),
		Result:      &types.ScoreResult{OverallScore: 80},
	}
	require.NoError(t, store.Put(ctx, entry))

	got, err := store.Get(ctx, "c1", "j1")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ContentHash)
	assert.Equal(t, 80.0, got.Result.OverallScore)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "c1", "j1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_PutOverwritesPair(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e1", CandidateID: "c1", JobID: "j1", ContentHash: "old"}))
	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e2", CandidateID: "c1", JobID: "j1", ContentHash: "new"}))

	got, err := store.Get(ctx, "c1", "j1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.ContentHash)

	entries, err := store.ListForJob(ctx, "j1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryStore_DeleteForJob(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e1", CandidateID: "c1", JobID: "j1"}))
	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e2", CandidateID: "c2", JobID: "j1"}))
	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e3", CandidateID: "c1", JobID: "j2"}))

	deleted, err := store.DeleteForJob(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	_, err = store.Get(ctx, "c1", "j1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "c1", "j2")
	assert.NoError(t, err)
}

func TestMemoryStore_DeleteForCandidate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e1", CandidateID: "c1", JobID: "j1"}))
	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e2", CandidateID: "c1", JobID: "j2"}))
	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "e3", CandidateID: "c2", JobID: "j1"}))

	deleted, err := store.DeleteForCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestMemoryStore_ListForJobNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "old", CandidateID: "c1", JobID: "j1", ComputedAt: base.Add(-2 * time.Hour)}))
	require.NoError(t, store.Put(ctx, &types.CacheEntry{ID: "new", CandidateID: "c2", JobID: "j1", ComputedAt: base}))

	entries, err := store.ListForJob(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].ID)
	assert.Equal(t, "old", entries[1].ID)
}
