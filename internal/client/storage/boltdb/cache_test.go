package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkupapp/linkup/internal/client/storage"
)

func TestStorage_SaveGetSnapshot(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	snap := &storage.Snapshot{
		Key:       "posts",
		Value:     []byte(`[{"_id":"p1"}]`),
		FetchedAt: time.Now().Truncate(time.Second),
	}

	_, err := store.GetSnapshot(ctx, "posts")
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)

	require.NoError(t, store.SaveSnapshot(ctx, snap))

	got, err := store.GetSnapshot(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, snap.Key, got.Key)
	assert.Equal(t, snap.Value, got.Value)
	assert.True(t, snap.FetchedAt.Equal(got.FetchedAt))

	// snapshots for different keys do not collide
	other := &storage.Snapshot{Key: "post:p1", Value: []byte(`{"_id":"p1"}`), FetchedAt: time.Now()}
	require.NoError(t, store.SaveSnapshot(ctx, other))

	got, err = store.GetSnapshot(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, snap.Value, got.Value)
}

func TestStorage_SaveSnapshot_Overwrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSnapshot(ctx, &storage.Snapshot{Key: "posts", Value: []byte(`1`), FetchedAt: time.Now()}))
	require.NoError(t, store.SaveSnapshot(ctx, &storage.Snapshot{Key: "posts", Value: []byte(`2`), FetchedAt: time.Now()}))

	got, err := store.GetSnapshot(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), got.Value)
}

func TestStorage_DeleteSnapshots(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSnapshot(ctx, &storage.Snapshot{Key: "posts", Value: []byte(`1`), FetchedAt: time.Now()}))
	require.NoError(t, store.SaveSnapshot(ctx, &storage.Snapshot{Key: "currentUser", Value: []byte(`{}`), FetchedAt: time.Now()}))

	require.NoError(t, store.DeleteSnapshots(ctx))

	_, err := store.GetSnapshot(ctx, "posts")
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)
	_, err = store.GetSnapshot(ctx, "currentUser")
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)

	// the bucket is recreated; the store keeps working
	require.NoError(t, store.SaveSnapshot(ctx, &storage.Snapshot{Key: "posts", Value: []byte(`3`), FetchedAt: time.Now()}))
	got, err := store.GetSnapshot(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`3`), got.Value)
}
