package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/linkupapp/linkup/internal/client/storage"
)

func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "client_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func TestStorage_SaveGetDeleteAuth(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	auth := &storage.AuthData{
		Token:       "jwt-token",
		DisplayName: "Ann",
		SavedAt:     time.Now().Truncate(time.Second),
	}

	// GetAuth before anything is stored yields ErrAuthNotFound
	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	require.NoError(t, store.SaveAuth(ctx, auth))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, auth.Token, got.Token)
	assert.Equal(t, auth.DisplayName, got.DisplayName)
	assert.True(t, auth.SavedAt.Equal(got.SavedAt))

	// saving again overwrites the single record
	auth.Token = "newer-token"
	require.NoError(t, store.SaveAuth(ctx, auth))
	got, err = store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "newer-token", got.Token)

	require.NoError(t, store.DeleteAuth(ctx))
	_, err = store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	// deleting an absent record reports not found
	err = store.DeleteAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestStorage_Auth_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// drop the bucket directly to simulate a corrupted file
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket([]byte("auth"))
	})
	require.NoError(t, err)

	err = store.SaveAuth(ctx, &storage.AuthData{Token: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")

	_, err = store.GetAuth(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")

	err = store.DeleteAuth(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "auth bucket not found")
}

func TestStorage_CloseIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "close_test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	// a second close on bbolt is a no-op
	assert.NoError(t, store.Close())
}
