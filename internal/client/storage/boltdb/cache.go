package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/linkupapp/linkup/internal/client/storage"
)

// Compile-time check that Storage implements CacheStorage
var _ storage.CacheStorage = (*Storage)(nil)

// SaveSnapshot stores one cache snapshot keyed by its encoded query key
func (s *Storage) SaveSnapshot(ctx context.Context, snap *storage.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return s.update(bucketCache, func(b *bbolt.Bucket) error {
		if err := b.Put([]byte(snap.Key), data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		return nil
	})
}

// GetSnapshot retrieves the snapshot for a query key
func (s *Storage) GetSnapshot(ctx context.Context, key string) (*storage.Snapshot, error) {
	var snap *storage.Snapshot
	err := s.view(bucketCache, func(b *bbolt.Bucket) error {
		data := b.Get([]byte(key))
		if data == nil {
			return storage.ErrSnapshotNotFound
		}
		snap = &storage.Snapshot{}
		if err := json.Unmarshal(data, snap); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// DeleteSnapshots removes every stored snapshot. Called on logout so the
// next account sees no other user's data.
func (s *Storage) DeleteSnapshots(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketCache); err != nil {
			return fmt.Errorf("failed to drop cache bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketCache); err != nil {
			return fmt.Errorf("failed to recreate cache bucket: %w", err)
		}
		return nil
	})
}
