package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/linkupapp/linkup/internal/client/storage"
)

// The client holds at most one session, so the record lives under a fixed
// key.
var authKey = []byte("current")

// Compile-time check that Storage implements AuthStorage
var _ storage.AuthStorage = (*Storage)(nil)

// SaveAuth stores the session record, replacing any previous one.
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}
	return s.update(bucketAuth, func(b *bbolt.Bucket) error {
		if err := b.Put(authKey, data); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
		return nil
	})
}

// GetAuth retrieves the stored session record.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var auth *storage.AuthData
	err := s.view(bucketAuth, func(b *bbolt.Bucket) error {
		data := b.Get(authKey)
		if data == nil {
			return storage.ErrAuthNotFound
		}
		auth = &storage.AuthData{}
		if err := json.Unmarshal(data, auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return auth, nil
}

// DeleteAuth removes the stored session record (logout).
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.update(bucketAuth, func(b *bbolt.Bucket) error {
		if b.Get(authKey) == nil {
			return storage.ErrAuthNotFound
		}
		if err := b.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}
