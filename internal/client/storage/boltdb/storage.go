// Package boltdb implements the client storage interfaces on a single
// BoltDB file.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketAuth  = []byte("auth")
	bucketCache = []byte("cache")
)

// Storage represents BoltDB storage implementation for the client
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance.
// dbPath is the path to the BoltDB database file.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// update runs fn in a write transaction scoped to one named bucket.
func (s *Storage) update(name []byte, fn func(b *bbolt.Bucket) error) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(name)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", name)
		}
		return fn(bucket)
	})
}

// view runs fn in a read-only transaction scoped to one named bucket.
func (s *Storage) view(name []byte, fn func(b *bbolt.Bucket) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(name)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", name)
		}
		return fn(bucket)
	})
}

func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAuth); err != nil {
			return fmt.Errorf("failed to create auth bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketCache); err != nil {
			return fmt.Errorf("failed to create cache bucket: %w", err)
		}
		return nil
	})
}
