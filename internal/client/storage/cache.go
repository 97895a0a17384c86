package storage

import (
	"context"
	"time"
)

// CacheStorage persists cache snapshots between runs so a fresh process
// can render last-known data immediately. Snapshots are always treated as
// stale by the cache layer; freshness is an in-memory concern.
type CacheStorage interface {
	// SaveSnapshot stores one snapshot under the encoded query key.
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// GetSnapshot retrieves the snapshot for the encoded query key.
	// Returns ErrSnapshotNotFound when none exists.
	GetSnapshot(ctx context.Context, key string) (*Snapshot, error)

	// DeleteSnapshots removes all stored snapshots (logout).
	DeleteSnapshots(ctx context.Context) error
}

// Snapshot is one persisted cache entry: the JSON-encoded value of a
// query key and when it was fetched.
type Snapshot struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}
