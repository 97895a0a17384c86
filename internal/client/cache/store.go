// Package cache is the client's server-cache layer: one entry per query
// key, read-through fetching, and explicit invalidation. Staleness is
// resolved lazily on the next read; invalidate itself never fetches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/linkupapp/linkup/internal/client/storage"
)

// DefaultTTL is the freshness window applied in addition to explicit
// invalidation. A fresh-enough entry is served without a network call.
const DefaultTTL = 30 * time.Second

// FetchFunc loads the authoritative value for a key.
type FetchFunc func(ctx context.Context) (any, error)

// decodeFunc rebuilds a typed value from a persisted snapshot.
type decodeFunc func(data []byte) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
	hasValue  bool
	stale     bool
	inflight  chan struct{}
	lastErr   error
}

// Store holds the most recently fetched value per query key.
type Store struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	ttl       time.Duration
	logger    *slog.Logger
	snapshots storage.CacheStorage
}

// NewStore creates a cache store. ttl <= 0 selects DefaultTTL.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries: make(map[Key]*entry),
		ttl:     ttl,
		logger:  logger,
	}
}

// WithSnapshots enables snapshot persistence: successful fetches are
// written through, and a cold entry is seeded from its snapshot as an
// already-stale last-good value (warm start, offline fallback).
func (s *Store) WithSnapshots(snaps storage.CacheStorage) *Store {
	s.snapshots = snaps
	return s
}

// read serves the entry for key: a fresh value synchronously, otherwise
// the result of a fetch. Concurrent readers of the same key share one
// in-flight fetch. When the fetch fails and a last good value exists, the
// stale value is served instead of the error.
func (s *Store) read(ctx context.Context, key Key, fetch FetchFunc, decode decodeFunc) (any, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
		s.seedFromSnapshot(ctx, key, e, decode)
	}

	if e.hasValue && !e.stale && time.Since(e.fetchedAt) < s.ttl {
		value := e.value
		s.mu.Unlock()
		return value, nil
	}

	if e.inflight != nil {
		// Another reader is already fetching this key; wait for it.
		flight := e.inflight
		s.mu.Unlock()
		select {
		case <-flight:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if e.hasValue {
			return e.value, nil
		}
		return nil, e.lastErr
	}

	flight := make(chan struct{})
	e.inflight = flight
	s.mu.Unlock()

	value, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	e.inflight = nil
	close(flight)

	if err != nil {
		e.lastErr = err
		if e.hasValue {
			// Serve the last good value; the entry stays stale so the
			// next read retries.
			s.logger.Warn("fetch failed, serving stale value", "key", key.String(), "error", err)
			return e.value, nil
		}
		return nil, err
	}

	e.value = value
	e.fetchedAt = time.Now()
	e.hasValue = true
	e.stale = false
	e.lastErr = nil
	s.persistSnapshot(ctx, key, value)
	return value, nil
}

// Invalidate marks the given entries stale. Idempotent: marking an
// already-stale entry is a no-op, and unknown keys are ignored.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if e, ok := s.entries[key]; ok && !e.stale {
			e.stale = true
			s.logger.Debug("invalidated", "key", key.String())
		}
	}
}

// InvalidateFunc marks every entry whose key matches pred stale.
func (s *Store) InvalidateFunc(pred func(Key) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if pred(key) && !e.stale {
			e.stale = true
			s.logger.Debug("invalidated", "key", key.String())
		}
	}
}

// Clear drops every in-memory entry and all persisted snapshots. Called
// on logout.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = make(map[Key]*entry)
	s.mu.Unlock()
	if s.snapshots != nil {
		if err := s.snapshots.DeleteSnapshots(ctx); err != nil {
			s.logger.Error("failed to clear snapshots", "error", err)
		}
	}
}

// IsStale reports whether the entry for key exists and is marked stale.
func (s *Store) IsStale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return ok && e.stale
}

// seedFromSnapshot loads a persisted snapshot into a brand-new entry as
// an already-stale last-good value. Caller holds the lock.
func (s *Store) seedFromSnapshot(ctx context.Context, key Key, e *entry, decode decodeFunc) {
	if s.snapshots == nil || decode == nil {
		return
	}
	snap, err := s.snapshots.GetSnapshot(ctx, key.String())
	if err != nil {
		if !errors.Is(err, storage.ErrSnapshotNotFound) {
			s.logger.Warn("failed to load snapshot", "key", key.String(), "error", err)
		}
		return
	}
	value, err := decode(snap.Value)
	if err != nil {
		s.logger.Warn("failed to decode snapshot", "key", key.String(), "error", err)
		return
	}
	e.value = value
	e.fetchedAt = snap.FetchedAt
	e.hasValue = true
	e.stale = true
}

func (s *Store) persistSnapshot(ctx context.Context, key Key, value any) {
	if s.snapshots == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to marshal snapshot", "key", key.String(), "error", err)
		return
	}
	snap := &storage.Snapshot{Key: key.String(), Value: data, FetchedAt: time.Now()}
	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		s.logger.Warn("failed to persist snapshot", "key", key.String(), "error", err)
	}
}

// ReadAs is the typed read-through entry point.
func ReadAs[T any](ctx context.Context, s *Store, key Key, fetch func(context.Context) (T, error)) (T, error) {
	value, err := s.read(ctx, key,
		func(ctx context.Context) (any, error) { return fetch(ctx) },
		func(data []byte) (any, error) {
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, err
			}
			return v, nil
		})
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T, not %T", key.String(), value, zero)
	}
	return typed, nil
}
