package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no session record exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrSnapshotNotFound indicates that no snapshot exists for a query key
	ErrSnapshotNotFound = errors.New("cache snapshot not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
