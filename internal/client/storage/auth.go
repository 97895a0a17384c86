package storage

import (
	"context"
	"time"
)

// AuthStorage persists the session credential between runs. Only the
// session lifecycle writes through this interface; every other component
// reads the token via the session's TokenSource.
type AuthStorage interface {
	// SaveAuth stores the session record, replacing any previous one.
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored session record.
	// Returns ErrAuthNotFound if no session exists.
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the stored session record (logout).
	DeleteAuth(ctx context.Context) error
}

// AuthData is the durable session record: the opaque bearer token issued
// by the backend plus the cached display name shown before the first
// profile fetch completes.
type AuthData struct {
	Token       string    `json:"token"`
	DisplayName string    `json:"display_name"`
	SavedAt     time.Time `json:"saved_at"`
}
