// Package session owns the client's credential lifecycle. The bearer token
// is process-wide shared state read by every accessor; this package is the
// only writer (login success, logout, 401-triggered teardown), which keeps
// the credential free of torn updates.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/linkupapp/linkup/internal/client/api"
	"github.com/linkupapp/linkup/internal/client/storage"
	"github.com/linkupapp/linkup/internal/models"
	"github.com/linkupapp/linkup/internal/validation"
	pkgapi "github.com/linkupapp/linkup/pkg/api"
)

// ErrNotAuthenticated is returned by operations that require a session
// when no valid credential is stored.
var ErrNotAuthenticated = errors.New("not authenticated")

// Service manages the session: durable credential storage, the in-memory
// token handed to accessors, and the identity summary decoded from it.
type Service struct {
	store  storage.AuthStorage
	api    *api.Client
	logger *slog.Logger

	mu          sync.RWMutex
	token       string
	displayName string
}

// Compile-time check that Service implements api.TokenSource
var _ api.TokenSource = (*Service)(nil)

// NewService creates the session service over durable auth storage.
func NewService(store storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// AttachClient wires the API client used for sign-in and sign-up. Set
// after client construction because the client itself reads tokens from
// this service.
func (s *Service) AttachClient(client *api.Client) {
	s.api = client
}

// Load restores a previously persisted session into memory. A missing
// record is not an error: the session simply starts signed out.
func (s *Service) Load(ctx context.Context) error {
	auth, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	if _, err := DecodeIdentity(auth.Token); err != nil {
		// A stored token that no longer decodes is useless; drop it.
		s.logger.Warn("stored token is not decodable, clearing session", "error", err)
		if delErr := s.store.DeleteAuth(ctx); delErr != nil && !errors.Is(delErr, storage.ErrAuthNotFound) {
			return fmt.Errorf("failed to clear broken session: %w", delErr)
		}
		return nil
	}

	s.mu.Lock()
	s.token = auth.Token
	s.displayName = auth.DisplayName
	s.mu.Unlock()
	return nil
}

// Token implements api.TokenSource.
func (s *Service) Token(ctx context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Identity returns the identity summary decoded from the current token,
// or ErrNotAuthenticated when no credential is present.
func (s *Service) Identity() (*models.Identity, error) {
	s.mu.RLock()
	token, displayName := s.token, s.displayName
	s.mu.RUnlock()

	if token == "" {
		return nil, ErrNotAuthenticated
	}
	identity, err := DecodeIdentity(token)
	if err != nil {
		return nil, err
	}
	// The cached display name wins over the token claim: it survives
	// renames done in this client between token refreshes.
	if displayName != "" {
		identity.Name = displayName
	}
	return identity, nil
}

// IsAuthenticated reports whether a credential is currently held.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Login signs in against the backend and persists the issued token
// together with the display name decoded from it.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	token, err := s.api.Signin(ctx, pkgapi.SigninRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	identity, err := DecodeIdentity(token)
	if err != nil {
		return nil, fmt.Errorf("backend issued an undecodable token: %w", err)
	}

	auth := &storage.AuthData{
		Token:       token,
		DisplayName: identity.Name,
		SavedAt:     time.Now(),
	}
	if err := s.store.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.displayName = identity.Name
	s.mu.Unlock()

	s.logger.Info("signed in", "user_id", identity.UserID)
	return identity, nil
}

// RegisterParams carries the sign-up form.
type RegisterParams struct {
	Name        string
	Email       string
	Password    string
	RePassword  string
	DateOfBirth string
	Gender      string
}

// Register creates a new account. It does not sign the user in; the
// backend requires an explicit sign-in afterwards.
func (s *Service) Register(ctx context.Context, p RegisterParams) error {
	if err := validation.ValidateName(p.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	if err := validation.ValidateEmail(p.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(p.Password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	if p.Password != p.RePassword {
		return fmt.Errorf("passwords do not match")
	}

	return s.api.Signup(ctx, pkgapi.SignupRequest{
		Name:        p.Name,
		Email:       p.Email,
		Password:    p.Password,
		RePassword:  p.RePassword,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
	})
}

// ChangePassword updates the account password. The backend invalidates
// the old token on success, so the session is cleared and the user must
// sign in again.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	if err := validation.ValidatePassword(next); err != nil {
		return fmt.Errorf("invalid new password: %w", err)
	}
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	err := s.api.ChangePassword(ctx, pkgapi.ChangePasswordRequest{
		Password:    current,
		NewPassword: next,
	})
	if err != nil {
		return err
	}
	return s.Logout(ctx)
}

// Logout deletes the persisted session and clears the in-memory token.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.displayName = ""
	s.mu.Unlock()

	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// HandleAuthError is the 401 hook registered on the API client. A
// rejected credential means the whole identity is gone, not just the
// failing action, so the stored session is torn down immediately.
func (s *Service) HandleAuthError(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	s.logger.Warn("credential rejected by backend, clearing session")
	if err := s.Logout(ctx); err != nil {
		s.logger.Error("failed to clear session after auth error", "error", err)
	}
}
