// Package optimistic makes toggle interactions (follow, like, save) feel
// instantaneous while preserving eventual correctness against the
// backend. Each toggle instance is a small state machine keyed by entity
// id and toggle kind:
//
//	Idle(serverValue) -> Pending(serverValue, !serverValue) -> Idle
//
// While Pending the displayed value is the optimistic flip, re-entrant
// activation is refused, and fresh server reads are deferred. On failure
// the exact pre-action value is restored. On success the controller does
// not trust the mutation's echoed state: the caller invalidates the
// affected cache keys and the next read re-derives the boolean from an
// authoritative fetch.
package optimistic

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPending is returned when a toggle is activated while its previous
// activation has not settled. No network call is issued.
var ErrPending = errors.New("toggle already in flight")

// Kind discriminates toggles that may share an entity id.
type Kind string

const (
	KindFollow      Kind = "follow"
	KindLike        Kind = "like"
	KindSave        Kind = "save"
	KindCommentLike Kind = "commentLike"
)

// ToggleKey identifies one toggle instance.
type ToggleKey struct {
	Kind     Kind
	EntityID string
}

// State is the lifecycle position of one toggle instance.
type State int

const (
	StateIdle State = iota
	StatePending
	StateReverting
)

type toggle struct {
	state           State
	serverValue     bool
	optimisticValue bool
}

// DefaultMutationTimeout bounds how long a toggle may stay Pending. A
// request that never resolves settles as a failure and reverts instead of
// wedging the toggle forever.
const DefaultMutationTimeout = 30 * time.Second

// Registry tracks every live toggle instance.
type Registry struct {
	mu      sync.Mutex
	toggles map[ToggleKey]*toggle
	timeout time.Duration
	logger  *slog.Logger
}

// NewRegistry creates a toggle registry. timeout <= 0 selects
// DefaultMutationTimeout.
func NewRegistry(timeout time.Duration, logger *slog.Logger) *Registry {
	if timeout <= 0 {
		timeout = DefaultMutationTimeout
	}
	return &Registry{
		toggles: make(map[ToggleKey]*toggle),
		timeout: timeout,
		logger:  logger,
	}
}

// Do runs one toggle interaction: flip the displayed value, run mutate,
// settle. current must be the last server-confirmed value. The returned
// bool is the value to display immediately after settlement; on failure
// it equals current and the error carries the cause.
func (r *Registry) Do(ctx context.Context, key ToggleKey, current bool, mutate func(context.Context) error) (bool, error) {
	r.mu.Lock()
	t, ok := r.toggles[key]
	if !ok {
		t = &toggle{}
		r.toggles[key] = t
	}
	if t.state == StatePending {
		displayed := t.optimisticValue
		r.mu.Unlock()
		return displayed, ErrPending
	}
	t.state = StatePending
	t.serverValue = current
	t.optimisticValue = !current
	r.mu.Unlock()

	opID := uuid.NewString()
	r.logger.Debug("toggle pending",
		"op_id", opID, "kind", string(key.Kind), "entity_id", key.EntityID,
		"from", current, "to", !current)

	mctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	err := mutate(mctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		// Restore the exact pre-action value recorded at flip time, not
		// a re-negation of the optimistic one.
		t.state = StateReverting
		t.optimisticValue = t.serverValue
		t.state = StateIdle
		r.logger.Debug("toggle reverted", "op_id", opID, "error", err)
		return t.serverValue, err
	}

	t.state = StateIdle
	r.logger.Debug("toggle settled", "op_id", opID, "value", t.optimisticValue)
	return t.optimisticValue, nil
}

// Value resolves the displayed boolean for a toggle: serverValue from the
// cache unless a flip is pending, in which case the optimistic value wins
// until settlement.
func (r *Registry) Value(key ToggleKey, serverValue bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.toggles[key]; ok && t.state == StatePending {
		return t.optimisticValue
	}
	return serverValue
}

// IsPending reports whether the toggle has an unsettled activation.
func (r *Registry) IsPending(key ToggleKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.toggles[key]
	return ok && t.state == StatePending
}
