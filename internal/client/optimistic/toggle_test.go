package optimistic

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Do_Success(t *testing.T) {
	reg := NewRegistry(time.Second, slogt.New(t))
	key := ToggleKey{Kind: KindLike, EntityID: "p1"}

	value, err := reg.Do(context.Background(), key, false, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.True(t, value)
	assert.False(t, reg.IsPending(key))
}

// A failed toggle restores the exact pre-action value, whatever it was.
func TestRegistry_Do_FailureRestoresServerValue(t *testing.T) {
	for _, current := range []bool{true, false} {
		reg := NewRegistry(time.Second, slogt.New(t))
		key := ToggleKey{Kind: KindFollow, EntityID: "u1"}

		wantErr := errors.New("backend rejected")
		value, err := reg.Do(context.Background(), key, current, func(ctx context.Context) error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, current, value)
		assert.False(t, reg.IsPending(key))

		// the displayed value is back to the server value
		assert.Equal(t, current, reg.Value(key, current))
	}
}

// While an activation is in flight a second one is refused without
// issuing a network call.
func TestRegistry_Do_RefusesReentry(t *testing.T) {
	reg := NewRegistry(time.Minute, slogt.New(t))
	key := ToggleKey{Kind: KindSave, EntityID: "p1"}

	release := make(chan struct{})
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		value, err := reg.Do(context.Background(), key, false, func(ctx context.Context) error {
			<-release
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, value)
	}()

	// wait until the first activation is pending
	require.Eventually(t, func() bool { return reg.IsPending(key) }, time.Second, time.Millisecond)

	var secondCalls atomic.Int32
	value, err := reg.Do(context.Background(), key, false, func(ctx context.Context) error {
		secondCalls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, ErrPending)
	assert.True(t, value) // the displayed value is still the optimistic flip
	assert.Equal(t, int32(0), secondCalls.Load())

	close(release)
	<-firstDone
	assert.False(t, reg.IsPending(key))
}

// The optimistic value wins only while pending; afterwards the cache's
// server value is authoritative.
func TestRegistry_Value(t *testing.T) {
	reg := NewRegistry(time.Minute, slogt.New(t))
	key := ToggleKey{Kind: KindLike, EntityID: "p1"}

	// unknown toggle defers to the server value
	assert.False(t, reg.Value(key, false))
	assert.True(t, reg.Value(key, true))

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = reg.Do(context.Background(), key, false, func(ctx context.Context) error {
			<-release
			return nil
		})
	}()
	require.Eventually(t, func() bool { return reg.IsPending(key) }, time.Second, time.Millisecond)

	// pending: the flip is displayed even though the server still says false
	assert.True(t, reg.Value(key, false))

	close(release)
	<-done

	// settled: the server value wins again
	assert.False(t, reg.Value(key, false))
	assert.True(t, reg.Value(key, true))
}

// A mutation that never resolves settles as a failure instead of wedging
// the toggle pending forever.
func TestRegistry_Do_Timeout(t *testing.T) {
	reg := NewRegistry(20*time.Millisecond, slogt.New(t))
	key := ToggleKey{Kind: KindFollow, EntityID: "u1"}

	value, err := reg.Do(context.Background(), key, true, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, value)
	assert.False(t, reg.IsPending(key))
}

// Toggles of different kinds on the same entity do not interfere.
func TestRegistry_KindsAreIndependent(t *testing.T) {
	reg := NewRegistry(time.Minute, slogt.New(t))
	like := ToggleKey{Kind: KindLike, EntityID: "p1"}
	save := ToggleKey{Kind: KindSave, EntityID: "p1"}

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = reg.Do(context.Background(), like, false, func(ctx context.Context) error {
			<-release
			return nil
		})
	}()
	require.Eventually(t, func() bool { return reg.IsPending(like) }, time.Second, time.Millisecond)

	value, err := reg.Do(context.Background(), save, false, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.True(t, value)

	close(release)
	<-done
}
