package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// runUntil drives ev on a stepping clock and stops after limit events.
func runUntil(t *rapid.T, ev *Evaluator, limit int) ([]Event, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired []Event
	err := ev.Run(ctx, func(_ context.Context, e Event) error {
		fired = append(fired, e)
		if len(fired) >= limit {
			cancel()
		}
		return nil
	})
	return fired, err
}

// TestProperty_IntervalSpacing verifies that the first event fires no sooner than
// N seconds after start and that consecutive events are at least N seconds apart.
func TestProperty_IntervalSpacing(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 600).Draw(t, "seconds")
		limit := rapid.IntRange(1, 5).Draw(t, "events")
		step := time.Duration(n) * time.Second

		ev, err := New(Every(n), WithClock(newSteppingClock(epoch)))
		require.NoError(t, err)

		fired, err := runUntil(t, ev, limit)
		require.ErrorIs(t, err, context.Canceled)
		require.Len(t, fired, limit)

		require.GreaterOrEqual(t, fired[0].FiredAt.Sub(epoch), step)
		for i := 1; i < len(fired); i++ {
			require.GreaterOrEqual(t, fired[i].FiredAt.Sub(fired[i-1].FiredAt), step)
		}
	})
}

// TestProperty_AtFuture verifies that a future target fires exactly once, never early.
func TestProperty_AtFuture(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		offset := time.Duration(rapid.IntRange(1, 7200).Draw(t, "offset_seconds")) * time.Second
		target := epoch.Add(offset)

		ev, err := New(OnceAt(target), WithClock(newSteppingClock(epoch)))
		require.NoError(t, err)

		fired, err := runUntil(t, ev, 100)
		require.NoError(t, err)
		require.Len(t, fired, 1)
		require.False(t, fired[0].FiredAt.Before(target))
	})
}

// TestProperty_AtPast verifies that a target already in the past fires on the first check.
func TestProperty_AtPast(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		back := time.Duration(rapid.Int64Range(0, int64(365*24*time.Hour)).Draw(t, "back"))
		clock := newSteppingClock(epoch)

		ev, err := New(OnceAt(epoch.Add(-back)), WithClock(clock))
		require.NoError(t, err)

		fired, err := runUntil(t, ev, 100)
		require.NoError(t, err)
		require.Len(t, fired, 1)
		require.Equal(t, epoch, fired[0].FiredAt)
		require.Empty(t, clock.timers())
	})
}

// TestProperty_CancelBeforeAnyEvent verifies that cancelling first suppresses every event.
func TestProperty_CancelBeforeAnyEvent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		var p Policy
		if rapid.Bool().Draw(t, "interval") {
			p = Every(rapid.IntRange(1, 3600).Draw(t, "seconds"))
		} else {
			offset := rapid.IntRange(-3600, 3600).Draw(t, "offset_seconds")
			p = OnceAt(epoch.Add(time.Duration(offset) * time.Second))
		}

		ev, err := New(p, WithClock(newSteppingClock(epoch)))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err = ev.Run(ctx, func(context.Context, Event) error {
			calls++
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, calls)
	})
}
