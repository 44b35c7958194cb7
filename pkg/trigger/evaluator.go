package trigger

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sendlater/pkg/logger"
)

// Event is a due event emitted by the evaluator.
type Event struct {
	Due     time.Time // instant the event was scheduled for
	FiredAt time.Time // clock reading when the handler was invoked
	Seq     int       // 1-based event number within a run
}

// Handler is invoked once per due event, on the goroutine that called Run.
type Handler func(ctx context.Context, ev Event) error

// Evaluator turns a Policy into due events.
// An Evaluator is safe to Run more than once, but not concurrently with itself.
type Evaluator struct {
	policy     Policy
	clock      Clock
	logger     *slog.Logger
	onError    func(Event, error)
	resolution time.Duration
}

// New creates an evaluator for policy.
func New(policy Policy, opts ...Option) (*Evaluator, error) {
	if err := Validate(policy); err != nil {
		return nil, err
	}

	cfg := &config{
		clock:      SystemClock{},
		resolution: defaultResolution,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}

	return &Evaluator{
		policy:     policy,
		clock:      cfg.clock,
		logger:     cfg.logger,
		onError:    cfg.onError,
		resolution: cfg.resolution,
	}, nil
}

// Policy returns the policy the evaluator was built with.
func (e *Evaluator) Policy() Policy {
	return e.policy
}

// Run blocks, invoking h for every due event, until the policy is exhausted
// (returns nil) or ctx is cancelled (returns ctx.Err()).
// h runs with a context that ignores cancellation of ctx, so a send that has
// already started is not interrupted.
func (e *Evaluator) Run(ctx context.Context, h Handler) error {
	if h == nil {
		return ErrNoHandler
	}

	start := e.clock.Now()
	due := e.policy.First(start)

	e.logger.DebugContext(ctx, "trigger armed",
		slog.String("policy", e.policy.String()),
		slog.Time("first_due", due),
	)

	for seq := 1; !due.IsZero(); seq++ {
		if err := e.wait(ctx, due); err != nil {
			e.logger.InfoContext(ctx, "trigger cancelled",
				slog.String("policy", e.policy.String()),
				slog.Int("fired", seq-1),
			)
			return err
		}

		ev := Event{Due: due, FiredAt: e.clock.Now(), Seq: seq}
		e.logger.InfoContext(ctx, "send due",
			slog.String("policy", e.policy.String()),
			slog.Int("seq", ev.Seq),
			slog.Time("due", ev.Due),
		)

		if err := h(context.WithoutCancel(ctx), ev); err != nil {
			e.logger.ErrorContext(ctx, "handler failed",
				slog.Int("seq", ev.Seq),
				slog.Any("error", err),
			)
			if e.onError != nil {
				e.onError(ev, err)
			}
		}

		due = e.policy.Next(ev.FiredAt)
	}

	return nil
}

// NextDue reports when the first event of a run started now would fire.
func (e *Evaluator) NextDue() time.Time {
	return e.policy.First(e.clock.Now())
}

// wait blocks until the clock reaches due or ctx is done.
// The clock is re-read at least every resolution; cancellation wins over a due event.
func (e *Evaluator) wait(ctx context.Context, due time.Time) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := e.clock.Now()
		if !now.Before(due) {
			return nil
		}

		d := min(due.Sub(now), e.resolution)
		t := e.clock.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C():
		}
	}
}
