package internal

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sendlater/pkg/logger"
	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/trigger"
)

// Dispatcher delivers one job. *mailer.Mailer implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, job mailer.Job) error
}

// Runner states reported in Status.State.
const (
	StateIdle      = "idle"
	StateScheduled = "scheduled"
	StateSending   = "sending"
	StateDone      = "done"
	StateCancelled = "cancelled"
)

// Status is a snapshot of the runner.
type Status struct {
	State      string    `json:"state"`
	JobID      string    `json:"job_id,omitempty"`
	Policy     string    `json:"policy,omitempty"`
	Recipients []string  `json:"recipients,omitempty"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	NextDue    time.Time `json:"next_due,omitzero"`
	Sends      int       `json:"sends"`
	Failures   int       `json:"failures"`
	LastAt     time.Time `json:"last_at,omitzero"`
	LastResult string    `json:"last_result,omitempty"`
	LastError  string    `json:"last_error,omitempty"`
}

// clone returns s with its own copy of Recipients.
func (s Status) clone() Status {
	s.Recipients = slices.Clone(s.Recipients)
	return s
}

// Active reports whether a job is scheduled or sending.
func (s Status) Active() bool {
	return s.State == StateScheduled || s.State == StateSending
}

// Runner owns the single active job of the web panel.
// HTTP handlers call Start, Cancel and Status from their own goroutines;
// the evaluator and every send run on one goroutine per job.
type Runner struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	clock      trigger.Clock
	options    []trigger.Option

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
	done   chan struct{}
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the logger for job lifecycle events.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRunnerClock replaces the clock of every evaluator the runner creates.
func WithRunnerClock(c trigger.Clock) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithTriggerOptions passes extra options to every evaluator.
func WithTriggerOptions(opts ...trigger.Option) RunnerOption {
	return func(r *Runner) {
		r.options = append(r.options, opts...)
	}
}

// NewRunner creates an idle runner.
func NewRunner(d Dispatcher, opts ...RunnerOption) *Runner {
	r := &Runner{
		dispatcher: d,
		logger:     logger.NewNope(),
		clock:      trigger.SystemClock{},
		status:     Status{State: StateIdle},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StartOption customizes a single Start call.
type StartOption func(*startConfig)

type startConfig struct {
	dispatcher Dispatcher
}

// UsingDispatcher sends this job through d instead of the runner's dispatcher.
// The panel uses it when the form carries its own credential.
func UsingDispatcher(d Dispatcher) StartOption {
	return func(c *startConfig) {
		if d != nil {
			c.dispatcher = d
		}
	}
}

// Start validates job and schedules it under policy.
// It returns ErrJobActive while another job is scheduled or sending.
// The job runs detached from ctx; use Cancel to stop it.
func (r *Runner) Start(ctx context.Context, job mailer.Job, policy trigger.Policy, opts ...StartOption) (Status, error) {
	if err := job.Validate(); err != nil {
		return Status{}, err
	}

	sc := startConfig{dispatcher: r.dispatcher}
	for _, opt := range opts {
		opt(&sc)
	}

	evOpts := append([]trigger.Option{
		trigger.WithClock(r.clock),
		trigger.WithLogger(r.logger),
	}, r.options...)
	ev, err := trigger.New(policy, evOpts...)
	if err != nil {
		return Status{}, err
	}

	job = job.Clone()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status.Active() {
		return r.status.clone(), ErrJobActive
	}

	runCtx, cancel := context.WithCancel(logger.WithJobID(context.WithoutCancel(ctx), job.ID))
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.status = Status{
		State:      StateScheduled,
		JobID:      job.ID,
		Policy:     policy.String(),
		Recipients: slices.Clone(job.Recipients),
		StartedAt:  r.clock.Now(),
		NextDue:    ev.NextDue(),
	}

	r.logger.InfoContext(runCtx, "job scheduled",
		slog.String("policy", policy.String()),
		slog.Int("recipients", len(job.Recipients)),
	)

	go r.run(runCtx, ev, sc.dispatcher, job, done)

	return r.status.clone(), nil
}

func (r *Runner) run(ctx context.Context, ev *trigger.Evaluator, d Dispatcher, job mailer.Job, done chan struct{}) {
	defer close(done)

	err := ev.Run(ctx, func(ctx context.Context, e trigger.Event) error {
		r.update(job.ID, func(s *Status) { s.State = StateSending })

		sendErr := d.Dispatch(ctx, job)
		next := ev.Policy().Next(e.FiredAt)

		r.update(job.ID, func(s *Status) {
			s.State = StateScheduled
			s.NextDue = next
			s.LastAt = e.FiredAt
			if sendErr != nil {
				s.Failures++
				s.LastResult = "failed"
				s.LastError = sendErr.Error()
				return
			}
			s.Sends++
			s.LastResult = "sent"
			s.LastError = ""
		})

		if sendErr == nil {
			r.logger.InfoContext(ctx, "scheduled email sent", slog.Int("seq", e.Seq))
		}
		return sendErr
	})

	r.update(job.ID, func(s *Status) {
		s.NextDue = time.Time{}
		s.State = StateDone
		if err != nil {
			s.State = StateCancelled
		}
	})
	r.logger.InfoContext(ctx, "job finished", slog.Bool("cancelled", err != nil))
}

// update applies fn to the status if jobID is still the current job.
func (r *Runner) update(jobID string, fn func(*Status)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.JobID == jobID {
		fn(&r.status)
	}
}

// Cancel stops the active job. A send in progress completes first, so the
// state stays active until the job goroutine exits; use Wait to block for it.
// It returns ErrNoActiveJob when nothing is scheduled.
func (r *Runner) Cancel() (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.status.Active() || r.cancel == nil {
		return r.status.clone(), ErrNoActiveJob
	}
	r.cancel()
	return r.status.clone(), nil
}

// Status returns a snapshot of the current or last job.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.clone()
}

// Wait blocks until the current job goroutine exits or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown cancels the active job and waits for it to exit.
// Its signature matches ShutdownHook.
func (r *Runner) Shutdown(ctx context.Context) error {
	if _, err := r.Cancel(); err != nil && !errors.Is(err, ErrNoActiveJob) {
		return err
	}
	return r.Wait(ctx)
}

// RunJob schedules job on the calling goroutine and blocks until the policy is
// exhausted (nil) or ctx is cancelled (ctx.Err()). Each due event dispatches the job
// synchronously; a failed send is logged and reported to onResult, never fatal.
// onResult may be nil.
func RunJob(ctx context.Context, d Dispatcher, job mailer.Job, policy trigger.Policy, onResult func(trigger.Event, error), opts ...trigger.Option) error {
	if err := job.Validate(); err != nil {
		return err
	}
	ev, err := trigger.New(policy, opts...)
	if err != nil {
		return err
	}

	job = job.Clone()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	ctx = logger.WithJobID(ctx, job.ID)

	return ev.Run(ctx, func(ctx context.Context, e trigger.Event) error {
		err := d.Dispatch(ctx, job)
		if onResult != nil {
			onResult(e, err)
		}
		return err
	})
}
