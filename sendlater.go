package sendlater

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sendlater/internal"
	"github.com/dmitrymomot/sendlater/pkg/health"
	"github.com/dmitrymomot/sendlater/pkg/logger"
	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/trigger"
)

// Type aliases - public API
type (
	// App serves the control panel and manages graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is the interface for renderable views.
	Component = internal.Component

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// Dispatcher delivers one job. *mailer.Mailer implements it.
	Dispatcher = internal.Dispatcher

	// Runner owns the single active job of the control panel.
	Runner = internal.Runner

	// RunnerOption configures a Runner.
	RunnerOption = internal.RunnerOption

	// StartOption customizes a single Runner.Start call.
	StartOption = internal.StartOption

	// Status is a snapshot of the runner.
	Status = internal.Status

	// Panel serves the Start, Cancel and Exit actions over HTTP.
	Panel = internal.Panel

	// PanelOption configures a Panel.
	PanelOption = internal.PanelOption

	// HTTPError carries a status code through handler errors.
	HTTPError = internal.HTTPError
)

// Runner errors.
var (
	ErrJobActive   = internal.ErrJobActive
	ErrNoActiveJob = internal.ErrNoActiveJob
)

// New creates the panel application.
//
// Example:
//
//	runner := sendlater.NewRunner(m)
//	panel := sendlater.NewPanel(runner)
//	app := sendlater.New(
//	    sendlater.WithHandlers(panel),
//	    sendlater.WithErrorHandler(panel.ErrorHandler),
//	)
//	err := app.Run(":8025", sendlater.StopOn(panel.Stopped()))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRunner creates an idle runner that sends through d.
func NewRunner(d Dispatcher, opts ...RunnerOption) *Runner {
	return internal.NewRunner(d, opts...)
}

// NewPanel creates the control panel handlers for runner.
func NewPanel(runner *Runner, opts ...PanelOption) *Panel {
	return internal.NewPanel(runner, opts...)
}

// RunJob runs job in the foreground until policy is exhausted or ctx is cancelled.
// onResult, if not nil, is called after every send attempt.
//
// Example:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err := sendlater.RunJob(ctx, m, job, trigger.Every(3600), nil)
//	if errors.Is(err, context.Canceled) {
//	    // cancelled by the user
//	}
func RunJob(ctx context.Context, d Dispatcher, job mailer.Job, policy trigger.Policy, onResult func(trigger.Event, error), opts ...trigger.Option) error {
	return internal.RunJob(ctx, d, job, policy, onResult, opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithLogger creates a JSON logger with a component name and optional extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Runner options

// WithRunnerLogger sets the logger for job lifecycle events.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return internal.WithRunnerLogger(l)
}

// WithRunnerClock replaces the clock used by the runner's evaluators.
func WithRunnerClock(c trigger.Clock) RunnerOption {
	return internal.WithRunnerClock(c)
}

// WithTriggerOptions passes extra options to every evaluator.
func WithTriggerOptions(opts ...trigger.Option) RunnerOption {
	return internal.WithTriggerOptions(opts...)
}

// UsingDispatcher sends one job through d instead of the runner's dispatcher.
func UsingDispatcher(d Dispatcher) StartOption {
	return internal.UsingDispatcher(d)
}

// Panel options

// WithCredentialDispatcher builds a dispatcher for jobs submitted with a password.
func WithCredentialDispatcher(fn func(password string) Dispatcher) PanelOption {
	return internal.WithCredentialDispatcher(fn)
}

// WithLocation sets the zone used to read the form's date and time.
func WithLocation(loc *time.Location) PanelOption {
	return internal.WithLocation(loc)
}

// WithCancelWait bounds how long Cancel and Exit wait for an in-flight send.
func WithCancelWait(d time.Duration) PanelOption {
	return internal.WithCancelWait(d)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
//
// Example:
//
//	sendlater.ShutdownHook(runner.Shutdown)
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// StopOn shuts the server down when ch is closed.
func StopOn(ch <-chan struct{}) RunOption {
	return internal.StopOn(ch)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
