// Package internal implements the sendlater control panel: a small chi-based HTTP app,
// the Runner that owns the single scheduled job, and the Panel handlers that drive it.
//
// Import "github.com/dmitrymomot/sendlater" instead, which re-exports the public API.
//
// # Runner
//
// Runner holds at most one active job. Start validates the job, builds a trigger
// evaluator for the policy and runs it on its own goroutine; every due event calls the
// Dispatcher synchronously. Cancel stops the evaluator without interrupting a send in
// progress, and Status returns a snapshot safe to render from any goroutine.
//
//	runner := internal.NewRunner(m, internal.WithRunnerLogger(log))
//	status, err := runner.Start(ctx, job, trigger.Every(3600))
//	if errors.Is(err, internal.ErrJobActive) {
//	    // cancel the current job first
//	}
//
// # Panel
//
// Panel exposes the Start, Cancel and Exit actions over HTTP. Responses are JSON when
// the client asks for it, an HTML status fragment for HTMX requests, and a redirect back
// to the form for plain form posts.
//
//	panel := internal.NewPanel(runner)
//	app := internal.New(
//	    internal.WithHandlers(panel),
//	    internal.WithErrorHandler(panel.ErrorHandler),
//	    internal.WithHealthChecks(),
//	)
//	err := app.Run(":8025",
//	    internal.StopOn(panel.Stopped()),
//	    internal.ShutdownHook(runner.Shutdown),
//	)
//
// # Errors
//
// Handlers return errors; HTTPError carries the status code. Validation failures map to
// 422, a second Start while a job is active to 409.
package internal
