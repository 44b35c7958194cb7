// Package sendlater schedules an email and sends it after a repeating interval,
// at a given date and time, or on a recurring daily or cron schedule.
//
// The building blocks live in pkg: pkg/trigger decides when a send is due, pkg/mailer
// composes and dispatches the message through an SMTP or Resend transport, and
// pkg/storage loads attachments from disk or S3. This package wires them into two
// surfaces: [RunJob] for a foreground run, and a small web control panel built from
// [Runner], [Panel] and [App].
//
// # Foreground
//
//	m := mailer.New(smtp.New(smtp.Config{Password: pass}), mailer.Config{})
//	job := mailer.NewJob("me@example.com", "a@example.com, b@example.com", "See attached.")
//	job.AttachmentPath = "/var/log/app.log"
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	err := sendlater.RunJob(ctx, m, job, trigger.Every(3600), nil)
//
// # Control panel
//
//	runner := sendlater.NewRunner(m, sendlater.WithRunnerLogger(log))
//	panel := sendlater.NewPanel(runner)
//	app := sendlater.New(
//	    sendlater.WithCustomLogger(log),
//	    sendlater.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    sendlater.WithHandlers(panel),
//	    sendlater.WithErrorHandler(panel.ErrorHandler),
//	    sendlater.WithHealthChecks(),
//	)
//
//	err := app.Run("127.0.0.1:8025",
//	    sendlater.Logger(log),
//	    sendlater.StopOn(panel.Stopped()),
//	    sendlater.ShutdownHook(runner.Shutdown),
//	)
//
// Only one job is active at a time. Start while a job is scheduled fails with
// [ErrJobActive]; Cancel lets a send in progress finish before the job stops.
package sendlater
