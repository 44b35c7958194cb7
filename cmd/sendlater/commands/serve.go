package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sendlater/internal"
	"github.com/dmitrymomot/sendlater/middlewares"
	"github.com/dmitrymomot/sendlater/pkg/logger"
	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/storage"
)

type serveFlags struct {
	addr     string
	timezone string
	shutdown time.Duration
}

func newServeCmd(c *cli) *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Open the local control panel",
		Long: `Serve a web control panel with Start, Cancel and Exit actions.

One job runs at a time. The password field of the form overrides SMTP_PASSWORD
for that job only. Exit cancels the job and stops the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (env SENDLATER_ADDR, default 127.0.0.1:8025)")
	cmd.Flags().StringVar(&f.timezone, "timezone", "", "Zone for the form's date and time (env SENDLATER_TIMEZONE)")
	cmd.Flags().DurationVar(&f.shutdown, "shutdown-timeout", 30*time.Second, "Grace period for a send in progress at shutdown")

	return cmd
}

func (c *cli) runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg := c.cfg
	addr := cfg.Addr
	if f.addr != "" {
		addr = f.addr
	}

	loc, err := location(f.timezone, cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	loader, s3Check, err := newLoader(cfg)
	if err != nil {
		return err
	}
	m, err := newMailer(cfg, "", loader, c.log)
	if err != nil {
		return err
	}

	runner := internal.NewRunner(m, internal.WithRunnerLogger(c.log))
	panel := internal.NewPanel(runner,
		internal.WithLocation(loc),
		internal.WithCredentialDispatcher(c.credentialDispatcher(cfg, loader)),
	)

	var checks []internal.HealthOption
	for name, check := range readinessChecks(cfg, s3Check) {
		checks = append(checks, internal.WithReadinessCheck(name, check))
	}

	panelLog := slog.New(logger.NewLogHandlerDecorator(c.log.Handler(), middlewares.RequestIDExtractor())).
		With(slog.String("component", "panel"))

	app := internal.New(
		internal.WithCustomLogger(panelLog),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
		),
		internal.WithHandlers(panel),
		internal.WithErrorHandler(panel.ErrorHandler),
		internal.WithHealthChecks(checks...),
	)

	return app.Run(addr,
		internal.WithContext(cmd.Context()),
		internal.Logger(c.log),
		internal.ShutdownTimeout(f.shutdown),
		internal.StopOn(panel.Stopped()),
		internal.StartupHook(func(context.Context) error {
			fmt.Fprintf(out(cmd), "control panel on http://%s/\n", addr)
			return nil
		}),
		internal.ShutdownHook(runner.Shutdown),
	)
}

// credentialDispatcher builds a one-job mailer around the password typed in the panel.
// A transport that cannot be built falls back to an erroring dispatcher so the
// failure shows up in the job status.
func (c *cli) credentialDispatcher(cfg Config, loader storage.Source) func(string) internal.Dispatcher {
	return func(password string) internal.Dispatcher {
		m, err := newMailer(cfg, password, loader, c.log)
		if err != nil {
			return failingDispatcher{err: err}
		}
		return m
	}
}

type failingDispatcher struct {
	err error
}

func (d failingDispatcher) Dispatch(context.Context, mailer.Job) error {
	return d.err
}
