package commands

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand.
type cli struct {
	// environ replaces the process environment in tests.
	environ map[string]string

	logLevel  string
	logFormat string

	cfg   Config
	log   *slog.Logger
	flush func()
}

// Execute runs the CLI. Cancelling ctx is the Cancel action of a running job.
func Execute(ctx context.Context) error {
	return newRootCmd(nil).ExecuteContext(ctx)
}

func newRootCmd(environ map[string]string) *cobra.Command {
	c := &cli{environ: environ, flush: func() {}}

	root := &cobra.Command{
		Use:   "sendlater",
		Short: "Send an email later, once or on a schedule",
		Long: `sendlater composes an email with an optional attachment and sends it
after a fixed interval, at a date and time, or on a daily or cron schedule.

Run a single job in the foreground with "send", or open the local control
panel with "serve". SMTP, Resend and S3 settings come from the environment.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { c.flush() },
	}

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (env SENDLATER_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "",
		"Log format: text, json (env SENDLATER_LOG_FORMAT)")

	root.AddCommand(newSendCmd(c))
	root.AddCommand(newServeCmd(c))
	root.AddCommand(newVersionCmd())

	return root
}

// setup loads the environment and builds the logger before any subcommand runs.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.environ)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.logFormat != "" {
		cfg.LogFormat = c.logFormat
	}

	log, flush, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = log
	c.flush = flush
	return nil
}

// location resolves the first non-empty zone name, defaulting to Local.
func location(names ...string) (*time.Location, error) {
	for _, name := range names {
		if name != "" {
			return time.LoadLocation(name)
		}
	}
	return time.Local, nil
}

// out is the writer for user-facing results.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
