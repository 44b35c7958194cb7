package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sendlater/internal"
	"github.com/dmitrymomot/sendlater/pkg/health"
	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/mailer/smtp"
	"github.com/dmitrymomot/sendlater/pkg/trigger"
)

type sendFlags struct {
	jobPath  string
	from     string
	password string
	to       string
	subject  string
	body     string
	bodyFile string
	attach   string
	markdown bool
	timezone string
	check    bool
	dryRun   bool
	spec     trigger.Spec
}

func newSendCmd(c *cli) *cobra.Command {
	f := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Schedule one email and wait for it in the foreground",
		Long: `Schedule one email and block until it has been sent.

Exactly one schedule is required: --every, --at-date (with optional --at-time),
--daily or --cron. Interval, daily and cron jobs keep running until interrupted;
a failed send is reported and the schedule stays alive. Ctrl-C cancels the job.`,
		Example: `  sendlater send --from me@example.com --to "a@example.com, b@example.com" \
    --body "Nightly log attached" --attach /var/log/app.log --every 3600

  sendlater send --job nightly.yaml --at-date 2026-12-24 --at-time 18:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSend(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.jobPath, "job", "", "YAML job file; flags override its fields")
	fl.StringVar(&f.from, "from", "", "Sender address")
	fl.StringVar(&f.password, "password", "", "SMTP password or app password (env SMTP_PASSWORD)")
	fl.StringVar(&f.to, "to", "", "Comma separated recipient addresses")
	fl.StringVar(&f.subject, "subject", "", "Subject (env MAILER_FALLBACK_SUBJECT when empty)")
	fl.StringVar(&f.body, "body", "", "Message body")
	fl.StringVar(&f.bodyFile, "body-file", "", "Read the message body from a file")
	fl.StringVar(&f.attach, "attach", "", "Attachment path or s3://bucket/key")
	fl.BoolVar(&f.markdown, "markdown", false, "Render the body as Markdown into an HTML alternative")
	fl.StringVar(&f.spec.Every, "every", "", "Send every N seconds (or a duration like 1h30m)")
	fl.StringVar(&f.spec.AtDate, "at-date", "", "Send once on this date (2006-01-02, 01/02/06, 01/02/2006, 02.01.2006)")
	fl.StringVar(&f.spec.AtTime, "at-time", "", "Time of day for --at-date (15:04:05 or 15:04, default midnight)")
	fl.StringVar(&f.spec.Daily, "daily", "", "Send every day at HH:MM[:SS]")
	fl.StringVar(&f.spec.Cron, "cron", "", `Send on a 6-field cron schedule, seconds first ("0 30 9 * * MON-FRI")`)
	fl.StringVar(&f.timezone, "timezone", "", "Zone for dates and times (env SENDLATER_TIMEZONE, default local)")
	fl.BoolVar(&f.check, "check", false, "Verify SMTP and S3 connectivity before scheduling")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Print the composed message instead of scheduling it")

	return cmd
}

// resolve merges the job file with the flags. Non-empty flags win; schedules are
// taken whole from the flags or whole from the file.
func (f *sendFlags) resolve() (mailer.Job, trigger.Spec, string, error) {
	var jf jobFile
	if f.jobPath != "" {
		var err error
		if jf, err = loadJobFile(f.jobPath); err != nil {
			return mailer.Job{}, trigger.Spec{}, "", err
		}
	}

	job := jf.job()
	if f.from != "" {
		job.Sender = strings.TrimSpace(f.from)
	}
	if f.to != "" {
		job.Recipients = mailer.Recipients(f.to)
	}
	if f.subject != "" {
		job.Subject = f.subject
	}
	if f.attach != "" {
		job.AttachmentPath = strings.TrimSpace(f.attach)
	}
	if f.markdown {
		job.Markdown = true
	}
	switch {
	case f.body != "":
		job.Body = f.body
	case f.bodyFile != "":
		data, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return mailer.Job{}, trigger.Spec{}, "", fmt.Errorf("body file: %w", err)
		}
		job.Body = string(data)
	}

	return job, f.spec.Merge(jf.Spec), jf.Timezone, nil
}

func (c *cli) runSend(cmd *cobra.Command, f *sendFlags) error {
	ctx := cmd.Context()

	job, spec, fileZone, err := f.resolve()
	if err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return err
	}

	cfg := c.cfg
	if f.password != "" {
		cfg.SMTP.Password = f.password
	}

	loader, s3Check, err := newLoader(cfg)
	if err != nil {
		return err
	}
	m, err := newMailer(cfg, "", loader, c.log)
	if err != nil {
		return err
	}

	if f.dryRun {
		return printMessage(ctx, cmd, m, job)
	}

	loc, err := location(f.timezone, fileZone, cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	policy, err := spec.Policy(loc)
	if err != nil {
		return err
	}

	if f.check {
		if _, err := health.Run(ctx, readinessChecks(cfg, s3Check), health.WithLogger(c.log)); err != nil {
			return err
		}
	}

	c.log.InfoContext(ctx, "job scheduled",
		slog.String("policy", policy.String()),
		slog.Time("next_due", policy.First(time.Now())),
		slog.Int("recipients", len(job.Recipients)),
	)

	w := out(cmd)
	err = internal.RunJob(ctx, m, job, policy, func(e trigger.Event, err error) {
		if err != nil {
			fmt.Fprintf(w, "send #%d failed: %v\n", e.Seq, err)
			return
		}
		fmt.Fprintf(w, "send #%d delivered to %s\n", e.Seq, strings.Join(job.Recipients, ", "))
	}, trigger.WithLogger(c.log))

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "cancelled")
		return nil
	}
	return err
}

// printMessage writes the RFC 2822 form of the composed job to stdout.
func printMessage(ctx context.Context, cmd *cobra.Command, m *mailer.Mailer, job mailer.Job) error {
	email, err := m.Compose(ctx, job)
	if err != nil {
		return err
	}
	_, err = smtp.NewMessage(email).WriteTo(out(cmd))
	return err
}
