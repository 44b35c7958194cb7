package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/sendlater/pkg/health"
	"github.com/dmitrymomot/sendlater/pkg/logger"
	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/mailer/resend"
	"github.com/dmitrymomot/sendlater/pkg/mailer/smtp"
	"github.com/dmitrymomot/sendlater/pkg/storage"
)

// Transports selectable with SENDLATER_TRANSPORT.
const (
	transportSMTP   = "smtp"
	transportResend = "resend"
)

var (
	errUnknownTransport = errors.New("unknown transport")
	errNoResendKey      = errors.New("RESEND_API_KEY is required for the resend transport")
	errUnknownFormat    = errors.New("unknown log format")
)

// Config is the environment of the sendlater binary.
// Flags override the values read here.
type Config struct {
	Transport string `env:"SENDLATER_TRANSPORT" envDefault:"smtp"`
	Addr      string `env:"SENDLATER_ADDR" envDefault:"127.0.0.1:8025"`
	Timezone  string `env:"SENDLATER_TIMEZONE"`
	LogLevel  string `env:"SENDLATER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SENDLATER_LOG_FORMAT" envDefault:"text"`

	Mailer  mailer.Config
	SMTP    smtp.Config
	Resend  resend.Config
	Storage storage.Config
	Sentry  logger.SentryConfig
}

// loadConfig parses the process environment, or environ when it is not nil.
func loadConfig(environ map[string]string) (Config, error) {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	return cfg, nil
}

// newLogger builds the CLI logger. Records also go to Sentry when SENTRY_DSN is set;
// the returned func flushes them.
func newLogger(cfg Config, w io.Writer) (*slog.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var base slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		base = logger.NewText(w, level).Handler()
	case "json":
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownFormat, cfg.LogFormat)
	}

	log, flush := logger.NewWithSentry(cfg.Sentry, base, logger.JobIDExtractor)
	return log, flush, nil
}

// newSender returns the configured transport. password, when set, overrides SMTP_PASSWORD.
func newSender(cfg Config, password string) (mailer.Sender, error) {
	switch cfg.Transport {
	case "", transportSMTP:
		sc := cfg.SMTP
		if password != "" {
			sc.Password = password
		}
		return smtp.New(sc), nil
	case transportResend:
		if cfg.Resend.APIKey == "" {
			return nil, errNoResendKey
		}
		return resend.New(cfg.Resend), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownTransport, cfg.Transport)
	}
}

// newLoader returns the attachment source: local files, plus s3:// when S3 is configured.
// The S3 readiness check is nil without S3.
func newLoader(cfg Config) (storage.Source, health.CheckFunc, error) {
	local := storage.LocalFS{MaxSize: cfg.Storage.MaxSize}
	if !cfg.Storage.Enabled() {
		return local, nil, nil
	}

	s3, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewMux(local, storage.WithScheme("s3", s3)), s3.Healthcheck(), nil
}

// readinessChecks lists the checks run by --check and /health/ready.
func readinessChecks(cfg Config, s3Check health.CheckFunc) health.Checks {
	checks := health.Checks{}
	if cfg.Transport == "" || cfg.Transport == transportSMTP {
		checks["smtp"] = smtp.Healthcheck(cfg.SMTP)
	}
	if s3Check != nil {
		checks["s3"] = s3Check
	}
	return checks
}

// newMailer wires a sender and the attachment loader into a Mailer.
func newMailer(cfg Config, password string, loader storage.Source, log *slog.Logger) (*mailer.Mailer, error) {
	sender, err := newSender(cfg, password)
	if err != nil {
		return nil, err
	}
	return mailer.New(sender, cfg.Mailer,
		mailer.WithAttachmentLoader(loader),
		mailer.WithLogger(log),
	), nil
}
