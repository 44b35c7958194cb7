package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// flushTimeout bounds how long the returned flush func waits for buffered events.
const flushTimeout = 2 * time.Second

// NewWithSentry creates a logger that writes to base and to Sentry.
// A nil base means JSON to stdout. If DSN is empty, only base is used.
// Context extractors are applied to records sent to both destinations.
// The returned func flushes buffered Sentry events and must be called before exit.
func NewWithSentry(cfg SentryConfig, base slog.Handler, extractors ...ContextExtractor) (*slog.Logger, func()) {
	if base == nil {
		base = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	noflush := func() {}

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noflush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(base, extractors...)), noflush
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError}, // failed sends become Issues
		LogLevel:   sentryLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(base, sentryHandler)
	flush := func() { sentry.Flush(flushTimeout) }
	return slog.New(NewLogHandlerDecorator(combined, extractors...)), flush
}

// sentryLevels lists the levels at or above floor that are stored as Sentry logs.
func sentryLevels(floor slog.Level) []slog.Level {
	all := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	out := make([]slog.Level, 0, len(all))
	for _, l := range all {
		if l >= floor {
			out = append(out, l)
		}
	}
	return out
}
