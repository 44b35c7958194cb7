// Package logger provides structured logging with context extraction and Sentry integration.
//
// This package extends log/slog with automatic context-based attribute injection,
// terminal friendly output and optional Sentry error reporting.
//
// # Constructors
//
//   - New: JSON to stdout, for the web panel and production
//   - NewText: colored, human readable output via tint, for the CLI
//   - NewWithSentry: any base handler plus Sentry when SENTRY_DSN is set
//   - NewNope: discards everything, the default for libraries
//
// # Context Extractors
//
// A ContextExtractor is a function that extracts a log attribute from context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every log call. JobIDExtractor stamps the id of the scheduled
// job stored with WithJobID, so every line logged while a job runs can be correlated:
//
//	log := logger.NewText(os.Stderr, slog.LevelInfo, logger.JobIDExtractor)
//	ctx = logger.WithJobID(ctx, job.ID)
//	log.InfoContext(ctx, "email sent")
//	// 10:15:04 INF email sent job_id=2b0c...
//
// # Sentry Integration
//
//	log, flush := logger.NewWithSentry(cfg, nil, logger.JobIDExtractor)
//	defer flush()
//
// Errors create Issues in Sentry; records at or above SentryConfig.MinLevel are kept
// as Sentry logs. If DSN is empty or initialization fails, logging continues to the
// base handler only.
package logger
