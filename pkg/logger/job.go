package logger

import (
	"context"
	"log/slog"
)

type jobIDKey struct{}

// WithJobID returns a copy of ctx carrying the scheduled job id.
func WithJobID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, jobIDKey{}, id)
}

// JobIDFromContext returns the job id stored by WithJobID.
func JobIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(jobIDKey{}).(string)
	return id, ok && id != ""
}

// JobIDExtractor adds a "job_id" attribute to every record logged with a job context.
func JobIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := JobIDFromContext(ctx); ok {
		return slog.String("job_id", id), true
	}
	return slog.Attr{}, false
}
