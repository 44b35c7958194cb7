package mailer

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/sendlater/pkg/storage"
)

// AttachmentLoader reads an attachment by location.
// storage.LocalFS, storage.S3Storage and storage.Mux all satisfy it.
type AttachmentLoader interface {
	Open(ctx context.Context, location string) (*storage.File, error)
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithAttachmentLoader replaces the default local file system loader.
func WithAttachmentLoader(l AttachmentLoader) Option {
	return func(m *Mailer) {
		if l != nil {
			m.loader = l
		}
	}
}

// WithLogger sets the logger for send results.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}
