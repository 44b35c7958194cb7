package mailer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sendlater/pkg/logger"
	"github.com/dmitrymomot/sendlater/pkg/storage"
)

// Mailer composes jobs into emails and hands them to a Sender.
type Mailer struct {
	sender Sender
	loader AttachmentLoader
	logger *slog.Logger
	config Config
}

// New creates a new Mailer with the given sender.
// Attachments are read from the local file system unless WithAttachmentLoader is given.
func New(sender Sender, cfg Config, opts ...Option) *Mailer {
	if cfg.FallbackSubject == "" {
		cfg.FallbackSubject = DefaultFallbackSubject
	}
	m := &Mailer{
		sender: sender,
		loader: storage.LocalFS{},
		logger: logger.NewNope(),
		config: cfg,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dispatch validates job, builds the message and delivers it synchronously.
// Validation and attachment failures return before the transport is touched.
// No retry is attempted.
func (m *Mailer) Dispatch(ctx context.Context, job Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	email, err := m.Compose(ctx, job)
	if err != nil {
		return err
	}

	if err := m.sender.Send(ctx, email); err != nil {
		m.logger.WarnContext(ctx, "email not sent",
			slog.Int("recipients", len(email.To)),
			slog.String("error", err.Error()),
		)
		if isClassified(err) {
			return err
		}
		return errors.Join(ErrSendFailed, err)
	}

	m.logger.InfoContext(ctx, "email sent",
		slog.Int("recipients", len(email.To)),
		slog.Int("attachments", len(email.Attachments)),
	)
	return nil
}

// Compose builds the Email for job without sending it.
//
// Subject resolution: job.Subject > markdown frontmatter subject > Config.FallbackSubject.
func (m *Mailer) Compose(ctx context.Context, job Job) (*Email, error) {
	email := &Email{
		From: job.Sender,
		To:   append([]string(nil), job.Recipients...),
		Text: job.Body,
	}

	subject := strings.TrimSpace(job.Subject)
	if job.Markdown {
		meta, text, err := SplitFrontmatter(job.Body)
		if err != nil {
			return nil, err
		}
		html, err := RenderHTML(text)
		if err != nil {
			return nil, err
		}
		email.Text = text
		email.HTML = html
		if subject == "" {
			subject = strings.TrimSpace(meta.Subject)
		}
	}
	if subject == "" {
		subject = m.config.FallbackSubject
	}
	email.Subject = subject

	if path := strings.TrimSpace(job.AttachmentPath); path != "" {
		f, err := m.loader.Open(ctx, path)
		if err != nil {
			return nil, errors.Join(ErrAttachment, err)
		}
		email.Attachments = []Attachment{{
			Filename:    f.Name,
			ContentType: f.ContentType,
			Content:     f.Content,
		}}
	}

	return email, nil
}

// isClassified reports whether a transport error already carries a mailer sentinel.
func isClassified(err error) bool {
	for _, target := range []error{ErrAuthFailed, ErrNetwork, ErrInvalidRecipient, ErrSendFailed} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
