package resend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/sendlater/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    s.from(email.From),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Sender) from(jobSender string) string {
	if jobSender != "" && !s.config.ForceSender {
		return jobSender
	}
	if s.config.SenderEmail == "" {
		return jobSender
	}
	return mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		}
	}
	return result
}

// classify maps Resend client errors onto mailer sentinels.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Join(mailer.ErrNetwork, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "unauthorized"):
		return errors.Join(mailer.ErrAuthFailed, err)
	case strings.Contains(msg, "invalid `to`"), strings.Contains(msg, "invalid to"):
		return errors.Join(mailer.ErrInvalidRecipient, err)
	}
	return errors.Join(mailer.ErrSendFailed, fmt.Errorf("resend: %w", err))
}
