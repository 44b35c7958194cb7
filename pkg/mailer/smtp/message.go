package smtp

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/mail.v2"

	"github.com/dmitrymomot/sendlater/pkg/mailer"
)

// NewMessage converts email into a MIME message.
// The plain text part is always present; HTML, when set, is added as an alternative.
// Attachments keep their display filename in Content-Disposition.
func NewMessage(email *mailer.Email) *mail.Message {
	m := mail.NewMessage()

	m.SetHeader("From", email.From)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetDateHeader("Date", time.Now())
	m.SetHeader("Message-ID", messageID(email.From))
	for k, v := range email.Headers {
		m.SetHeader(k, v)
	}

	m.SetBody("text/plain", email.Text)
	if email.HTML != "" {
		m.AddAlternative("text/html", email.HTML)
	}

	for _, a := range email.Attachments {
		m.Attach(a.Filename,
			mail.SetCopyFunc(copyContent(a.Content)),
			mail.SetHeader(map[string][]string{
				"Content-Type": {contentType(a)},
			}),
		)
	}

	return m
}

func copyContent(content []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	}
}

func contentType(a mailer.Attachment) string {
	if a.ContentType == "" {
		return "application/octet-stream"
	}
	return a.ContentType
}

// messageID builds a Message-ID in the sender's domain.
func messageID(from string) string {
	domain := "localhost"
	if addr, err := parseAddress(from); err == nil {
		if _, d, ok := cutLast(addr, "@"); ok && d != "" {
			domain = d
		}
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
