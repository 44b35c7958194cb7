// Package mailer composes scheduled jobs into emails and delivers them through a
// pluggable transport.
//
// The package separates message composition from delivery, so the SMTP transport
// (package smtp) and the Resend API transport (package resend) are interchangeable.
//
// # Architecture
//
//   - Job: the composed email as entered by the user (sender, recipients, body, attachment)
//   - Sender: interface that transports implement
//   - Mailer: validates a Job, loads its attachment, builds an Email and calls the Sender
//
// # Usage
//
//	sender := smtp.New(smtp.Config{Password: os.Getenv("SMTP_PASSWORD")})
//
//	m := mailer.New(sender, mailer.Config{FallbackSubject: "Scheduled Email"},
//		mailer.WithAttachmentLoader(storage.NewMux(storage.LocalFS{}, storage.WithScheme("s3", s3))),
//	)
//
//	job := mailer.NewJob("me@example.com", "a@x.com, b@x.com", "Logs attached.")
//	job.AttachmentPath = "/var/log/app.log"
//
//	if err := m.Dispatch(ctx, job); err != nil {
//		switch {
//		case errors.Is(err, mailer.ErrAttachment):
//			// nothing was sent
//		case errors.Is(err, mailer.ErrAuthFailed):
//			// wrong password
//		}
//	}
//
// # Markdown
//
// When Job.Markdown is set the body is rendered to HTML with goldmark, sanitized with
// bluemonday and sent as an alternative to the plain text part. A markdown body may start
// with YAML frontmatter:
//
//	---
//	subject: Nightly report
//	---
//	The **nightly** log is attached.
//
// Subject resolution: Job.Subject > frontmatter subject > Config.FallbackSubject.
//
// # Errors
//
// Every failure is returned once, wrapped in a sentinel with errors.Join or fmt.Errorf:
//
//   - ErrInvalidSender, ErrNoRecipient, ErrInvalidRecipient: validation
//   - ErrAttachment: missing or unreadable attachment, nothing is sent
//   - ErrAuthFailed, ErrNetwork, ErrSendFailed: transport failures
//
// Nothing is retried.
package mailer
