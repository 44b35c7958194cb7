// Package smtp implements mailer.Sender over SMTP submission.
//
// It dials the configured server (smtp.gmail.com:587 by default), upgrades the
// connection with mandatory STARTTLS (implicit TLS on port 465) and logs in with
// username and password. When Config.Username is empty the sender address of each
// email is used as the login, which matches how personal mailbox providers work.
//
//	sender := smtp.New(smtp.Config{Password: os.Getenv("SMTP_PASSWORD")})
//	m := mailer.New(sender, mailer.Config{})
//
// Transport errors are classified into mailer.ErrAuthFailed, mailer.ErrInvalidRecipient,
// mailer.ErrNetwork or mailer.ErrSendFailed.
package smtp
