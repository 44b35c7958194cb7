// Package resend implements mailer.Sender on top of the Resend HTTP API.
// It is an alternative to SMTP submission for hosts where outbound port 587 is blocked.
package resend
