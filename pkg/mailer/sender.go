package mailer

import "context"

// Sender defines the minimal interface that mail transports must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message.
	// Implementations classify failures with ErrAuthFailed, ErrNetwork,
	// ErrInvalidRecipient or ErrSendFailed.
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) error

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}
