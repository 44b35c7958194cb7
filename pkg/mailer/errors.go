package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("mailer: email must have at least one recipient")

	// ErrInvalidRecipient indicates a malformed or rejected recipient address.
	ErrInvalidRecipient = errors.New("mailer: invalid recipient address")

	// ErrInvalidSender indicates a malformed sender address.
	ErrInvalidSender = errors.New("mailer: invalid sender address")

	// ErrAttachment indicates the attachment is missing or unreadable. Nothing is sent.
	ErrAttachment = errors.New("mailer: attachment unavailable")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter in a markdown body.
	ErrInvalidFrontmatter = errors.New("mailer: invalid frontmatter")

	// ErrRenderFailed indicates markdown conversion failed.
	ErrRenderFailed = errors.New("mailer: failed to render markdown")

	// ErrAuthFailed indicates the transport rejected the credentials.
	ErrAuthFailed = errors.New("mailer: authentication failed")

	// ErrNetwork indicates the transport could not be reached.
	ErrNetwork = errors.New("mailer: network failure")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("mailer: failed to send email")
)
