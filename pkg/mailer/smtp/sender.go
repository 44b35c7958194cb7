package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	netmail "net/mail"
	"net/textproto"
	"strings"

	"gopkg.in/mail.v2"

	"github.com/dmitrymomot/sendlater/pkg/mailer"
)

// Sender implements mailer.Sender over SMTP submission with mandatory STARTTLS.
type Sender struct {
	config Config
}

// New creates a new SMTP sender.
func New(cfg Config) *Sender {
	cfg.applyDefaults()
	return &Sender{config: cfg}
}

// Send implements mailer.Sender.
// The connection is opened per email and closed afterwards.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(mailer.ErrSendFailed, err)
	}

	username := s.config.Username
	if username == "" {
		addr, err := parseAddress(email.From)
		if err != nil {
			return errors.Join(mailer.ErrInvalidSender, err)
		}
		username = addr
	}

	d := dialer(s.config, username)
	if err := d.DialAndSend(NewMessage(email)); err != nil {
		return classify(err)
	}
	return nil
}

// Healthcheck returns a readiness check that connects to the server and
// completes the STARTTLS handshake. It authenticates only when Username is set.
func Healthcheck(cfg Config) func(context.Context) error {
	cfg.applyDefaults()
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := dialer(cfg, cfg.Username).Dial()
		if err != nil {
			return classify(err)
		}
		return conn.Close()
	}
}

func dialer(cfg Config, username string) *mail.Dialer {
	d := mail.NewDialer(cfg.Host, cfg.Port, username, cfg.Password)
	d.Timeout = cfg.Timeout
	d.LocalName = cfg.LocalName
	if !d.SSL {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	}
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return d
}

// classify maps a transport error onto mailer sentinels.
//
//	530, 534, 535       -> ErrAuthFailed
//	501, 550, 553       -> ErrInvalidRecipient
//	net.Error, TLS, DNS -> ErrNetwork
//	anything else       -> ErrSendFailed
func classify(err error) error {
	cause := err
	var sendErr *mail.SendError
	if errors.As(err, &sendErr) && sendErr.Cause != nil {
		cause = sendErr.Cause
	}

	var protoErr *textproto.Error
	if errors.As(cause, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return errors.Join(mailer.ErrAuthFailed, cause)
		case 501, 550, 553:
			return errors.Join(mailer.ErrInvalidRecipient, cause)
		}
		return errors.Join(mailer.ErrSendFailed, cause)
	}

	var (
		netErr  net.Error
		recErr  tls.RecordHeaderError
		certErr *tls.CertificateVerificationError
	)
	if errors.As(cause, &netErr) || errors.As(cause, &recErr) || errors.As(cause, &certErr) {
		return errors.Join(mailer.ErrNetwork, cause)
	}

	if strings.Contains(cause.Error(), "STARTTLS") {
		return errors.Join(mailer.ErrNetwork, cause)
	}

	return errors.Join(mailer.ErrSendFailed, cause)
}

// parseAddress returns the bare address of an RFC 5322 mailbox.
func parseAddress(s string) (string, error) {
	addr, err := netmail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("smtp: parse address %q: %w", s, err)
	}
	return addr.Address, nil
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
