package smtp

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mail.v2"

	"github.com/dmitrymomot/sendlater/pkg/mailer"
)

// closedPort returns a local port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	assert.Equal(t, DefaultHost, s.config.Host)
	assert.Equal(t, DefaultPort, s.config.Port)
	assert.Equal(t, DefaultTimeout, s.config.Timeout)
}

func TestDialer(t *testing.T) {
	t.Parallel()

	d := dialer(Config{Host: "smtp.example.com", Port: 587}, "me@example.com")
	assert.Equal(t, mail.MandatoryStartTLS, d.StartTLSPolicy)
	assert.Equal(t, "me@example.com", d.Username)
	assert.False(t, d.SSL)

	d = dialer(Config{Host: "smtp.example.com", Port: 465}, "me@example.com")
	assert.True(t, d.SSL)
}

func TestSender_Send_NetworkFailure(t *testing.T) {
	t.Parallel()

	s := New(Config{Host: "127.0.0.1", Port: closedPort(t), Password: "secret"})
	err := s.Send(context.Background(), &mailer.Email{
		From: "me@example.com",
		To:   []string{"a@x.com"},
		Text: "hello",
	})
	require.ErrorIs(t, err, mailer.ErrNetwork)
}

func TestSender_Send_InvalidSender(t *testing.T) {
	t.Parallel()

	s := New(Config{Host: "127.0.0.1", Port: closedPort(t)})
	err := s.Send(context.Background(), &mailer.Email{From: "not an address", To: []string{"a@x.com"}})
	require.ErrorIs(t, err, mailer.ErrInvalidSender)
}

func TestSender_Send_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(Config{}).Send(ctx, &mailer.Email{From: "me@example.com", To: []string{"a@x.com"}})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHealthcheck_Unreachable(t *testing.T) {
	t.Parallel()

	check := Healthcheck(Config{Host: "127.0.0.1", Port: closedPort(t)})
	require.ErrorIs(t, check(context.Background()), mailer.ErrNetwork)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "auth required", err: &textproto.Error{Code: 530, Msg: "5.7.0 Authentication Required"}, want: mailer.ErrAuthFailed},
		{name: "bad credentials", err: &textproto.Error{Code: 535, Msg: "5.7.8 Username and Password not accepted"}, want: mailer.ErrAuthFailed},
		{name: "app password required", err: &textproto.Error{Code: 534, Msg: "5.7.9 Application-specific password required"}, want: mailer.ErrAuthFailed},
		{name: "mailbox unavailable", err: &textproto.Error{Code: 550, Msg: "5.1.1 No such user"}, want: mailer.ErrInvalidRecipient},
		{name: "mailbox name not allowed", err: &textproto.Error{Code: 553, Msg: "5.1.3 Invalid address"}, want: mailer.ErrInvalidRecipient},
		{name: "syntax error in address", err: &textproto.Error{Code: 501, Msg: "5.1.3 Bad recipient address syntax"}, want: mailer.ErrInvalidRecipient},
		{name: "wrapped in send error", err: &mail.SendError{Cause: &textproto.Error{Code: 550}}, want: mailer.ErrInvalidRecipient},
		{name: "other reply code", err: &textproto.Error{Code: 452, Msg: "4.5.3 Too many recipients"}, want: mailer.ErrSendFailed},
		{name: "dial failure", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: mailer.ErrNetwork},
		{name: "dns failure", err: &net.DNSError{Err: "no such host", Name: "smtp.invalid"}, want: mailer.ErrNetwork},
		{name: "no starttls", err: errors.New("gomail: MandatoryStartTLS required, but SMTP server does not support STARTTLS"), want: mailer.ErrNetwork},
		{name: "unknown", err: errors.New("boom"), want: mailer.ErrSendFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classify(tt.err)
			require.ErrorIs(t, got, tt.want)
		})
	}
}
