package commands

import (
	"bytes"
	"context"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sendlater/pkg/mailer"
	"github.com/dmitrymomot/sendlater/pkg/trigger"
)

// execute runs the CLI with environ as the whole environment and returns stdout.
func execute(t *testing.T, environ map[string]string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(environ)
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := root.ExecuteContext(ctx)
	return stdout.String(), err
}

// closedPort returns a local port with nothing listening on it.
func closedPort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return strconv.Itoa(port)
}

func TestSend_DryRun(t *testing.T) {
	t.Parallel()

	out, err := execute(t, map[string]string{},
		"send", "--dry-run",
		"--from", "me@example.com",
		"--to", "a@example.com, b@example.com",
		"--subject", "Weekly",
		"--body", "hello",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Subject: Weekly")
	assert.Contains(t, out, "a@example.com")
	assert.Contains(t, out, "b@example.com")
	assert.Contains(t, out, "hello")
}

func TestSend_DryRunAttachment(t *testing.T) {
	t.Parallel()

	attachment := writeFile(t, "report.csv", "a,b\n1,2\n")
	out, err := execute(t, map[string]string{},
		"send", "--dry-run",
		"--from", "me@example.com",
		"--to", "a@example.com",
		"--body", "see attached",
		"--attach", attachment,
	)
	require.NoError(t, err)
	assert.Contains(t, out, `filename="report.csv"`)
	assert.Contains(t, out, "Subject: Scheduled Email")
}

func TestSend_Errors(t *testing.T) {
	t.Parallel()

	valid := []string{"send", "--from", "me@example.com", "--to", "a@example.com", "--body", "x"}

	tests := []struct {
		name string
		args []string
		env  map[string]string
		want error
	}{
		{"no schedule", valid, nil, trigger.ErrNoPolicy},
		{"two schedules", append(valid, "--every", "60", "--daily", "09:00"), nil, trigger.ErrAmbiguousPolicy},
		{"bad interval", append(valid, "--every=-5"), nil, trigger.ErrInvalidInterval},
		{"bad date", append(valid, "--at-date", "2026-13-40"), nil, trigger.ErrInvalidTime},
		{"bad cron", append(valid, "--cron", "every tuesday"), nil, trigger.ErrInvalidCron},
		{"time without date", append(valid, "--at-time", "10:00"), nil, trigger.ErrInvalidTime},
		{"no recipients", []string{"send", "--from", "me@example.com", "--to", " , ", "--every", "5"}, nil, mailer.ErrNoRecipient},
		{"bad recipient", []string{"send", "--from", "me@example.com", "--to", "a@example.com,nope", "--every", "5"}, nil, mailer.ErrInvalidRecipient},
		{"bad sender", []string{"send", "--from", "me", "--to", "a@example.com", "--every", "5"}, nil, mailer.ErrInvalidSender},
		{"missing attachment", append(valid, "--dry-run", "--attach", "/nonexistent/file.log"), nil, mailer.ErrAttachment},
		{"resend without key", append(valid, "--every", "5"), map[string]string{"SENDLATER_TRANSPORT": "resend"}, errNoResendKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := tt.env
			if env == nil {
				env = map[string]string{}
			}
			_, err := execute(t, env, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSend_FailedSendIsReported(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"SMTP_HOST":    "127.0.0.1",
		"SMTP_PORT":    closedPort(t),
		"SMTP_TIMEOUT": "2s",
	}
	out, err := execute(t, env,
		"send",
		"--from", "me@example.com",
		"--to", "a@example.com",
		"--body", "x",
		"--at-date", "2000-01-01",
	)
	require.NoError(t, err, "a failed send is not fatal")
	assert.Contains(t, out, "send #1 failed")
	assert.Contains(t, out, "network")
}

func TestSend_CheckFailsFast(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"SMTP_HOST":    "127.0.0.1",
		"SMTP_PORT":    closedPort(t),
		"SMTP_TIMEOUT": "2s",
	}
	out, err := execute(t, env,
		"send", "--check",
		"--from", "me@example.com",
		"--to", "a@example.com",
		"--body", "x",
		"--every", "60",
	)
	require.Error(t, err)
	assert.NotContains(t, out, "send #1")
}

func TestSend_CancelledContext(t *testing.T) {
	t.Parallel()

	root := newRootCmd(map[string]string{})
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs([]string{
		"send",
		"--from", "me@example.com",
		"--to", "a@example.com",
		"--body", "x",
		"--every", "3600",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, root.ExecuteContext(ctx))
	assert.Equal(t, "cancelled\n", stdout.String())
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, map[string]string{"SENDLATER_LOG_LEVEL": "bogus"}, "version")
	require.NoError(t, err, "version ignores configuration")
	assert.Contains(t, out, "sendlater ")
}
