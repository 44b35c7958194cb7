package resend

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sendlater/pkg/mailer"
)

func TestSender_From(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config
		job    string
		want   string
	}{
		{name: "job sender wins", config: Config{SenderEmail: "team@example.com"}, job: "me@example.com", want: "me@example.com"},
		{name: "forced sender", config: Config{SenderEmail: "team@example.com", SenderName: "Team", ForceSender: true}, job: "me@example.com", want: "Team <team@example.com>"},
		{name: "fallback sender", config: Config{SenderEmail: "team@example.com"}, job: "", want: "team@example.com"},
		{name: "force without configured sender", config: Config{ForceSender: true}, job: "me@example.com", want: "me@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, New(tt.config).from(tt.job))
		})
	}
}

func TestConvertAttachments(t *testing.T) {
	t.Parallel()

	got := convertAttachments([]mailer.Attachment{{
		Filename:    "app.log",
		ContentType: "text/plain",
		Content:     []byte("x"),
	}})

	require.Len(t, got, 1)
	assert.Equal(t, "app.log", got[0].Filename)
	assert.Equal(t, "text/plain", got[0].ContentType)
	assert.Equal(t, []byte("x"), got[0].Content)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, classify(&net.OpError{Op: "dial", Err: errors.New("refused")}), mailer.ErrNetwork)
	require.ErrorIs(t, classify(errors.New("[ERROR]: API key is invalid")), mailer.ErrAuthFailed)
	require.ErrorIs(t, classify(errors.New("[ERROR]: Invalid `to` field")), mailer.ErrInvalidRecipient)
	require.ErrorIs(t, classify(errors.New("[ERROR]: internal")), mailer.ErrSendFailed)
}
