package mailer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{name: "two addresses", field: "a@x.com,b@x.com", want: []string{"a@x.com", "b@x.com"}},
		{name: "spaces trimmed", field: " a@x.com ,  b@x.com ", want: []string{"a@x.com", "b@x.com"}},
		{name: "empty entries dropped", field: "a@x.com,,b@x.com,", want: []string{"a@x.com", "b@x.com"}},
		{name: "order kept", field: "z@x.com, a@x.com", want: []string{"z@x.com", "a@x.com"}},
		{name: "empty field", field: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Recipients(tt.field))
		})
	}
}

func TestNewJob(t *testing.T) {
	t.Parallel()

	job := NewJob(" me@example.com ", "a@x.com, b@x.com", "hello")

	_, err := uuid.Parse(job.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", job.Sender)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, job.Recipients)
	assert.Equal(t, "hello", job.Body)
	require.NoError(t, job.Validate())

	assert.NotEqual(t, job.ID, NewJob("me@example.com", "a@x.com", "").ID)
}

func TestJob_Validate(t *testing.T) {
	t.Parallel()

	t.Run("reports every invalid recipient", func(t *testing.T) {
		t.Parallel()

		job := Job{Sender: "me@example.com", Recipients: []string{"bad", "a@x.com", "worse"}}
		err := job.Validate()
		require.ErrorIs(t, err, ErrInvalidRecipient)
		assert.Contains(t, err.Error(), `"bad"`)
		assert.Contains(t, err.Error(), `"worse"`)
	})

	t.Run("empty sender", func(t *testing.T) {
		t.Parallel()

		job := Job{Recipients: []string{"a@x.com"}}
		require.ErrorIs(t, job.Validate(), ErrInvalidSender)
	})

	t.Run("empty recipient list", func(t *testing.T) {
		t.Parallel()

		job := Job{Sender: "me@example.com", Recipients: []string{}}
		require.ErrorIs(t, job.Validate(), ErrNoRecipient)
	})
}

func TestJob_Clone(t *testing.T) {
	t.Parallel()

	job := Job{Recipients: []string{"a@x.com"}}
	clone := job.Clone()
	clone.Recipients[0] = "b@x.com"

	assert.Equal(t, "a@x.com", job.Recipients[0])
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com", Recipient("", "a@x.com"))
	assert.Equal(t, "Ann <a@x.com>", Recipient("Ann", "a@x.com"))
}
