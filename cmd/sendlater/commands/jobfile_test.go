package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sendlater/pkg/trigger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadJobFile(t *testing.T) {
	t.Parallel()

	t.Run("string recipients and interval", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "job.yaml", `
from: me@example.com
to: "a@example.com, , b@example.com"
subject: Nightly log
body: |
  Log attached.
attach: /var/log/app.log
every: 1h
`)
		jf, err := loadJobFile(path)
		require.NoError(t, err)

		job := jf.job()
		assert.Equal(t, "me@example.com", job.Sender)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, job.Recipients)
		assert.Equal(t, "Nightly log", job.Subject)
		assert.Equal(t, "Log attached.\n", job.Body)
		assert.Equal(t, "/var/log/app.log", job.AttachmentPath)
		assert.Equal(t, trigger.Spec{Every: "1h"}, jf.Spec)
	})

	t.Run("list recipients and date", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "job.yaml", `
from: me@example.com
to:
  - a@example.com
  - " b@example.com "
markdown: true
at_date: "2026-12-24"
at_time: "18:00"
timezone: Europe/Berlin
`)
		jf, err := loadJobFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, jf.job().Recipients)
		assert.True(t, jf.Markdown)
		assert.Equal(t, "2026-12-24", jf.AtDate)
		assert.Equal(t, "18:00", jf.AtTime)
		assert.Equal(t, "Europe/Berlin", jf.Timezone)
	})

	t.Run("body file", func(t *testing.T) {
		t.Parallel()

		body := writeFile(t, "body.md", "# Report\n")
		path := writeFile(t, "job.yaml", "from: me@example.com\nto: a@example.com\nbody_file: "+body+"\ndaily: \"09:30\"\n")

		jf, err := loadJobFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Report\n", jf.Body)
		assert.Equal(t, "09:30", jf.Daily)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "job.yaml", "from: me@example.com\ncc: x@example.com\n")
		_, err := loadJobFile(path)
		require.Error(t, err)
	})

	t.Run("bad recipients type", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "job.yaml", "to:\n  a: b\n")
		_, err := loadJobFile(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadJobFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
