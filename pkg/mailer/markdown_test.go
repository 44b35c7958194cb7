package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantSubject string
		wantText    string
		wantErr     error
	}{
		{
			name:     "no frontmatter",
			body:     "Hello **world**",
			wantText: "Hello **world**",
		},
		{
			name:        "subject",
			body:        "---\nsubject: Weekly digest\n---\nBody text",
			wantSubject: "Weekly digest",
			wantText:    "Body text",
		},
		{
			name:        "crlf line endings",
			body:        "---\r\nsubject: Weekly\r\n---\r\nBody",
			wantSubject: "Weekly",
			wantText:    "Body",
		},
		{
			name:     "empty header",
			body:     "---\n---\nBody",
			wantText: "Body",
		},
		{
			name:    "unclosed",
			body:    "---\nsubject: x\nBody",
			wantErr: ErrInvalidFrontmatter,
		},
		{
			name:    "invalid yaml",
			body:    "---\nsubject: [unterminated\n---\nBody",
			wantErr: ErrInvalidFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, text, err := SplitFrontmatter(tt.body)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, meta.Subject)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	t.Run("formatting", func(t *testing.T) {
		t.Parallel()

		html, err := RenderHTML("# Report\n\n- one\n- two\n\n[details](https://example.com)")
		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Report</h1>")
		assert.Contains(t, html, "<li>one</li>")
		assert.Contains(t, html, `href="https://example.com"`)
		assert.Contains(t, html, `rel="nofollow"`)
	})

	t.Run("tables", func(t *testing.T) {
		t.Parallel()

		html, err := RenderHTML("| a | b |\n|---|---|\n| 1 | 2 |\n")
		require.NoError(t, err)
		assert.Contains(t, html, "<table>")
		assert.Contains(t, html, "<td>1</td>")
	})

	t.Run("raw html is stripped", func(t *testing.T) {
		t.Parallel()

		html, err := RenderHTML("[x](javascript:alert(1)) <img src=x onerror=alert(1)>")
		require.NoError(t, err)
		assert.NotContains(t, html, "javascript:")
		assert.NotContains(t, html, "onerror")
		assert.NotContains(t, html, "<script")
	})
}
