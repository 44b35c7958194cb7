package mailer

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Frontmatter is the optional YAML header of a markdown body.
//
//	---
//	subject: Nightly report
//	---
//	Hello **team**, the log is attached.
type Frontmatter struct {
	Subject string `yaml:"subject"`
}

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))

	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// emailPolicy allows the formatting goldmark emits for prose and drops everything else.
func emailPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.NewPolicy()
		policy.AllowStandardURLs()
		policy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("align").OnElements("th", "td")
		policy.RequireNoFollowOnLinks(true)
	})
	return policy
}

// SplitFrontmatter separates an optional YAML frontmatter block from body.
// A body that does not start with "---" is returned unchanged with empty metadata.
func SplitFrontmatter(body string) (Frontmatter, string, error) {
	var meta Frontmatter
	content := []byte(body)
	delimiter := []byte("---")

	if !bytes.HasPrefix(content, delimiter) {
		return meta, body, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return meta, "", fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	header := rest[:end]
	text := rest[end+len(delimiter):]
	text = bytes.TrimPrefix(text, []byte("\r"))
	text = bytes.TrimPrefix(text, []byte("\n"))

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &meta); err != nil {
			return meta, "", fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	return meta, string(text), nil
}

// RenderHTML converts a markdown body to sanitized HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return emailPolicy().Sanitize(buf.String()), nil
}
