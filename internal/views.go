package internal

import (
	"context"
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var views = template.Must(template.New("panel").Funcs(template.FuncMap{
	"when": formatTime,
}).ParseFS(templateFS, "templates/*.html"))

// view renders a named template as a Component.
type view struct {
	name string
	data any
}

func (v view) Render(_ context.Context, w io.Writer) error {
	return views.ExecuteTemplate(w, v.name, v.data)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05 MST")
}
