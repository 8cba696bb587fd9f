// Package page wraps a rendered diff fragment in a standalone HTML document.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/brianndofor/diffhtml/internal/diff"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

type Options struct {
	Title string
	// Intro is markdown shown above the diff. Raw HTML in it is dropped.
	Intro string
	// Files, when set, adds a summary table before the diff.
	Files []diff.FileReport
}

type pageData struct {
	Title    string
	Intro    template.HTML
	Files    []diff.FileReport
	Added    int
	Removed  int
	Fragment template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body style="margin:20px; font-family:sans-serif;">
<h1 style="font-size:20px;">{{.Title}}</h1>
{{- if .Intro}}
<div class="intro">{{.Intro}}</div>
{{- end}}
{{- if .Files}}
<table class="summary" style="margin-bottom:10px; font-size:12px; font-family:monospace;">
{{- range .Files}}
<tr><td>{{.Name}}</td><td style="color:#393;">+{{.Added}}</td><td style="color:#c33;">-{{.Removed}}</td><td>{{.Status}}</td></tr>
{{- end}}
<tr><td>{{len .Files}} files</td><td style="color:#393;">+{{.Added}}</td><td style="color:#c33;">-{{.Removed}}</td><td></td></tr>
</table>
{{- end}}
{{.Fragment}}
</body>
</html>
`))

// Render writes the full document for fragment, which must be the output of
// the diff converter.
func Render(w io.Writer, fragment string, opts Options) error {
	data := pageData{
		Title:    opts.Title,
		Files:    opts.Files,
		Fragment: template.HTML(fragment),
	}
	for _, f := range opts.Files {
		data.Added += f.Added
		data.Removed += f.Removed
	}
	if opts.Intro != "" {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(opts.Intro), &buf); err != nil {
			return fmt.Errorf("failed to render intro: %w", err)
		}
		data.Intro = template.HTML(buf.String())
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
