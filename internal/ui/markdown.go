package ui

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is configured for safe output: raw HTML in notes is escaped
// (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
	),
)

// renderMarkdown converts free-text notes to HTML for the detail views.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	err := mdRenderer.Convert([]byte(md), &buf)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
