package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/pttracker/pttracker/internal/ctxkeys"
	"github.com/pttracker/pttracker/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed views/*.html
var viewsFS embed.FS

var titleCaser = cases.Title(language.English)

var funcMap = template.FuncMap{
	"markdown": renderMarkdown,
	"title": func(s string) string {
		return titleCaser.String(s)
	},
	// pages yields 1..n for pagination links
	"pages": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

var pageNames = []string{
	"signin.html",
	"home.html",
	"new_client.html",
	"client.html",
	"edit_client.html",
	"edit_goal.html",
	"not_found.html",
}

var templates = parseTemplates()

func parseTemplates() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		parsed[name] = template.Must(
			template.New("layout.html").Funcs(funcMap).ParseFS(viewsFS, "views/layout.html", "views/"+name),
		)
	}
	return parsed
}

// Page is the data every view receives. Handlers fill Data and Errors;
// Render fills the rest from the request context.
type Page struct {
	Title     string
	AppName   string
	Path      string
	Coach     *model.Coach
	CSRFToken string
	Errors    []string
	Data      any
}

// Render executes the named view inside the layout. Output is buffered so a
// template failure never leaks a half-written page.
func Render(w http.ResponseWriter, r *http.Request, name string, page Page) error {
	tpl, ok := templates[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		page.AppName = cfg.AppName
	}
	if page.Coach == nil {
		page.Coach = ctxkeys.Coach(r.Context())
	}
	page.CSRFToken = ctxkeys.CSRFToken(r.Context())
	page.Path = ctxkeys.URLPath(r.Context())

	var buf bytes.Buffer
	err := tpl.ExecuteTemplate(&buf, "layout.html", page)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	if err != nil {
		slog.Error("render write failed", "view", name, "error", err)
	}
	return nil
}
