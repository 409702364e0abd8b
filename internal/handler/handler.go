package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pttracker/pttracker/internal/ui"
)

// notFound is the catch-all failure response. Absent rows, unowned rows, and
// unexpected internal errors deliberately share the same generic 404 body;
// the full error detail is only logged server-side.
func notFound(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	w.WriteHeader(http.StatusNotFound)
	renderErr := ui.Render(w, r, "not_found.html", ui.Page{Title: "Not Found"})
	if renderErr != nil {
		slog.Error("render failed", "error", renderErr)
	}
}

// NotFound handles unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	notFound(w, r, nil)
}

// render executes a view, funneling template failures into the catch-all.
func render(w http.ResponseWriter, r *http.Request, name string, page ui.Page) {
	err := ui.Render(w, r, name, page)
	if err != nil {
		notFound(w, r, err)
	}
}

// pathID parses a numeric path segment such as {client_id}.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// queryPage reads the ?page query parameter, defaulting to 1.
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
