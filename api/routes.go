package api

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tikz-editor/editor"
	"tikz-editor/template"
)

func RegisterRoutes(editors *editor.Manager, templates *template.Manager, logger *slog.Logger, staticFS fs.FS) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{editors: editors, templates: templates, logger: logger}

	// Editor sessions
	r.Get("/api/editors", h.listEditors)
	r.Post("/api/editors", h.createEditor)
	r.Get("/api/editors/{id}", h.getEditor)
	r.Delete("/api/editors/{id}", h.closeEditor)

	// Editor operations
	r.Post("/api/editors/{id}/template", h.selectTemplate)
	r.Put("/api/editors/{id}/source", h.editSource)
	r.Post("/api/editors/{id}/render", h.renderPreview)
	r.Get("/api/editors/{id}/export", h.exportSource)
	r.Get("/api/editors/{id}/highlight", h.highlightSource)

	// WebSocket state subscription
	r.Get("/api/editors/{id}/ws", h.handleWS)

	// Templates API
	r.Get("/api/templates", h.getTemplates)
	r.Put("/api/templates", h.putTemplate)

	// Rendered usage guide
	r.Get("/help", h.helpPage)

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// In dev mode staticFS is already rooted at the static directory, so Sub
	// returns a wrapper unconditionally (no error) but the sub-FS would look
	// for static/static/* which doesn't exist. Probe index.html to detect this.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Serve the editor page by reading from the FS directly.
	// Using http.FileServer with r.URL.Path ending in "index.html" triggers
	// Go's built-in redirect to "./" — avoid that by reading the file manually.
	r.Get("/", serveFile(staticSub, "index.html"))

	// Static assets — use standard file server
	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	editors   *editor.Manager
	templates *template.Manager
	logger    *slog.Logger
}
