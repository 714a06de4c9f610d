package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/go-chi/chi/v5"

	"tikz-editor/editor"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// lookup resolves the {id} route parameter to a session, answering 404
// itself when the session is unknown.
func (h *handler) lookup(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	s, ok := h.editors.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "editor session not found", http.StatusNotFound)
	}
	return s, ok
}

func (h *handler) listEditors(w http.ResponseWriter, r *http.Request) {
	sessions := h.editors.List()
	infos := make([]editor.Info, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.Info())
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *handler) createEditor(w http.ResponseWriter, r *http.Request) {
	s := h.editors.Create()
	writeJSON(w, http.StatusCreated, s.Info())
}

func (h *handler) getEditor(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Info())
}

func (h *handler) closeEditor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.editors.Close(id); err != nil {
		if errors.Is(err, editor.ErrNotFound) {
			http.Error(w, "editor session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to close editor session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) selectTemplate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// An unknown name is not an error: it selects the empty source.
	writeJSON(w, http.StatusOK, s.SelectTemplate(req.Name))
}

func (h *handler) editSource(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.SetSource(req.Source))
}

func (h *handler) renderPreview(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Render())
}

func (h *handler) exportSource(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	filename, content := s.Export()
	w.Header().Set("Content-Type", "application/x-tex")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)
}

func (h *handler) highlightSource(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	source := s.State().Source
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, source, "latex", "html", "monokai"); err != nil {
		h.logger.Warn("syntax highlight failed", "error", err)
		buf.Reset()
		buf.WriteString("<pre>" + html.EscapeString(source) + "</pre>")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
