package api

import (
	"encoding/json"
	"net/http"
)

func (h *handler) getTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.templates.All())
}

func (h *handler) putTemplate(w http.ResponseWriter, r *http.Request) {
	// The name travels in the body rather than the URL: template names are
	// user-facing labels with spaces in them.
	var req struct {
		Name   string `json:"name"`
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// A failed snapshot write is logged inside the manager; the updated
	// in-memory mapping is authoritative either way, so this still answers 200.
	writeJSON(w, http.StatusOK, h.templates.Save(req.Name, req.Source))
}
