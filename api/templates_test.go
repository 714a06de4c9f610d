package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tikz-editor/template"
	"tikz-editor/tikz"
)

func getTemplates(t *testing.T, srv *httptest.Server) template.Map {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/templates")
	if err != nil {
		t.Fatalf("GET /api/templates: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var m template.Map
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decoding templates: %v", err)
	}
	return m
}

func putTemplate(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/templates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/templates: %v", err)
	}
	return resp
}

func TestGetTemplatesDefaults(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	m := getTemplates(t, srv)
	if len(m) != 3 {
		t.Fatalf("expected the 3 built-in templates, got %v", m.Names())
	}
	if _, ok := m["Bar Graph"]; !ok {
		t.Fatal("built-in Bar Graph missing")
	}
}

func TestPutTemplate(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := putTemplate(t, srv, `{"name":"Mine","source":"custom source"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated template.Map
	json.NewDecoder(resp.Body).Decode(&updated)
	if updated["Mine"] != "custom source" {
		t.Fatalf("response mapping misses the new template: %v", updated.Names())
	}

	// Subsequent GET returns the new entry alongside the defaults.
	m := getTemplates(t, srv)
	if m["Mine"] != "custom source" || len(m) != 4 {
		t.Fatalf("unexpected mapping after save: %v", m.Names())
	}
}

func TestPutTemplateOverwrite(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := putTemplate(t, srv, `{"name":"Bar Graph","source":"replaced"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	m := getTemplates(t, srv)
	if m["Bar Graph"] != "replaced" {
		t.Fatalf("overwrite lost: %q", m["Bar Graph"])
	}
	if len(m) != 3 {
		t.Fatalf("overwrite should not grow the mapping: %v", m.Names())
	}
}

func TestPutTemplateEmptyName(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := putTemplate(t, srv, `{"name":"","source":"x"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPutTemplateBadJSON(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := putTemplate(t, srv, "not-json")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSavedTemplateDrivesEditor(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	source := `\begin{tikzpicture} my bar sketch \end{tikzpicture}`
	resp := putTemplate(t, srv, `{"name":"My Bars","source":"`+
		strings.ReplaceAll(source, `\`, `\\`)+`"}`)
	resp.Body.Close()

	id := createEditor(t, srv)
	doJSON(t, http.MethodPost, srv.URL+"/api/editors/"+id+"/template", `{"name":"My Bars"}`)
	state, _ := doJSON(t, http.MethodPost, srv.URL+"/api/editors/"+id+"/render", "")

	if len(state.Defects) != 0 {
		t.Fatalf("saved template rendered with defects: %v", state.Defects)
	}
	if state.Preview != tikz.BarGraphFragment {
		t.Fatal("expected the bar-graph fragment for a source containing \"bar\"")
	}
}
