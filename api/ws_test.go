package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"tikz-editor/api"
	"tikz-editor/editor"
	"tikz-editor/template"
	"tikz-editor/tikz"
)

type wsMsg struct {
	Type   string        `json:"type"`
	Name   string        `json:"name,omitempty"`
	Source string        `json:"source,omitempty"`
	State  *editor.State `json:"state,omitempty"`
}

func newWSTestServer(t *testing.T) (*httptest.Server, *editor.Manager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	templates := template.NewManager(template.NewMemorySlot(), logger)
	editors := editor.NewManager(templates)
	staticFS := fstest.MapFS{
		"index.html": {Data: []byte("<html></html>")},
	}
	srv := httptest.NewServer(api.RegisterRoutes(editors, templates, logger, staticFS))
	return srv, editors
}

func dialWS(t *testing.T, srv *httptest.Server, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	return websocket.DefaultDialer.Dial(wsURL, nil)
}

// readState reads the next message and requires it to be a state push.
func readState(t *testing.T, conn *websocket.Conn) editor.State {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMsg
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg.Type != "state" || msg.State == nil {
		t.Fatalf("expected a state message, got %+v", msg)
	}
	return *msg.State
}

func TestWSNotFound(t *testing.T) {
	srv, _ := newWSTestServer(t)
	defer srv.Close()

	_, resp, err := dialWS(t, srv, "/api/editors/nonexistent/ws")
	if err == nil {
		t.Fatal("expected error connecting to nonexistent editor")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}

func TestWSStateReplay(t *testing.T) {
	srv, editors := newWSTestServer(t)
	defer srv.Close()

	s := editors.Create()
	s.SetSource("typed before connecting")

	conn, _, err := dialWS(t, srv, "/api/editors/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()

	state := readState(t, conn)
	if state.Source != "typed before connecting" {
		t.Fatalf("replayed state mismatch: %q", state.Source)
	}
}

func TestWSOperations(t *testing.T) {
	srv, editors := newWSTestServer(t)
	defer srv.Close()

	s := editors.Create()
	conn, _, err := dialWS(t, srv, "/api/editors/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()

	// Initial replay of the empty state.
	if state := readState(t, conn); state.Source != "" {
		t.Fatalf("expected empty initial state, got %q", state.Source)
	}

	if err := conn.WriteJSON(wsMsg{Type: "template", Name: "Bar Graph"}); err != nil {
		t.Fatalf("WriteJSON template: %v", err)
	}
	if state := readState(t, conn); state.Source != template.Defaults()["Bar Graph"] {
		t.Fatalf("template selection not reflected: %q", state.Source)
	}

	if err := conn.WriteJSON(wsMsg{Type: "render"}); err != nil {
		t.Fatalf("WriteJSON render: %v", err)
	}
	if state := readState(t, conn); state.Preview != tikz.BarGraphFragment {
		t.Fatal("render not reflected in pushed state")
	}

	if err := conn.WriteJSON(wsMsg{Type: "source", Source: "overtyped"}); err != nil {
		t.Fatalf("WriteJSON source: %v", err)
	}
	if state := readState(t, conn); state.Source != "overtyped" {
		t.Fatalf("source edit not reflected: %q", state.Source)
	}
}

func TestWSPushOnDirectTransition(t *testing.T) {
	srv, editors := newWSTestServer(t)
	defer srv.Close()

	s := editors.Create()
	conn, _, err := dialWS(t, srv, "/api/editors/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()
	readState(t, conn) // initial replay

	// A transition driven outside the socket (REST handler, another caller)
	// still reaches the subscriber.
	s.SetSource("changed behind the socket")
	if state := readState(t, conn); state.Source != "changed behind the socket" {
		t.Fatalf("direct transition not pushed: %q", state.Source)
	}
}

func TestWSClosedOnSessionClose(t *testing.T) {
	srv, editors := newWSTestServer(t)
	defer srv.Close()

	s := editors.Create()
	conn, _, err := dialWS(t, srv, "/api/editors/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()
	readState(t, conn) // initial replay

	editors.Close(s.ID)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMsg
	err = conn.ReadJSON(&msg)
	if err != nil {
		// Connection was closed without a JSON message — acceptable.
		return
	}
	if msg.Type != "closed" {
		t.Fatalf("expected 'closed' message, got %q", msg.Type)
	}
}

func TestWSClientDisplacement(t *testing.T) {
	srv, editors := newWSTestServer(t)
	defer srv.Close()

	s := editors.Create()
	conn1, _, err := dialWS(t, srv, "/api/editors/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("conn1 dial: %v", err)
	}
	defer conn1.Close()
	readState(t, conn1) // initial replay

	// Second client displaces the first.
	conn2, _, err := dialWS(t, srv, "/api/editors/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("conn2 dial: %v", err)
	}
	defer conn2.Close()
	readState(t, conn2) // conn2 gets its own replay

	// conn1 should be closed by the server without a "closed" message.
	conn1.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMsg
	err = conn1.ReadJSON(&msg)
	// We expect an error (connection closed). A stray message is also acceptable.
	if err == nil {
		t.Logf("conn1 received message after displacement: %q (not a failure)", msg.Type)
	}

	// The surviving connection still works.
	if err := conn2.WriteJSON(wsMsg{Type: "source", Source: "from conn2"}); err != nil {
		t.Fatalf("conn2 WriteJSON: %v", err)
	}
	if state := readState(t, conn2); state.Source != "from conn2" {
		t.Fatalf("conn2 operation not reflected: %q", state.Source)
	}
}
