package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"tikz-editor/editor"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type   string        `json:"type"`
	Name   string        `json:"name,omitempty"`
	Source string        `json:"source,omitempty"`
	State  *editor.State `json:"state,omitempty"`
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, ok := h.editors.Get(id)
	if !ok {
		http.Error(w, "editor session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// Serialise all WebSocket writes — gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg wsMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	stateChan := make(chan editor.State, 16)
	kick := s.Subscribe(stateChan) // kicks any prior subscriber
	defer s.Unsubscribe(stateChan) // closes stateChan + detaches if still owner

	// Replay the current state so a fresh or reconnecting client never
	// starts blank.
	current := s.State()
	if err := writeMsg(wsMessage{Type: "state", State: &current}); err != nil {
		h.logger.Error("websocket state replay failed", "error", err)
		return
	}

	// Goroutine: pump state changes to the client.
	// Exits when Unsubscribe closes stateChan.
	go func() {
		for st := range stateChan {
			msg := wsMessage{Type: "state", State: &st}
			if err := writeMsg(msg); err != nil {
				return
			}
		}
	}()

	// Goroutine: watch for session close or displacement and close the
	// connection so ReadJSON below unblocks immediately.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			writeMsg(wsMessage{Type: "closed"}) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced by a newer connection — close without a "closed"
			// message so the client shows the disconnected overlay rather
			// than session-ended.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	// Main loop: read client operations. Every transition is answered by a
	// state push through the subscription.
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			// Client disconnected, or conn was closed by the done-watcher
			// above. Either way the session keeps its state.
			return
		}

		switch msg.Type {
		case "template":
			s.SelectTemplate(msg.Name)
		case "source":
			s.SetSource(msg.Source)
		case "render":
			s.Render()
		}
	}
}
