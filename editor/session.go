package editor

import (
	"sync"
	"time"

	"tikz-editor/template"
)

// ExportFilename is the fixed name the exported source is offered under.
const ExportFilename = "diagram.tex"

type Session struct {
	ID        string
	CreatedAt time.Time

	templates *template.Manager

	mu         sync.Mutex
	state      State
	lastActive time.Time

	subMu     sync.Mutex
	subChan   chan State
	kickChan  chan struct{}
	connected bool

	done chan struct{}
}

// Info is the wire shape of a session in listing and detail responses.
type Info struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
	State      State     `json:"state"`
}

func (s *Session) Info() Info {
	s.mu.Lock()
	state := s.state
	last := s.lastActive
	s.mu.Unlock()

	s.subMu.Lock()
	connected := s.connected
	s.subMu.Unlock()

	return Info{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		LastActive: last,
		Connected:  connected,
		State:      state,
	}
}

// SelectTemplate replaces the source with the named template's text. An
// unknown name selects the empty string. Defects and preview are untouched
// either way; the user renders when ready.
func (s *Session) SelectTemplate(name string) State {
	source, _ := s.templates.Get(name)
	return s.apply(func(st State) State { return st.WithSource(source) })
}

// SetSource replaces the source with text typed by the user. Nothing is
// re-rendered until asked for.
func (s *Session) SetSource(text string) State {
	return s.apply(func(st State) State { return st.WithSource(text) })
}

// Render runs the syntax check and, when it passes, the preview synthesis.
func (s *Session) Render() State {
	return s.apply(State.Rendered)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Export returns the download artifact: the fixed filename and the exact
// current source text, untransformed. No state change.
func (s *Session) Export() (filename, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportFilename, s.state.Source
}

// apply runs a transition under the state lock and hands the result to the
// subscriber, if any.
func (s *Session) apply(transition func(State) State) State {
	s.mu.Lock()
	s.state = transition(s.state)
	s.lastActive = time.Now()
	next := s.state
	s.mu.Unlock()

	s.push(next)
	return next
}

// Subscribe registers ch to receive every state change. If a previous
// client is attached it is kicked: its kick channel is closed so ws.go can
// detect the displacement and drop that connection. Returns a kick channel
// that will be closed if this client is itself later displaced.
func (s *Session) Subscribe(ch chan State) <-chan struct{} {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	// Displace any existing subscriber.
	if s.kickChan != nil {
		close(s.kickChan)
	}
	kick := make(chan struct{})
	s.kickChan = kick
	s.subChan = ch
	s.connected = true
	return kick
}

// Unsubscribe is called when a connection ends. It only detaches if ch is
// still the current subscriber (guards against a displaced connection
// detaching the one that displaced it). It always closes ch so the pump
// goroutine exits.
func (s *Session) Unsubscribe(ch chan State) {
	s.subMu.Lock()
	if s.subChan == ch {
		s.subChan = nil
		s.kickChan = nil
		s.connected = false
	}
	s.subMu.Unlock()
	close(ch)
}

// push sends without blocking; each push carries the full state, and the
// attach path replays the current state, so a slow client converges.
func (s *Session) push(st State) {
	s.subMu.Lock()
	if s.subChan != nil {
		select {
		case s.subChan <- st:
		default:
		}
	}
	s.subMu.Unlock()
}

// Done returns a channel that is closed when the session is shut down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
