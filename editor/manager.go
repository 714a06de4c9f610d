package editor

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tikz-editor/template"
)

var ErrNotFound = errors.New("editor session not found")

// Manager owns the live editor sessions. All sessions read templates from
// the one shared template manager; their states are independent.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	templates *template.Manager
}

func NewManager(templates *template.Manager) *Manager {
	return &Manager{sessions: make(map[string]*Session), templates: templates}
}

// Create starts a new session in the initial state.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		templates:  m.templates,
		state:      NewState(),
		lastActive: now,
		done:       make(chan struct{}),
	}
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// List returns the sessions ordered by creation time, oldest first, so
// listings are stable across refreshes.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Close shuts a session down and forgets it. An attached client observes
// the closed Done channel and disconnects.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	close(s.done)
	delete(m.sessions, id)
	return nil
}
