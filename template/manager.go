package template

import (
	"errors"
	"log/slog"
	"sync"
)

// Manager owns the in-memory template mapping and the slot it persists to.
// All reads hand out copies; the mapping inside is replaced wholesale on
// change, never mutated.
type Manager struct {
	mu        sync.RWMutex
	slot      Slot
	logger    *slog.Logger
	templates Map
}

// NewManager loads the snapshot from slot, falling back to the built-in
// defaults when the slot holds no snapshot or an unreadable one. It never
// fails: a corrupt snapshot is treated the same as a missing one. The
// fallback is not written back; only an explicit save persists anything. A
// readable snapshot is taken at face value even when it binds nothing.
func NewManager(slot Slot, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{slot: slot, logger: logger}

	snap, err := slot.Load()
	switch {
	case err == nil:
		m.templates = snap
	case errors.Is(err, ErrNoSnapshot):
		m.templates = Defaults()
	default:
		logger.Warn("template snapshot unreadable, using built-in defaults", "error", err)
		m.templates = Defaults()
	}
	return m
}

// All returns a copy of the current mapping.
func (m *Manager) All() Map {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.templates.Clone()
}

// Get returns the source bound to name.
func (m *Manager) Get(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	source, ok := m.templates[name]
	return source, ok
}

// Save binds name to source and persists the resulting mapping. A failed
// write is logged and otherwise swallowed: the in-memory mapping stays
// authoritative and the caller sees the updated state. Returns a copy of
// the new mapping.
func (m *Manager) Save(name, source string) Map {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.templates = m.templates.Put(name, source)
	m.persistLocked()
	return m.templates.Clone()
}

// persistLocked writes the snapshot. Saving an empty mapping is a no-op so
// a transient empty state can never clobber the only copy of the defaults.
// Caller must hold m.mu.
func (m *Manager) persistLocked() {
	if len(m.templates) == 0 {
		return
	}
	if err := m.slot.Save(m.templates); err != nil {
		m.logger.Warn("persisting template snapshot failed, in-memory state kept", "error", err)
	}
}
