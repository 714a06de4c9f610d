package template

import (
	"encoding/json"
	"sync"
)

// MemorySlot keeps the snapshot in process memory. It backs tests and the
// "memory" storage backend, where saved templates last only as long as the
// process. The snapshot is held serialized so the slot behaves exactly
// like its durable siblings, corrupt bytes included.
type MemorySlot struct {
	mu       sync.Mutex
	snapshot []byte
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Load decodes the held snapshot.
func (s *MemorySlot) Load() (Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	var m Map
	if err := json.Unmarshal(s.snapshot, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// Save serializes and holds the snapshot.
func (s *MemorySlot) Save(m Map) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = data
	s.mu.Unlock()
	return nil
}

// Close is a no-op.
func (s *MemorySlot) Close() error {
	return nil
}

// SetRaw replaces the held snapshot with arbitrary bytes. Tests use it to
// plant corrupt snapshots.
func (s *MemorySlot) SetRaw(data []byte) {
	s.mu.Lock()
	s.snapshot = data
	s.mu.Unlock()
}
