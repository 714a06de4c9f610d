package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot persists the snapshot as a single JSON file on disk.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot backed by the file at path. The file and its
// directory need not exist yet; they are created on the first Save.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load reads and decodes the snapshot file.
func (s *FileSlot) Load() (Map, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding template snapshot %s: %w", s.path, err)
	}
	if m == nil {
		// A file containing JSON null decodes to a nil map.
		m = Map{}
	}
	return m, nil
}

// Save writes the snapshot atomically: a temp file in the same directory,
// then a rename over the real path.
func (s *FileSlot) Save(m Map) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Close is a no-op; the slot holds no open handles between calls.
func (s *FileSlot) Close() error {
	return nil
}
