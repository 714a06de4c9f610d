package template

import "errors"

// ErrNoSnapshot reports that a slot holds no persisted snapshot yet.
var ErrNoSnapshot = errors.New("no template snapshot")

// Slot is the external key-value slot the store persists into. Exactly one
// snapshot lives in a slot: the whole mapping serialized as a JSON object
// of name → source. Implementations return ErrNoSnapshot from Load when
// nothing has been saved; any other error means the snapshot exists but
// could not be read or decoded.
type Slot interface {
	Load() (Map, error)
	Save(Map) error
	Close() error
}
