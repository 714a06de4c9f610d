// Package template is the template store: a named collection of TikZ
// sources seeded from a built-in set and persisted as a single JSON
// snapshot in an external slot.
package template

import "sort"

// Map is the template collection, keyed by template name. Values are the
// raw TikZ sources. Insertion order carries no meaning.
type Map map[string]string

// Put returns a copy of m with name bound to source, inserting or
// overwriting. m itself is never modified; persisting the change is the
// caller's business.
func (m Map) Put(name, source string) Map {
	next := make(Map, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	next[name] = source
	return next
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	next := make(Map, len(m))
	for k, v := range m {
		next[k] = v
	}
	return next
}

// Names returns the template names in sorted order, for stable enumeration
// in UIs and tests.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
