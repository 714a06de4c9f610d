// Package editor is the editor controller: one State value per session,
// changed only through a fixed set of transitions and observable over a
// single-subscriber channel.
package editor

import "tikz-editor/tikz"

// State is the whole of an editor's observable state. Transitions return a
// new value and leave the receiver alone. An empty Preview means none.
type State struct {
	Source  string   `json:"source"`
	Defects []string `json:"defects"`
	Preview string   `json:"preview,omitempty"`
}

// NewState returns the initial state: empty source, no defects, no preview.
// Defects is a non-nil empty slice so it serializes as [] rather than null.
func NewState() State {
	return State{Defects: []string{}}
}

// WithSource returns s with the source replaced. Defects and preview stay
// as they were; only a render recomputes them.
func (s State) WithSource(source string) State {
	s.Source = source
	return s
}

// Rendered returns s after a render pass: defects from the syntax check,
// and a preview only when the check came back clean.
func (s State) Rendered() State {
	s.Defects = tikz.Check(s.Source)
	if len(s.Defects) > 0 {
		s.Preview = ""
		return s
	}
	s.Preview = tikz.Synthesize(s.Source)
	return s
}
