// Package tikz holds the small amount of TikZ knowledge the editor has:
// the diagram environment markers, a presence-only syntax check, and a
// keyword-driven preview synthesizer. There is no parser here and no real
// rendering; the preview is a stand-in so the widget has something to show.
package tikz

import "strings"

// Markers delimiting the diagram environment. The check below looks for
// them as plain substrings, nothing more.
const (
	BeginMarker = `\begin{tikzpicture}`
	EndMarker   = `\end{tikzpicture}`
)

// Check scans source for the opening and closing markers and returns one
// human-readable defect message per missing marker, opening marker first.
// Both rules are evaluated independently, so the result always has length
// 0, 1, or 2. An empty result means the source passed.
func Check(source string) []string {
	defects := make([]string, 0, 2)
	if !strings.Contains(source, BeginMarker) {
		defects = append(defects, "Missing "+BeginMarker)
	}
	if !strings.Contains(source, EndMarker) {
		defects = append(defects, "Missing "+EndMarker)
	}
	return defects
}
