package tikz

import "strings"

// The three canned preview fragments. Each is a self-contained SVG so the
// preview area can inject it directly.
const (
	// RectangleCircleFragment is the canned preview for sources that
	// mention a rectangle.
	RectangleCircleFragment = `<svg class="tikz-preview" viewBox="0 0 260 200" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="Rectangle with circle">
  <rect x="30" y="40" width="200" height="120" fill="none" stroke="#1f2937" stroke-width="2"/>
  <circle cx="130" cy="100" r="48" fill="none" stroke="#1f2937" stroke-width="2"/>
</svg>`

	// BarGraphFragment is the canned preview for bar charts.
	BarGraphFragment = `<svg class="tikz-preview" viewBox="0 0 260 200" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="Bar graph">
  <line x1="30" y1="172" x2="242" y2="172" stroke="#1f2937" stroke-width="2"/>
  <line x1="30" y1="172" x2="30" y2="18" stroke="#1f2937" stroke-width="2"/>
  <rect x="48" y="112" width="32" height="60" fill="#60a5fa" stroke="#1f2937"/>
  <rect x="96" y="72" width="32" height="100" fill="#60a5fa" stroke="#1f2937"/>
  <rect x="144" y="132" width="32" height="40" fill="#60a5fa" stroke="#1f2937"/>
  <rect x="192" y="52" width="32" height="120" fill="#60a5fa" stroke="#1f2937"/>
</svg>`

	// OrgChartFragment is the canned preview for org-chart style mindmaps.
	OrgChartFragment = `<svg class="tikz-preview" viewBox="0 0 260 200" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="Organizational chart">
  <line x1="130" y1="52" x2="54" y2="122" stroke="#1f2937" stroke-width="2"/>
  <line x1="130" y1="52" x2="130" y2="122" stroke="#1f2937" stroke-width="2"/>
  <line x1="130" y1="52" x2="206" y2="122" stroke="#1f2937" stroke-width="2"/>
  <rect x="95" y="22" width="70" height="30" rx="4" fill="#fde68a" stroke="#1f2937"/>
  <rect x="19" y="122" width="70" height="30" rx="4" fill="#bbf7d0" stroke="#1f2937"/>
  <rect x="95" y="122" width="70" height="30" rx="4" fill="#bbf7d0" stroke="#1f2937"/>
  <rect x="171" y="122" width="70" height="30" rx="4" fill="#bbf7d0" stroke="#1f2937"/>
</svg>`
)

// Synthesize maps source to a preview fragment by keyword. The first
// matching rule wins, in this order: "rectangle", "bar", "mindmap". The
// match is case-sensitive and may occur anywhere in the source. A source
// matching none of them is echoed back wrapped in <pre> tags.
//
// Callers are expected to have run Check first and gotten no defects;
// Synthesize itself validates nothing.
func Synthesize(source string) string {
	switch {
	case strings.Contains(source, "rectangle"):
		return RectangleCircleFragment
	case strings.Contains(source, "bar"):
		return BarGraphFragment
	case strings.Contains(source, "mindmap"):
		return OrgChartFragment
	default:
		// The echo is deliberately unescaped: the preview area treats
		// every fragment as live markup, and the fallback hands the
		// user's text through byte-for-byte.
		return "<pre>" + source + "</pre>"
	}
}
