package template

// The built-in starter templates. Each one renders to a canned preview:
// the sources deliberately contain the keyword their preview is matched on
// ("rectangle", "bar" via ybar, "mindmap").
const (
	rectangleCircleSource = `\begin{tikzpicture}
  % A rectangle with an inscribed circle
  \draw[thick] (0,0) rectangle (6,4);
  \draw[thick] (3,2) circle (1.5);
\end{tikzpicture}`

	barGraphSource = `\begin{tikzpicture}
  \begin{axis}[ybar, ymin=0, xlabel={Quarter}, ylabel={Revenue}]
    \addplot coordinates {(1,8) (2,11) (3,7) (4,14)};
  \end{axis}
\end{tikzpicture}`

	orgChartSource = `\begin{tikzpicture}[mindmap, concept color=blue!40]
  \node[concept] {Head Office}
    child[grow=210] {node[concept] {Engineering}}
    child[grow=270] {node[concept] {Operations}}
    child[grow=330] {node[concept] {Finance}};
\end{tikzpicture}`
)

// Defaults returns a fresh copy of the built-in template set. The store
// falls back to this whenever no usable snapshot exists.
func Defaults() Map {
	return Map{
		"Rectangle with Circle": rectangleCircleSource,
		"Bar Graph":             barGraphSource,
		"Organizational Chart":  orgChartSource,
	}
}
