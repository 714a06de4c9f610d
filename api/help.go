package api

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed guide.md
var guideMarkdown []byte

// The guide is static, so it is rendered once and cached. The goldmark
// instance never outlives this; parsing state is per-Convert call.
var (
	guideOnce sync.Once
	guideHTML []byte
	guideErr  error
)

func renderGuide() ([]byte, error) {
	guideOnce.Do(func() {
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))

		var body bytes.Buffer
		if guideErr = md.Convert(guideMarkdown, &body); guideErr != nil {
			return
		}

		var page bytes.Buffer
		page.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TikZ Editor Guide</title>
<link rel="stylesheet" href="/css/style.css">
</head>
<body class="help">
<main>
`)
		page.Write(body.Bytes())
		page.WriteString(`</main>
</body>
</html>
`)
		guideHTML = page.Bytes()
	})
	return guideHTML, guideErr
}

func (h *handler) helpPage(w http.ResponseWriter, r *http.Request) {
	page, err := renderGuide()
	if err != nil {
		h.logger.Error("rendering help page failed", "error", err)
		http.Error(w, "help page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
