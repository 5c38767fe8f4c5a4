package ui

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderHTML converts markdown to an HTML fragment. goldmark's default
// renderer is not in unsafe mode, so raw HTML in the input is dropped and
// replaced with a "raw HTML omitted" comment.
func RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
