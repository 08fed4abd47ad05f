// Package render converts markdown message bodies to HTML for the send
// endpoint.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Agents routinely emit GFM tables and strikethrough, so those
// extensions are on.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownToHTML renders a markdown source to an HTML fragment.
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
