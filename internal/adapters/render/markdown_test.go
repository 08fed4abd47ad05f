package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTMLRendersEmphasisAndLinks(t *testing.T) {
	t.Parallel()

	html, err := MarkdownToHTML("deploy **done**, see [run 42](https://ci.local/42)")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>done</strong>")
	assert.Contains(t, html, `<a href="https://ci.local/42">run 42</a>`)
}

func TestMarkdownToHTMLSupportsGFMTables(t *testing.T) {
	t.Parallel()

	html, err := MarkdownToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestMarkdownToHTMLPassesPlainTextThrough(t *testing.T) {
	t.Parallel()

	html, err := MarkdownToHTML("just words")
	require.NoError(t, err)
	assert.Equal(t, "<p>just words</p>", html)
}
