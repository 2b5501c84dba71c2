package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_StripsScripts(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(`<p>ok</p><script>alert(1)</script><img src="x" onerror="alert(1)">`)

	assert.Contains(t, out, "<p>ok</p>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onerror")
}

func TestSanitizer_KeepsRenderedFormatting(t *testing.T) {
	s := NewSanitizer()
	doc := mustParse(t, `{"type":"doc","content":[
		{"type":"paragraph","content":[{"type":"text","text":"bold","marks":[{"type":"bold"},{"type":"italic"}]}]},
		{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"quote"}]}]}
	]}`)

	out := s.RenderSafe(doc)

	assert.Contains(t, out, "<strong><em>bold</em></strong>")
	assert.Contains(t, out, "<blockquote><p>quote</p></blockquote>")
}
