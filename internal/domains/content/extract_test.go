package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractImageURLs(t *testing.T) {
	doc := mustParse(t, `{"type":"doc","content":[
		{"type":"image","attrs":{"src":"https://cdn.test/a.png"}},
		{"type":"paragraph","content":[{"type":"text","text":"x"}]},
		{"type":"callout","content":[{"type":"image","attrs":{"src":"https://cdn.test/b.png"}}]},
		{"type":"image","attrs":{"src":"https://cdn.test/a.png"}},
		{"type":"image","attrs":{"src":""}},
		{"type":"image"},
		{"type":"video","attrs":{"src":"https://cdn.test/v.mp4"}}
	]}`)

	assert.Equal(t, []string{"https://cdn.test/a.png", "https://cdn.test/b.png"}, ExtractImageURLs(doc))
}

func TestExtractImageURLs_NoImages(t *testing.T) {
	assert.Empty(t, ExtractImageURLs(nil))
	assert.Empty(t, ExtractImageURLs(mustParse(t, `{"type":"doc","content":[{"type":"paragraph"}]}`)))
}

func TestPlainText(t *testing.T) {
	doc := mustParse(t, `{"type":"doc","content":[
		{"type":"heading","content":[{"type":"text","text":"Title"}]},
		{"type":"paragraph","content":[{"type":"text","text":"Hello"},{"type":"hardBreak"},{"type":"text","text":"world","marks":[{"type":"bold"}]}]},
		{"type":"image","attrs":{"src":"x"}}
	]}`)

	assert.Equal(t, "Title Hello world", PlainText(doc, 0))
	assert.Equal(t, "Title…", PlainText(doc, 6))
	assert.Equal(t, "Title Hello world", PlainText(doc, 100))
}
