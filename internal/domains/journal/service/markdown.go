package service

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer turns journal descriptions into safe HTML.
type MarkdownRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			// raw HTML is kept here and stripped by the policy below
			html.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)

	return &MarkdownRenderer{md: md, policy: policy}
}

// Render returns "" for nil or empty input.
func (r *MarkdownRenderer) Render(src *string) string {
	if src == nil || *src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(*src), &buf); err != nil {
		return r.policy.Sanitize(*src)
	}
	return r.policy.Sanitize(buf.String())
}
