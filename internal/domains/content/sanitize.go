package content

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer is the last pass over rendered HTML before it is served or
// cached.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	p.AllowStyles("text-align").
		MatchingEnum("left", "center", "right", "justify").
		OnElements("p", "h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").
		Matching(regexp.MustCompile(`^language-[\w+-]+$`)).
		OnElements("code")
	p.AllowAttrs("data-type").
		Matching(regexp.MustCompile(`^(taskList|taskItem)$`)).
		OnElements("ul", "li")
	p.AllowAttrs("data-checked").
		Matching(regexp.MustCompile(`^(true|false)$`)).
		OnElements("li")
	p.AllowAttrs("type").
		Matching(regexp.MustCompile(`^checkbox$`)).
		OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")

	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// RenderSafe renders root and sanitizes the result.
func (s *Sanitizer) RenderSafe(root *Node) string {
	return s.Sanitize(Render(root))
}
