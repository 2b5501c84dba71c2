package content

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// Render maps a document to HTML. It never fails: unknown containers become
// <div>, unknown leaves and unknown marks are dropped, missing attributes
// fall back to defaults.
func Render(root *Node) string {
	var b strings.Builder
	renderElement(&b, Decode(root))
	return b.String()
}

func renderElement(b *strings.Builder, el Element) {
	switch e := el.(type) {
	case nil:
	case Doc:
		renderChildren(b, e.Children)
	case Text:
		b.WriteString(renderText(e))
	case Paragraph:
		wrap(b, "p", alignStyle(e.Align), e.Children)
	case Heading:
		wrap(b, fmt.Sprintf("h%d", e.Level), alignStyle(e.Align), e.Children)
	case Blockquote:
		wrap(b, "blockquote", "", e.Children)
	case BulletList:
		wrap(b, "ul", "", e.Children)
	case OrderedList:
		attrs := ""
		if e.Start != 1 {
			attrs = fmt.Sprintf(` start="%d"`, e.Start)
		}
		wrap(b, "ol", attrs, e.Children)
	case ListItem:
		wrap(b, "li", "", e.Children)
	case TaskList:
		wrap(b, "ul", ` data-type="taskList"`, e.Children)
	case TaskItem:
		checked := ""
		if e.Checked {
			checked = " checked"
		}
		fmt.Fprintf(b, `<li data-type="taskItem" data-checked="%t"><input type="checkbox" disabled%s><div>`, e.Checked, checked)
		renderChildren(b, e.Children)
		b.WriteString("</div></li>")
	case CodeBlock:
		b.WriteString("<pre><code")
		if lang := codeLanguage(e.Language); lang != "" {
			fmt.Fprintf(b, ` class="language-%s"`, lang)
		}
		b.WriteString(">")
		for _, child := range e.Children {
			if t, ok := child.(Text); ok {
				b.WriteString(html.EscapeString(t.Text))
			}
		}
		b.WriteString("</code></pre>")
	case Image:
		fmt.Fprintf(b, `<img src="%s" alt="%s"`, html.EscapeString(safeURL(e.Src)), html.EscapeString(e.Alt))
		if e.Title != "" {
			fmt.Fprintf(b, ` title="%s"`, html.EscapeString(e.Title))
		}
		b.WriteString(">")
	case HorizontalRule:
		b.WriteString("<hr>")
	case HardBreak:
		b.WriteString("<br>")
	case Unknown:
		if len(e.Children) > 0 {
			wrap(b, "div", "", e.Children)
		}
	}
}

func renderChildren(b *strings.Builder, children []Element) {
	for _, child := range children {
		renderElement(b, child)
	}
}

func wrap(b *strings.Builder, tag, attrs string, children []Element) {
	b.WriteString("<" + tag + attrs + ">")
	renderChildren(b, children)
	b.WriteString("</" + tag + ">")
}

// renderText wraps in reverse so marks[0] ends up outermost.
func renderText(t Text) string {
	out := html.EscapeString(t.Text)
	for i := len(t.Marks) - 1; i >= 0; i-- {
		out = applyMark(t.Marks[i], out)
	}
	return out
}

var markTags = map[string]string{
	"bold":        "strong",
	"italic":      "em",
	"underline":   "u",
	"strike":      "s",
	"code":        "code",
	"highlight":   "mark",
	"subscript":   "sub",
	"superscript": "sup",
}

func applyMark(m Mark, inner string) string {
	if m.Type == "link" {
		href := safeURL(attrString(m.Attrs, "href"))
		if href == "" {
			return inner
		}
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer nofollow">%s</a>`, html.EscapeString(href), inner)
	}
	tag, ok := markTags[m.Type]
	if !ok {
		return inner
	}
	return "<" + tag + ">" + inner + "</" + tag + ">"
}

func alignStyle(align string) string {
	if align == "" {
		return ""
	}
	return fmt.Sprintf(` style="text-align: %s"`, align)
}

func codeLanguage(lang string) string {
	for _, r := range lang {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '+' || r == '_') {
			return ""
		}
	}
	return lang
}

// safeURL keeps relative URLs and http(s)/mailto; everything else,
// javascript: included, becomes empty.
func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return raw
	default:
		return ""
	}
}
