package content

import (
	"strings"
	"unicode/utf8"
)

// ExtractImageURLs returns the distinct image srcs in document order.
// Empty srcs are skipped. The tree is not modified.
func ExtractImageURLs(root *Node) []string {
	seen := make(map[string]struct{})
	var urls []string

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil || depth > MaxDepth {
			return
		}
		if n.Type == TypeImage {
			if src := attrString(n.Attrs, "src"); src != "" {
				if _, ok := seen[src]; !ok {
					seen[src] = struct{}{}
					urls = append(urls, src)
				}
			}
		}
		for _, child := range n.Content {
			walk(child, depth+1)
		}
	}
	walk(root, 0)

	return urls
}

// PlainText flattens the document for excerpts and feeds. Block
// boundaries become single spaces. limit <= 0 means no limit; a cut
// excerpt ends with "…".
func PlainText(root *Node, limit int) string {
	var b strings.Builder

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil || depth > MaxDepth {
			return
		}
		switch n.Type {
		case TypeText:
			b.WriteString(n.Text)
			return
		case TypeHardBreak:
			b.WriteString(" ")
			return
		}
		for _, child := range n.Content {
			walk(child, depth+1)
		}
		if n.Type != TypeDoc {
			b.WriteString(" ")
		}
	}
	walk(root, 0)

	text := strings.Join(strings.Fields(b.String()), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := strings.TrimSpace(string(runes[:limit]))
	return cut + "…"
}
