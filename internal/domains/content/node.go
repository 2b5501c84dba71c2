// Package content models the editor's rich-text document tree and the
// pure traversals over it: HTML rendering, image URL extraction and
// plain-text excerpts.
package content

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MaxDepth bounds every traversal; deeper subtrees are ignored.
const MaxDepth = 64

// Node is the stored JSON shape produced by the editor.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Parse decodes a document. Only malformed JSON is an error; unknown node
// types are accepted.
func Parse(raw []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("invalid content document: %w", err)
	}
	return &n, nil
}

// IsEmpty reports a document with no type, which the editor never produces.
func (n *Node) IsEmpty() bool {
	return n == nil || n.Type == ""
}

func attrString(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

// attrInt accepts JSON numbers and numeric strings.
func attrInt(attrs map[string]any, key string) (int, bool) {
	switch v := attrs[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case json.Number:
		i, err := v.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(v)
		return i, err == nil
	default:
		return 0, false
	}
}

func attrBool(attrs map[string]any, key string) bool {
	v, _ := attrs[key].(bool)
	return v
}
