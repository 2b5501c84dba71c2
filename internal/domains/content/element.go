package content

// Node type tags emitted by the editor.
const (
	TypeDoc            = "doc"
	TypeText           = "text"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeBlockquote     = "blockquote"
	TypeBulletList     = "bulletList"
	TypeOrderedList    = "orderedList"
	TypeListItem       = "listItem"
	TypeTaskList       = "taskList"
	TypeTaskItem       = "taskItem"
	TypeCodeBlock      = "codeBlock"
	TypeImage          = "image"
	TypeHorizontalRule = "horizontalRule"
	TypeHardBreak      = "hardBreak"
)

// Element is the closed set of node variants the renderer understands.
// Anything else decodes to Unknown.
type Element interface {
	element()
}

type (
	Doc struct {
		Children []Element
	}
	Text struct {
		Text  string
		Marks []Mark
	}
	Paragraph struct {
		Align    string
		Children []Element
	}
	Heading struct {
		Level    int
		Align    string
		Children []Element
	}
	Blockquote struct {
		Children []Element
	}
	BulletList struct {
		Children []Element
	}
	OrderedList struct {
		Start    int
		Children []Element
	}
	ListItem struct {
		Children []Element
	}
	TaskList struct {
		Children []Element
	}
	TaskItem struct {
		Checked  bool
		Children []Element
	}
	CodeBlock struct {
		Language string
		Children []Element
	}
	Image struct {
		Src   string
		Alt   string
		Title string
	}
	HorizontalRule struct{}
	HardBreak      struct{}
	Unknown        struct {
		Type     string
		Children []Element
	}
)

func (Doc) element()            {}
func (Text) element()           {}
func (Paragraph) element()      {}
func (Heading) element()        {}
func (Blockquote) element()     {}
func (BulletList) element()     {}
func (OrderedList) element()    {}
func (ListItem) element()       {}
func (TaskList) element()       {}
func (TaskItem) element()       {}
func (CodeBlock) element()      {}
func (Image) element()          {}
func (HorizontalRule) element() {}
func (HardBreak) element()      {}
func (Unknown) element()        {}

const defaultHeadingLevel = 2

// Decode classifies n and its subtree. A nil node, or one below MaxDepth,
// decodes to nil.
func Decode(n *Node) Element {
	return decode(n, 0)
}

func decode(n *Node, depth int) Element {
	if n == nil || depth > MaxDepth {
		return nil
	}

	switch n.Type {
	case TypeText:
		return Text{Text: n.Text, Marks: n.Marks}
	case TypeImage:
		return Image{
			Src:   attrString(n.Attrs, "src"),
			Alt:   attrString(n.Attrs, "alt"),
			Title: attrString(n.Attrs, "title"),
		}
	case TypeHorizontalRule:
		return HorizontalRule{}
	case TypeHardBreak:
		return HardBreak{}
	}

	children := decodeChildren(n.Content, depth+1)

	switch n.Type {
	case TypeDoc:
		return Doc{Children: children}
	case TypeParagraph:
		return Paragraph{Align: alignment(n.Attrs), Children: children}
	case TypeHeading:
		return Heading{Level: headingLevel(n.Attrs), Align: alignment(n.Attrs), Children: children}
	case TypeBlockquote:
		return Blockquote{Children: children}
	case TypeBulletList:
		return BulletList{Children: children}
	case TypeOrderedList:
		start, ok := attrInt(n.Attrs, "start")
		if !ok || start < 1 {
			start = 1
		}
		return OrderedList{Start: start, Children: children}
	case TypeListItem:
		return ListItem{Children: children}
	case TypeTaskList:
		return TaskList{Children: children}
	case TypeTaskItem:
		return TaskItem{Checked: attrBool(n.Attrs, "checked"), Children: children}
	case TypeCodeBlock:
		return CodeBlock{Language: attrString(n.Attrs, "language"), Children: children}
	default:
		return Unknown{Type: n.Type, Children: children}
	}
}

func decodeChildren(nodes []*Node, depth int) []Element {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Element, 0, len(nodes))
	for _, child := range nodes {
		if el := decode(child, depth); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func headingLevel(attrs map[string]any) int {
	level, ok := attrInt(attrs, "level")
	if !ok || level < 1 || level > 6 {
		return defaultHeadingLevel
	}
	return level
}

func alignment(attrs map[string]any) string {
	switch a := attrString(attrs, "textAlign"); a {
	case "left", "center", "right", "justify":
		return a
	default:
		return ""
	}
}
