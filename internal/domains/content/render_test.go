package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *Node {
	t.Helper()
	n, err := Parse([]byte(raw))
	require.NoError(t, err)
	return n
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "first mark is outermost",
			doc:  `{"type":"text","text":"hi","marks":[{"type":"bold"},{"type":"italic"},{"type":"code"}]}`,
			want: `<strong><em><code>hi</code></em></strong>`,
		},
		{
			name: "unknown mark leaves text unwrapped",
			doc:  `{"type":"text","text":"hi","marks":[{"type":"textStyle","attrs":{"color":"red"}},{"type":"underline"}]}`,
			want: `<u>hi</u>`,
		},
		{
			name: "text is escaped",
			doc:  `{"type":"paragraph","content":[{"type":"text","text":"<script>x</script> & more"}]}`,
			want: `<p>&lt;script&gt;x&lt;/script&gt; &amp; more</p>`,
		},
		{
			name: "heading level from attrs",
			doc:  `{"type":"heading","attrs":{"level":3},"content":[{"type":"text","text":"T"}]}`,
			want: `<h3>T</h3>`,
		},
		{
			name: "heading level missing defaults to 2",
			doc:  `{"type":"heading","content":[{"type":"text","text":"T"}]}`,
			want: `<h2>T</h2>`,
		},
		{
			name: "heading level out of range defaults to 2",
			doc:  `{"type":"heading","attrs":{"level":9},"content":[{"type":"text","text":"T"}]}`,
			want: `<h2>T</h2>`,
		},
		{
			name: "heading level fractional defaults to 2",
			doc:  `{"type":"heading","attrs":{"level":1.5},"content":[{"type":"text","text":"T"}]}`,
			want: `<h2>T</h2>`,
		},
		{
			name: "aligned paragraph",
			doc:  `{"type":"paragraph","attrs":{"textAlign":"center"},"content":[{"type":"text","text":"x"}]}`,
			want: `<p style="text-align: center">x</p>`,
		},
		{
			name: "unsupported alignment ignored",
			doc:  `{"type":"paragraph","attrs":{"textAlign":"expression(x)"},"content":[{"type":"text","text":"x"}]}`,
			want: `<p>x</p>`,
		},
		{
			name: "image with all attrs",
			doc:  `{"type":"image","attrs":{"src":"https://cdn.test/a.png","alt":"A","title":"T"}}`,
			want: `<img src="https://cdn.test/a.png" alt="A" title="T">`,
		},
		{
			name: "image without src still renders",
			doc:  `{"type":"image"}`,
			want: `<img src="" alt="">`,
		},
		{
			name: "image with script src is neutralised",
			doc:  `{"type":"image","attrs":{"src":"javascript:alert(1)"}}`,
			want: `<img src="" alt="">`,
		},
		{
			name: "leaf markers",
			doc:  `{"type":"doc","content":[{"type":"horizontalRule"},{"type":"paragraph","content":[{"type":"text","text":"a"},{"type":"hardBreak"},{"type":"text","text":"b"}]}]}`,
			want: `<hr><p>a<br>b</p>`,
		},
		{
			name: "unknown container becomes div",
			doc:  `{"type":"callout","content":[{"type":"paragraph","content":[{"type":"text","text":"x"}]}]}`,
			want: `<div><p>x</p></div>`,
		},
		{
			name: "unknown leaf renders nothing",
			doc:  `{"type":"doc","content":[{"type":"mention","attrs":{"id":"u1"}},{"type":"paragraph"}]}`,
			want: `<p></p>`,
		},
		{
			name: "lists",
			doc:  `{"type":"doc","content":[{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"a"}]}]}]},{"type":"orderedList","attrs":{"start":3},"content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"b"}]}]}]}]}`,
			want: `<ul><li><p>a</p></li></ul><ol start="3"><li><p>b</p></li></ol>`,
		},
		{
			name: "task list",
			doc:  `{"type":"taskList","content":[{"type":"taskItem","attrs":{"checked":true},"content":[{"type":"paragraph","content":[{"type":"text","text":"done"}]}]}]}`,
			want: `<ul data-type="taskList"><li data-type="taskItem" data-checked="true"><input type="checkbox" disabled checked><div><p>done</p></div></li></ul>`,
		},
		{
			name: "code block keeps language and escapes",
			doc:  `{"type":"codeBlock","attrs":{"language":"go"},"content":[{"type":"text","text":"a < b"}]}`,
			want: `<pre><code class="language-go">a &lt; b</code></pre>`,
		},
		{
			name: "code block drops hostile language",
			doc:  `{"type":"codeBlock","attrs":{"language":"x onclick=alert(1)"},"content":[{"type":"text","text":"x"}]}`,
			want: `<pre><code>x</code></pre>`,
		},
		{
			name: "blockquote",
			doc:  `{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"q"}]}]}`,
			want: `<blockquote><p>q</p></blockquote>`,
		},
		{
			name: "link mark",
			doc:  `{"type":"text","text":"site","marks":[{"type":"link","attrs":{"href":"https://example.com"}}]}`,
			want: `<a href="https://example.com" target="_blank" rel="noopener noreferrer nofollow">site</a>`,
		},
		{
			name: "javascript link is unwrapped",
			doc:  `{"type":"text","text":"click","marks":[{"type":"bold"},{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}`,
			want: `<strong>click</strong>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(mustParse(t, tt.doc)))
		})
	}
}

func TestRender_NilAndEmpty(t *testing.T) {
	assert.Equal(t, "", Render(nil))
	assert.Equal(t, "", Render(&Node{}))
}

func TestRender_DeepTreeIsBounded(t *testing.T) {
	root := &Node{Type: TypeDoc}
	cur := root
	for i := 0; i < MaxDepth*3; i++ {
		child := &Node{Type: TypeBlockquote}
		cur.Content = []*Node{child}
		cur = child
	}
	cur.Content = []*Node{{Type: TypeText, Text: "bottom"}}

	var out string
	assert.NotPanics(t, func() { out = Render(root) })
	assert.LessOrEqual(t, strings.Count(out, "<blockquote>"), MaxDepth)
	assert.NotContains(t, out, "bottom")
}

func TestRender_IsPure(t *testing.T) {
	doc := mustParse(t, `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"x","marks":[{"type":"bold"},{"type":"italic"}]}]}]}`)

	first := Render(doc)
	second := Render(doc)

	assert.Equal(t, first, second)
	assert.Equal(t, "bold", doc.Content[0].Content[0].Marks[0].Type)
}

func TestParse(t *testing.T) {
	_, err := Parse([]byte(`{"type":`))
	assert.Error(t, err)

	n, err := Parse([]byte(`{"type":"whatever","content":[{"type":"text","text":"x"}]}`))
	require.NoError(t, err)
	assert.False(t, n.IsEmpty())
	assert.IsType(t, Unknown{}, Decode(n))
}

func TestDecode_ClosedVariants(t *testing.T) {
	doc := mustParse(t, `{"type":"doc","content":[
		{"type":"heading","attrs":{"level":"4","textAlign":"right"}},
		{"type":"orderedList","attrs":{"start":0}},
		{"type":"taskItem","attrs":{"checked":"yes"}}
	]}`)

	d, ok := Decode(doc).(Doc)
	require.True(t, ok)
	require.Len(t, d.Children, 3)

	assert.Equal(t, Heading{Level: 4, Align: "right"}, d.Children[0])
	assert.Equal(t, OrderedList{Start: 1}, d.Children[1])
	assert.Equal(t, TaskItem{Checked: false}, d.Children[2])
}
