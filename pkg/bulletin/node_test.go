package bulletin

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_HTML(t *testing.T) {
	tests := []struct {
		name     string
		node     *Node
		expected string
	}{
		{
			name:     "text is escaped",
			node:     Text("span", "v", "a < b & c"),
			expected: `<span class="v">a &lt; b &amp; c</span>`,
		},
		{
			name: "attributes and styles are sorted",
			node: El("div", "").
				SetAttr("data-z", "1").SetAttr("data-a", "2").
				SetStyle("width", "10px").SetStyle("color", "red"),
			expected: `<div data-a="2" data-z="1" style="color: red; width: 10px"></div>`,
		},
		{
			name:     "void elements are not closed",
			node:     (&Node{Tag: "img"}).SetAttr("src", "/a.png?x=1&y=2"),
			expected: `<img src="/a.png?x=1&amp;y=2">`,
		},
		{
			name:     "absolute urls keep ampersands",
			node:     (&Node{Tag: "img"}).SetAttr("src", "https://x.io/a.png?x=1&y=2"),
			expected: `<img src="https://x.io/a.png?x=1&y=2">`,
		},
		{
			name:     "fragments emit children only",
			node:     El("", "", Text("b", "", "x"), nil, Text("i", "", "y")),
			expected: `<b>x</b><i>y</i>`,
		},
		{
			name:     "quotes in attributes",
			node:     El("div", "").SetAttr("title", `say "hi"`),
			expected: `<div title="say &quot;hi&quot;"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.node.HTML())
		})
	}
}

func TestNode_EmptyValuesIgnored(t *testing.T) {
	n := El("div", "").SetStyle("color", "").SetAttr("id", "")
	assert.Nil(t, n.Style)
	assert.Nil(t, n.Attrs)
}

func TestNode_JSON(t *testing.T) {
	n := El("div", "page", Text("span", "", "hola"))
	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"div","class":"page","children":[{"tag":"span","text":"hola"}]}`, string(data))
}

func TestHTMLDocument(t *testing.T) {
	html := HTMLDocument("Boletín <1>", Text("div", "bulletin-page", "uno"), Text("div", "bulletin-page", "dos"))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Boletín &lt;1&gt;</title>")
	assert.Equal(t, 2, strings.Count(html, `<div class="bulletin-page">`))
}
