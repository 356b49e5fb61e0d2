package bulletin

import (
	"sort"
	"strings"
)

// Node is one element of the render tree. A node without a tag is a
// fragment: only its children are emitted.
type Node struct {
	Tag      string            `json:"tag,omitempty"`
	Class    string            `json:"class,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

var voidElements = map[string]bool{
	"img": true,
	"br":  true,
	"hr":  true,
}

// El creates an element node, skipping nil children
func El(tag, class string, children ...*Node) *Node {
	n := &Node{Tag: tag, Class: class}
	n.Append(children...)
	return n
}

// Text creates an element holding only text
func Text(tag, class, text string) *Node {
	return &Node{Tag: tag, Class: class, Text: text}
}

// Append adds non-nil children
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// SetStyle sets a CSS declaration; empty values are ignored
func (n *Node) SetStyle(key, value string) *Node {
	if value == "" {
		return n
	}
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[key] = value
	return n
}

// SetStyles merges declarations into the node's style
func (n *Node) SetStyles(css map[string]string) *Node {
	for k, v := range css {
		n.SetStyle(k, v)
	}
	return n
}

// SetAttr sets an attribute; empty values are ignored
func (n *Node) SetAttr(key, value string) *Node {
	if value == "" {
		return n
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// TextContent concatenates the text of the node and its descendants,
// separating elements with a single space
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var parts []string
	var walk func(*Node)
	walk = func(node *Node) {
		if node.Text != "" {
			parts = append(parts, node.Text)
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// Find returns the first node, depth first, whose class list contains class
func (n *Node) Find(class string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return n
		}
	}
	for _, child := range n.Children {
		if found := child.Find(class); found != nil {
			return found
		}
	}
	return nil
}

// HTML serialises the tree. Attributes and declarations are emitted in
// sorted order so equal trees always produce equal markup.
func (n *Node) HTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Tag == "" {
		sb.WriteString(escapeContent(n.Text))
		for _, c := range n.Children {
			c.writeHTML(sb)
		}
		return
	}

	sb.WriteString("<")
	sb.WriteString(n.Tag)
	if n.Class != "" {
		sb.WriteString(` class="`)
		sb.WriteString(escapeAttributeValue(n.Class, "class"))
		sb.WriteString(`"`)
	}
	for _, key := range sortedKeys(n.Attrs) {
		sb.WriteString(" ")
		sb.WriteString(key)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttributeValue(n.Attrs[key], key))
		sb.WriteString(`"`)
	}
	if len(n.Style) > 0 {
		sb.WriteString(` style="`)
		sb.WriteString(escapeAttributeValue(formatStyle(n.Style), "style"))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	if voidElements[n.Tag] {
		return
	}

	sb.WriteString(escapeContent(n.Text))
	for _, c := range n.Children {
		c.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteString(">")
}

func formatStyle(style map[string]string) string {
	decls := make([]string, 0, len(style))
	for _, key := range sortedKeys(style) {
		decls = append(decls, key+": "+style[key])
	}
	return strings.Join(decls, "; ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// escapeAttributeValue escapes attribute values for safe HTML output.
// URL attributes keep their ampersands so query strings survive.
func escapeAttributeValue(value string, attributeName string) string {
	isURLAttribute := attributeName == "src" || attributeName == "href"
	looksLikeURL := strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "//")

	if !(isURLAttribute && looksLikeURL) {
		value = strings.ReplaceAll(value, "&", "&amp;")
	}
	value = strings.ReplaceAll(value, "\"", "&quot;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}

func escapeContent(content string) string {
	content = strings.ReplaceAll(content, "&", "&amp;")
	content = strings.ReplaceAll(content, "<", "&lt;")
	content = strings.ReplaceAll(content, ">", "&gt;")
	return content
}

// HTMLDocument wraps rendered pages into a standalone HTML page
func HTMLDocument(title string, pages ...*Node) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	sb.WriteString(escapeContent(title))
	sb.WriteString("</title><style>")
	sb.WriteString(baseStylesheet)
	sb.WriteString("</style></head><body>")
	for _, p := range pages {
		sb.WriteString(p.HTML())
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

const baseStylesheet = `body{margin:0;background:#f0f0f0;}` +
	`.bulletin-page{box-sizing:border-box;margin:0 auto 16px auto;overflow:hidden;position:relative;}` +
	`.bulletin-placeholder{color:#9e9e9e;font-style:italic;}` +
	`.bulletin-list{list-style:none;margin:0;padding:0;}`
