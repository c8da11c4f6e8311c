package mdrender

import (
	"strings"
)

// testNode is a minimal view tree for exercising the renderer.
type testNode struct {
	Element  *HTMLElement
	Tag      string
	ID       string
	Text     string
	InnerRaw string
	Href     string
	Src      string
	Alt      string
	Checked  bool
	Classes  []string
	Style    string
	Click    *Range
	Children []*testNode
}

type testContext struct {
	props        MarkdownProps[string, *testNode]
	frontmatter  []string
	debug        [][]string
	links        []string
	integrities  []string
	linkRequests []LinkDescription[*testNode]
	mountErr     error
	linkErr      error
}

func newTestContext() *testContext {
	return &testContext{props: MarkdownProps[string, *testNode]{
		Components: NewCustomComponents[string, *testNode](),
	}}
}

func (c *testContext) Scope() string { return "scope" }
func (c *testContext) ComponentScope(name string) string { return "scope/" + name }
func (c *testContext) Props() MarkdownProps[string, *testNode] { return c.props }
func (c *testContext) SendDebugInfo(info []string) { c.debug = append(c.debug, info) }
func (c *testContext) ElBr() *testNode { return &testNode{Tag: "br"} }
func (c *testContext) ElText(text string) *testNode { return &testNode{Tag: "#text", Text: text} }
func (c *testContext) MakeMdHandler(position Range, stop bool) Range { return position }
func (c *testContext) SetFrontmatter(frontmatter string) { c.frontmatter = append(c.frontmatter, frontmatter) }
func (c *testContext) ElImg(src, alt string) *testNode { return &testNode{Tag: "img", Src: src, Alt: alt} }
func (c *testContext) ElFragment(children []*testNode) *testNode { return &testNode{Tag: "#fragment", Children: children} }
func (c *testContext) ElA(children *testNode, href string) *testNode { return withChildren(&testNode{Tag: "a", Href: href}, children) }

func (c *testContext) ElWithAttributes(e HTMLElement, inside *testNode, attributes ElementAttributes[Range]) *testNode {
	return withChildren(&testNode{
		Element: &e,
		Tag:     e.Tag(),
		ID:      attributes.ID,
		Classes: attributes.Classes,
		Style:   attributes.Style,
		Click:   attributes.OnClick,
	}, inside)
}

func (c *testContext) ElSpanWithInnerHTML(innerHTML string, attributes ElementAttributes[Range]) *testNode {
	return &testNode{Tag: "span", InnerRaw: innerHTML, Classes: attributes.Classes, Click: attributes.OnClick}
}

func (c *testContext) ElHr(attributes ElementAttributes[Range]) *testNode {
	return &testNode{Tag: "hr", Click: attributes.OnClick}
}

func (c *testContext) ElInputCheckbox(checked bool, attributes ElementAttributes[Range]) *testNode {
	return &testNode{Tag: "input", Checked: checked, Click: attributes.OnClick}
}

func (c *testContext) MountDynamicLink(rel, href, integrity, crossorigin string) error {
	if c.mountErr != nil {
		return c.mountErr
	}
	c.links = append(c.links, href)
	c.integrities = append(c.integrities, integrity)
	return nil
}

func (c *testContext) RenderLinks(link LinkDescription[*testNode]) (*testNode, error) {
	c.linkRequests = append(c.linkRequests, link)
	if c.linkErr != nil {
		return nil, c.linkErr
	}
	return withChildren(&testNode{Tag: "custom-link", Href: link.URL}, link.Content), nil
}

// withChildren attaches inside to n, flattening fragments.
func withChildren(n, inside *testNode) *testNode {
	if inside == nil {
		return n
	}
	if inside.Tag == "#fragment" {
		for _, child := range inside.Children {
			n.Children = append(n.Children, flatten(child)...)
		}
		return n
	}
	n.Children = append(n.Children, inside)
	return n
}

func flatten(n *testNode) []*testNode {
	if n == nil {
		return nil
	}
	if n.Tag != "#fragment" {
		return []*testNode{n}
	}
	var out []*testNode
	for _, child := range n.Children {
		out = append(out, flatten(child)...)
	}
	return out
}

func (n *testNode) walk(fn func(node *testNode, ancestors []*testNode)) {
	var visit func(node *testNode, ancestors []*testNode)
	visit = func(node *testNode, ancestors []*testNode) {
		fn(node, ancestors)
		next := append(append([]*testNode(nil), ancestors...), node)
		for _, child := range node.Children {
			visit(child, next)
		}
	}
	visit(n, nil)
}

func (n *testNode) findAll(match func(*testNode) bool) []*testNode {
	var out []*testNode
	n.walk(func(node *testNode, _ []*testNode) {
		if match(node) {
			out = append(out, node)
		}
	})
	return out
}

func (n *testNode) find(match func(*testNode) bool) *testNode {
	if found := n.findAll(match); len(found) > 0 {
		return found[0]
	}
	return nil
}

func (n *testNode) textContent() string {
	var sb strings.Builder
	n.walk(func(node *testNode, _ []*testNode) {
		sb.WriteString(node.Text)
	})
	return sb.String()
}

func (n *testNode) hasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func byTag(tag string) func(*testNode) bool {
	return func(n *testNode) bool { return n.Tag == tag }
}

func byClass(class string) func(*testNode) bool {
	return func(n *testNode) bool { return n.hasClass(class) }
}

// textSpan matches the span wrapping a text run whose content is text.
func textSpan(text string) func(*testNode) bool {
	return func(n *testNode) bool {
		return n.Tag == "span" && len(n.Children) == 1 && n.Children[0].Tag == "#text" && n.Children[0].Text == text
	}
}

func render(t interface{ Helper() }, ctx *testContext, source string) (*testNode, Result[*testNode]) {
	t.Helper()
	result := RenderResult[*testNode, Range, string](ctx, source)
	return result.View, result
}
