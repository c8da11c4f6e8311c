package markdown

import (
	"strconv"
	"strings"

	"github.com/rgonek/md-view/markdown/debug"
	"github.com/rgonek/md-view/mdrender"
	"github.com/rgonek/md-view/view"
)

type clickHandler = view.EventHandler[*view.MouseEvent]

// MarkdownMouseEvent is delivered to Props.OnClick. Position is the byte
// range of the source that produced the clicked element.
type MarkdownMouseEvent struct {
	MouseEvent *view.MouseEvent
	Position   mdrender.Range
}

// MdContext binds the renderer to a view.Document.
type MdContext struct {
	doc   *view.Document
	scope *view.Scope
	props Props
}

var _ mdrender.Context[*view.Node, clickHandler, *view.Scope] = (*MdContext)(nil)

// NewContext creates the rendering context for props mounted into doc.
func NewContext(doc *view.Document, props Props) *MdContext {
	if doc == nil {
		doc = view.NewDocument(props.Logger)
	}
	props = props.applyDefaults()
	if props.Logger == nil {
		props.Logger = doc.Logger()
	}
	return &MdContext{
		doc:   doc,
		scope: view.NewScope(doc),
		props: props,
	}
}

func (c *MdContext) Scope() *view.Scope {
	return c.scope
}

func (c *MdContext) ComponentScope(name string) *view.Scope {
	return c.scope.Child(name)
}

func (c *MdContext) Props() mdrender.MarkdownProps[*view.Scope, *view.Node] {
	return mdrender.MarkdownProps[*view.Scope, *view.Node]{
		CustomLinks:    c.props.RenderLinks != nil,
		Components:     c.props.Components,
		HardLineBreaks: c.props.HardLineBreaks,
		Wikilinks:      c.props.Wikilinks,
		ParseOptions:   c.props.ParseOptions,
		Theme:          c.props.Theme,
		Debug:          c.props.Debug != nil,
		Logger:         c.props.Logger,
	}
}

func (c *MdContext) SendDebugInfo(info []string) {
	if c.props.Debug == nil {
		return
	}
	next := debug.EventInfo{Log: append([]string(nil), info...)}
	c.props.Debug.SetIfChanged(next, debug.EventInfo.Equal)
}

func (c *MdContext) ElWithAttributes(e mdrender.HTMLElement, inside *view.Node, attributes mdrender.ElementAttributes[clickHandler]) *view.Node {
	node := view.El(e.Tag(), inside)
	if e.Kind == mdrender.ElementOl && e.Start != 1 {
		node.SetAttr("start", strconv.Itoa(e.Start))
	}
	return withAttributes(node, attributes)
}

func (c *MdContext) ElSpanWithInnerHTML(innerHTML string, attributes mdrender.ElementAttributes[clickHandler]) *view.Node {
	return withAttributes(view.El("span", view.Raw(innerHTML)), attributes)
}

func (c *MdContext) ElHr(attributes mdrender.ElementAttributes[clickHandler]) *view.Node {
	return withAttributes(view.El("hr"), attributes)
}

func (c *MdContext) ElBr() *view.Node {
	return view.El("br")
}

func (c *MdContext) ElFragment(children []*view.Node) *view.Node {
	return view.Fragment(children...)
}

func (c *MdContext) ElA(children *view.Node, href string) *view.Node {
	return view.El("a", children).SetAttr("href", href)
}

func (c *MdContext) ElImg(src, alt string) *view.Node {
	return view.El("img").SetAttr("src", src).SetAttr("alt", alt)
}

func (c *MdContext) ElText(text string) *view.Node {
	return view.Text(text)
}

func (c *MdContext) ElInputCheckbox(checked bool, attributes mdrender.ElementAttributes[clickHandler]) *view.Node {
	node := view.El("input").SetAttr("type", "checkbox").SetAttr("disabled", "")
	if checked {
		node.SetAttr("checked", "")
	}
	return withAttributes(node, attributes)
}

func (c *MdContext) MountDynamicLink(rel, href, integrity, crossorigin string) error {
	return c.doc.MountLink(rel, href, integrity, crossorigin)
}

func (c *MdContext) MakeMdHandler(position mdrender.Range, stopPropagation bool) clickHandler {
	onClick := c.props.OnClick
	return func(event *view.MouseEvent) {
		if stopPropagation {
			event.StopPropagation()
		}
		onClick.Call(MarkdownMouseEvent{MouseEvent: event, Position: position})
	}
}

func (c *MdContext) SetFrontmatter(frontmatter string) {
	if c.props.Frontmatter == nil {
		return
	}
	c.props.Frontmatter.SetIfChanged(frontmatter, func(a, b string) bool { return a == b })
}

// RenderLinks panics when Props.RenderLinks is nil. The renderer only
// calls it when a link renderer is configured.
func (c *MdContext) RenderLinks(link LinkDescription) (*view.Node, error) {
	if c.props.RenderLinks == nil {
		panic("markdown: RenderLinks called without a link renderer")
	}
	return c.props.RenderLinks(link)
}

func withAttributes(node *view.Node, attributes mdrender.ElementAttributes[clickHandler]) *view.Node {
	if attributes.ID != "" {
		node.SetAttr("id", attributes.ID)
	}
	if len(attributes.Classes) > 0 {
		node.SetAttr("class", strings.Join(attributes.Classes, " "))
	}
	if attributes.Style != "" {
		node.SetAttr("style", attributes.Style)
	}
	if attributes.OnClick != nil {
		node.OnClick(*attributes.OnClick)
	}
	return node
}
