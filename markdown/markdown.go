// Package markdown renders markdown source into view nodes whose elements
// report the source range they were rendered from when clicked.
package markdown

import (
	"github.com/rgonek/md-view/mdrender"
	"github.com/rgonek/md-view/view"
)

type (
	CustomComponents = mdrender.CustomComponents[*view.Scope, *view.Node]
	MdComponentProps = mdrender.MdComponentProps[*view.Node]
	ComponentFunc    = mdrender.ComponentFunc[*view.Scope, *view.Node]
	LinkDescription  = mdrender.LinkDescription[*view.Node]
	Result           = mdrender.Result[*view.Node]
)

// HTMLCallback renders a value into a view node.
type HTMLCallback[T any] func(T) (*view.Node, error)

// NewComponents creates an empty component registry.
func NewComponents() *CustomComponents {
	return mdrender.NewCustomComponents[*view.Scope, *view.Node]()
}

// Markdown renders props.Source into a view owned by doc.
func Markdown(doc *view.Document, props Props) *view.Node {
	return RenderResult(doc, props).View
}

// RenderResult is Markdown that also returns the render warnings.
func RenderResult(doc *view.Document, props Props) Result {
	ctx := NewContext(doc, props)
	return mdrender.RenderResult[*view.Node, clickHandler, *view.Scope](ctx, ctx.props.Source)
}

// Renderer renders with props that were validated once.
type Renderer struct {
	props Props
}

// New creates a Renderer with the given props.
func New(props Props) (*Renderer, error) {
	p := props.applyDefaults().clone()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{props: p}, nil
}

// Render renders source into doc and mounts the result as its body.
func (r *Renderer) Render(doc *view.Document, source string) Result {
	props := r.props
	props.Source = source
	result := RenderResult(doc, props)
	doc.Mount(result.View)
	return result
}
