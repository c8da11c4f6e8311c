package mdrender

import (
	"fmt"
	"log/slog"
)

// Range is a half-open byte range [Start, End) into the markdown source.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether other lies within r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Slice returns the part of source covered by r, clamped to source.
func (r Range) Slice(source string) string {
	start := min(max(r.Start, 0), len(source))
	end := min(max(r.End, start), len(source))
	return source[start:end]
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

func (r Range) union(other Range) Range {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// ElementAttributes are the attributes the renderer wants applied to an
// element.
type ElementAttributes[H any] struct {
	// ID is empty when the element has no id attribute.
	ID      string
	Classes []string
	// Style is an inline style string. Empty means no style attribute.
	Style string
	// OnClick is nil when the element is not clickable.
	OnClick *H
}

// LinkType tells where a link came from in the markdown source.
type LinkType int

const (
	LinkInline LinkType = iota + 1
	LinkReference
	LinkAutolink
	LinkEmail
	LinkWikilink
)

func (t LinkType) String() string {
	switch t {
	case LinkInline:
		return "inline"
	case LinkReference:
		return "reference"
	case LinkAutolink:
		return "autolink"
	case LinkEmail:
		return "email"
	case LinkWikilink:
		return "wikilink"
	default:
		return "unknown"
	}
}

// LinkDescription describes a link or image handed to a custom link renderer.
type LinkDescription[V any] struct {
	URL     string
	Title   string
	Content V
	Type    LinkType
	Image   bool
}

// MarkdownProps is the configuration a Context exposes to the renderer.
type MarkdownProps[S, V any] struct {
	// CustomLinks routes every link and image through Context.RenderLinks.
	CustomLinks    bool
	Components     *CustomComponents[S, V]
	HardLineBreaks bool
	Wikilinks      bool
	// ParseOptions defaults to DefaultOptions when nil.
	ParseOptions *Options
	// Theme is the chroma style used for code blocks.
	Theme string
	// Debug makes the renderer report its event trace via SendDebugInfo.
	Debug  bool
	Logger *slog.Logger
}

// DefaultTheme is the highlighting theme used when none is configured.
const DefaultTheme = "github"

func (p MarkdownProps[S, V]) applyDefaults() MarkdownProps[S, V] {
	if p.Components == nil {
		p.Components = NewCustomComponents[S, V]()
	}
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	return p
}

func (p MarkdownProps[S, V]) options() Options {
	if p.ParseOptions == nil {
		return DefaultOptions
	}
	return *p.ParseOptions
}

// Context is implemented once per view framework. V is the framework's view
// node, H its click handler and S the scope handed to custom components.
type Context[V, H, S any] interface {
	Scope() S
	// ComponentScope returns the scope handed to the custom component name.
	ComponentScope(name string) S
	Props() MarkdownProps[S, V]

	// SendDebugInfo receives the event trace of the last render when
	// Props().Debug is set.
	SendDebugInfo(info []string)

	ElWithAttributes(e HTMLElement, inside V, attributes ElementAttributes[H]) V
	// ElSpanWithInnerHTML inserts innerHTML without escaping it.
	ElSpanWithInnerHTML(innerHTML string, attributes ElementAttributes[H]) V
	ElHr(attributes ElementAttributes[H]) V
	ElBr() V
	ElFragment(children []V) V
	ElA(children V, href string) V
	ElImg(src, alt string) V
	ElText(text string) V
	ElInputCheckbox(checked bool, attributes ElementAttributes[H]) V

	// MountDynamicLink injects a <link> into the host document. Failures
	// degrade styling only and are reported, not fatal.
	MountDynamicLink(rel, href, integrity, crossorigin string) error

	// MakeMdHandler returns a click handler reporting position.
	MakeMdHandler(position Range, stopPropagation bool) H
	SetFrontmatter(frontmatter string)
	// RenderLinks is only called when Props().CustomLinks is set.
	RenderLinks(link LinkDescription[V]) (V, error)
}
