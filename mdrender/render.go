// Package mdrender renders markdown into the view nodes of any framework
// that implements Context. Every clickable node reports the byte range of
// the source it came from.
package mdrender

import (
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type state[V, H, S any] struct {
	ctx          Context[V, H, S]
	props        MarkdownProps[S, V]
	logger       *slog.Logger
	parser       parser.Parser
	source       []byte
	ranges       map[ast.Node]Range
	trace        []string
	warnings     []Warning
	themeMounted bool
}

// Render renders source through ctx and returns the resulting view.
func Render[V, H, S any](ctx Context[V, H, S], source string) V {
	return RenderResult(ctx, source).View
}

// RenderResult is Render that also returns the non-fatal problems found
// while rendering.
func RenderResult[V, H, S any](ctx Context[V, H, S], source string) Result[V] {
	props := ctx.Props().applyDefaults()
	options := props.options()
	s := &state[V, H, S]{
		ctx:    ctx,
		props:  props,
		logger: props.Logger,
		parser: markdownParser(options, props.Wikilinks),
		source: []byte(source),
		ranges: map[ast.Node]Range{},
	}

	bodyStart := 0
	if options.Has(OptionFrontmatter) {
		frontmatter, offset, ok := splitFrontmatter(source)
		if ok {
			bodyStart = offset
			s.tracef("frontmatter %s", Range{Start: 0, End: offset})
		}
		ctx.SetFrontmatter(frontmatter)
	}

	root := s.parse(bodyStart, len(s.source))
	view := ctx.ElFragment(s.renderBlockSlice(childNodes(root)))

	s.logger.Debug("rendered markdown",
		"bytes", len(source),
		"options", options.String(),
		"nodes", len(s.ranges),
		"warnings", len(s.warnings),
	)
	if props.Debug {
		ctx.SendDebugInfo(s.trace)
	}
	return Result[V]{View: view, Warnings: s.warnings}
}

// parse parses source[start:end]. Segments of the returned tree index the
// whole source.
func (s *state[V, H, S]) parse(start, end int) ast.Node {
	reader := text.NewReader(s.source[:end])
	reader.Advance(start)
	return s.parser.Parse(reader)
}

// renderSubDocument renders source[start:end] as a markdown document of its
// own, returning its blocks.
func (s *state[V, H, S]) renderSubDocument(start, end int) []V {
	if start >= end {
		return nil
	}
	s.tracef("subdocument %s", Range{Start: start, End: end})
	return s.renderBlockSlice(childNodes(s.parse(start, end)))
}

// attrs builds element attributes with a click handler for r. Empty ranges
// get no handler.
func (s *state[V, H, S]) attrs(r Range, classes ...string) ElementAttributes[H] {
	attributes := ElementAttributes[H]{Classes: classes}
	if !r.IsEmpty() {
		handler := s.ctx.MakeMdHandler(r, true)
		attributes.OnClick = &handler
	}
	return attributes
}

// element wraps children in e with a click handler for node.
func (s *state[V, H, S]) element(e HTMLElement, node ast.Node, children []V, classes ...string) V {
	return s.ctx.ElWithAttributes(e, s.ctx.ElFragment(children), s.attrs(s.nodeRange(node), classes...))
}

// ErrorClass marks placeholders rendered in place of failed components and
// links.
const ErrorClass = "markdown-error"

func (s *state[V, H, S]) errorView(label string, r Range, err error) V {
	message := s.ctx.ElText(fmt.Sprintf("%s: %v", label, err))
	return s.ctx.ElWithAttributes(Span, message, s.attrs(r, ErrorClass))
}

func (s *state[V, H, S]) tracef(format string, args ...any) {
	if !s.props.Debug {
		return
	}
	s.trace = append(s.trace, fmt.Sprintf(format, args...))
}

func (s *state[V, H, S]) addWarning(warnType WarningType, nodeType string, r Range, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
		Position: r,
	})
	s.logger.Warn(message, "type", string(warnType), "node", nodeType, "position", r.String())
	s.tracef("warning %s %s: %s", warnType, r, message)
}

func childNodes(parent ast.Node) []ast.Node {
	children := make([]ast.Node, 0, parent.ChildCount())
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		children = append(children, child)
	}
	return children
}
