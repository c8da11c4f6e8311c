package mdrender

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// renderHTMLBlockAt renders the HTML block at children[index]. Blocks that
// open a registered component may consume following siblings up to the
// matching closing tag; consumed is the number of children used.
func (s *state[V, H, S]) renderHTMLBlockAt(children []ast.Node, index int, node *ast.HTMLBlock) (views []V, consumed int) {
	raw := s.htmlBlockText(node)
	trimmed := strings.TrimLeft(raw, " \t")
	lead := len(raw) - len(trimmed)

	tag, ok := parseCustomTag(trimmed)
	if !ok || !s.props.Components.Has(tag.Name) {
		return []V{s.renderBlock(node)}, 1
	}

	r := s.nodeRange(node)
	if tag.Closing {
		s.addWarning(WarningUnmatchedTag, tag.Name, r, "closing tag without matching opening tag")
		return s.renderSubDocument(s.blockOffset(node, lead+tag.Len), r.End), 1
	}

	contentStart := s.blockOffset(node, lead+tag.Len)
	rest := raw[lead+tag.Len:]

	if tag.SelfClosing {
		views = append(views, s.renderComponent(tag, nil, Range{Start: r.Start, End: contentStart}))
		if strings.TrimSpace(rest) != "" {
			views = append(views, s.renderSubDocument(contentStart, r.End)...)
		}
		return views, 1
	}

	// closed inside this block
	if match, ok := closingTag(rest, tag.Name, 1); ok {
		contentEnd := s.blockOffset(node, lead+tag.Len+match.pos)
		closeEnd := s.blockOffset(node, lead+tag.Len+match.pos+match.tag.Len)
		inner := s.renderSubDocument(contentStart, contentEnd)
		views = append(views, s.renderComponent(tag, inner, Range{Start: r.Start, End: closeEnd}))
		if strings.TrimSpace(rest[match.pos+match.tag.Len:]) != "" {
			views = append(views, s.renderSubDocument(closeEnd, r.End)...)
		}
		return views, 1
	}

	var inner []V
	if strings.TrimSpace(rest) != "" {
		inner = s.renderSubDocument(contentStart, r.End)
	}

	depth := 1 + tagBalance(rest, tag.Name)
	for idx := index + 1; idx < len(children); idx++ {
		htmlNode, ok := children[idx].(*ast.HTMLBlock)
		if !ok {
			continue
		}
		closingRaw := s.htmlBlockText(htmlNode)
		match, ok := closingTag(closingRaw, tag.Name, depth)
		if !ok {
			depth += tagBalance(closingRaw, tag.Name)
			continue
		}

		inner = append(inner, s.renderBlockSlice(children[index+1:idx])...)
		closeStart := s.blockOffset(htmlNode, match.pos)
		closeEnd := s.blockOffset(htmlNode, match.pos+match.tag.Len)
		closing := s.nodeRange(htmlNode)
		inner = append(inner, s.renderSubDocument(closing.Start, closeStart)...)

		views = append(views, s.renderComponent(tag, inner, Range{Start: r.Start, End: closeEnd}))
		if strings.TrimSpace(closingRaw[match.pos+match.tag.Len:]) != "" {
			views = append(views, s.renderSubDocument(closeEnd, closing.End)...)
		}
		return views, idx - index + 1
	}

	s.addWarning(WarningUnmatchedTag, tag.Name, r, "unclosed tag rendered without following blocks")
	return []V{s.renderComponent(tag, inner, r)}, 1
}

// closingTag finds the closing tag named name that brings depth open tags
// down to zero.
func closingTag(raw, name string, depth int) (tagMatch, bool) {
	for _, match := range findTags(raw, name) {
		switch {
		case match.tag.Closing:
			depth--
			if depth == 0 {
				return match, true
			}
		case !match.tag.SelfClosing:
			depth++
		}
	}
	return tagMatch{}, false
}

// renderRawHTMLAt renders the raw inline HTML at children[index]. An opening
// tag of a registered component takes the siblings up to its closing tag as
// children.
func (s *state[V, H, S]) renderRawHTMLAt(children []ast.Node, index int, node *ast.RawHTML) (views []V, consumed int) {
	raw := s.rawHTMLText(node)
	tag, ok := parseCustomTag(raw)
	if !ok || tag.Len != len(raw) || !s.props.Components.Has(tag.Name) {
		return []V{s.renderRawHTML(node)}, 1
	}

	r := s.nodeRange(node)
	switch {
	case tag.Closing:
		s.addWarning(WarningUnmatchedTag, tag.Name, r, "closing tag without matching opening tag")
		return nil, 1
	case tag.SelfClosing:
		return []V{s.renderComponent(tag, nil, r)}, 1
	}

	depth := 1
	for idx := index + 1; idx < len(children); idx++ {
		other, ok := children[idx].(*ast.RawHTML)
		if !ok {
			continue
		}
		otherTag, ok := parseCustomTag(s.rawHTMLText(other))
		if !ok || otherTag.Name != tag.Name {
			continue
		}
		switch {
		case otherTag.Closing:
			depth--
		case !otherTag.SelfClosing:
			depth++
		}
		if depth == 0 {
			inner := s.renderInlineSlice(children[index+1 : idx])
			return []V{s.renderComponent(tag, inner, r.union(s.nodeRange(other)))}, idx - index + 1
		}
	}

	s.addWarning(WarningUnmatchedTag, tag.Name, r, "unclosed tag rendered without children")
	return []V{s.renderComponent(tag, nil, r)}, 1
}

// renderComponent calls the registered component for tag. A returned error
// becomes an inline error placeholder. Panics are not recovered.
func (s *state[V, H, S]) renderComponent(tag customTag, children []V, r Range) V {
	fn, _ := s.props.Components.Get(tag.Name)
	s.tracef("component %s %s", tag.Name, r)

	view, err := fn(s.ctx.ComponentScope(tag.Name), MdComponentProps[V]{
		Name:       tag.Name,
		Attributes: tag.Attrs,
		Children:   s.ctx.ElFragment(children),
	})
	if err != nil {
		s.addWarning(WarningComponentFailed, tag.Name, r, err.Error())
		return s.errorView(tag.Name, r, err)
	}
	return view
}

func (s *state[V, H, S]) renderRawHTMLBlock(node *ast.HTMLBlock) V {
	return s.ctx.ElSpanWithInnerHTML(s.htmlBlockText(node), s.attrs(s.nodeRange(node)))
}

func (s *state[V, H, S]) htmlBlockSegments(node *ast.HTMLBlock) []text.Segment {
	lines := node.Lines()
	segments := make([]text.Segment, 0, lines.Len()+1)
	for i := 0; i < lines.Len(); i++ {
		segments = append(segments, lines.At(i))
	}
	if node.HasClosure() {
		segments = append(segments, node.ClosureLine)
	}
	return segments
}

func (s *state[V, H, S]) htmlBlockText(node *ast.HTMLBlock) string {
	var sb strings.Builder
	for _, segment := range s.htmlBlockSegments(node) {
		sb.Write(segment.Value(s.source))
	}
	return sb.String()
}

// blockOffset maps an offset into htmlBlockText(node) back to the source.
func (s *state[V, H, S]) blockOffset(node *ast.HTMLBlock, offset int) int {
	segments := s.htmlBlockSegments(node)
	if len(segments) == 0 {
		return 0
	}
	for _, segment := range segments {
		if offset < segment.Len() {
			return segment.Start + offset
		}
		offset -= segment.Len()
	}
	return segments[len(segments)-1].Stop
}
