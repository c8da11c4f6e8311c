package mdrender

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"go.abhg.dev/goldmark/wikilink"
)

// nodeRange returns the source range a click on node reports. Nodes
// without source positions get an empty range.
func (s *state[V, H, S]) nodeRange(node ast.Node) Range {
	if cached, ok := s.ranges[node]; ok {
		return cached
	}
	r := s.clamp(s.computeRange(node))
	s.ranges[node] = r
	return r
}

func (s *state[V, H, S]) computeRange(node ast.Node) Range {
	switch typed := node.(type) {
	case *ast.Text:
		return Range{Start: typed.Segment.Start, End: typed.Segment.Stop}
	case *ast.RawHTML:
		if typed.Segments == nil || typed.Segments.Len() == 0 {
			return Range{}
		}
		return Range{
			Start: typed.Segments.At(0).Start,
			End:   typed.Segments.At(typed.Segments.Len() - 1).Stop,
		}
	case *ast.HTMLBlock:
		r := s.linesRange(typed)
		if typed.HasClosure() {
			r = r.union(s.trimRange(Range{Start: typed.ClosureLine.Start, End: typed.ClosureLine.Stop}))
		}
		return r
	case *ast.FencedCodeBlock:
		return s.fencedCodeRange(typed)
	case *ast.ThematicBreak:
		return Range{}
	case *ast.Heading:
		r := s.linesRange(typed).union(s.childrenRange(typed))
		if !r.IsEmpty() {
			r.Start = s.lineStart(r.Start)
		}
		return r
	case *ast.Blockquote, *ast.List, *ast.ListItem:
		r := s.childrenRange(node)
		if !r.IsEmpty() {
			r.Start = s.lineStart(r.Start)
		}
		return r
	case *ast.Emphasis:
		return s.extendDelimiters(s.childrenRange(typed), typed.Level, "*_")
	case *extast.Strikethrough:
		r := s.childrenRange(typed)
		for _, width := range []int{2, 1} {
			if extended := s.extendDelimiters(r, width, "~"); extended != r {
				return extended
			}
		}
		return r
	case *ast.CodeSpan:
		return s.codeSpanRange(typed)
	case *ast.Link:
		r, _ := s.linkRange(s.childrenRange(typed), false)
		return r
	case *ast.Image:
		r, _ := s.linkRange(s.childrenRange(typed), true)
		return r
	case *wikilink.Node:
		return s.wikilinkRange(s.childrenRange(typed))
	}

	r := s.childrenRange(node)
	if node.Type() == ast.TypeBlock {
		r = r.union(s.linesRange(node))
	}
	return r
}

func (s *state[V, H, S]) childrenRange(node ast.Node) Range {
	var r Range
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		r = r.union(s.nodeRange(child))
	}
	return r
}

// linesRange spans from the first to the last line of a block, without
// trailing whitespace. Only block nodes carry lines.
func (s *state[V, H, S]) linesRange(node ast.Node) Range {
	if node.Type() != ast.TypeBlock {
		return Range{}
	}
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return Range{}
	}
	return s.trimRange(Range{Start: lines.At(0).Start, End: lines.At(lines.Len() - 1).Stop})
}

// fencedCodeRange covers both fences. An unclosed fence runs to the end of
// its last line.
func (s *state[V, H, S]) fencedCodeRange(node *ast.FencedCodeBlock) Range {
	lines := node.Lines()
	var r Range
	switch {
	case node.Info != nil:
		r.Start = s.lineStart(node.Info.Segment.Start)
		r.End = s.lineEnd(node.Info.Segment.Start)
	case lines.Len() > 0:
		r.Start = s.lineStart(s.lineStart(lines.At(0).Start) - 1)
		r.End = lines.At(0).Start
	default:
		return Range{}
	}
	if lines.Len() > 0 {
		r.End = lines.At(lines.Len() - 1).Stop
	}
	// closing fence
	if r.End < len(s.source) {
		r.End = s.lineEnd(r.End)
	}
	return s.trimRange(r)
}

func (s *state[V, H, S]) codeSpanRange(node *ast.CodeSpan) Range {
	r := s.childrenRange(node)
	if r.IsEmpty() {
		return r
	}
	start, end := r.Start, r.End
	if start > 0 && s.source[start-1] == ' ' && end < len(s.source) && s.source[end] == ' ' {
		start--
		end++
	}
	ticks := 0
	for start-ticks > 0 && s.source[start-ticks-1] == '`' {
		ticks++
	}
	if ticks == 0 || !bytes.HasPrefix(s.source[end:], bytes.Repeat([]byte{'`'}, ticks)) {
		return r
	}
	return Range{Start: start - ticks, End: end + ticks}
}

// extendDelimiters grows r over width delimiter characters on both sides
// when the same character from chars is present there.
func (s *state[V, H, S]) extendDelimiters(r Range, width int, chars string) Range {
	if r.IsEmpty() || r.Start < width || r.End+width > len(s.source) {
		return r
	}
	delim := s.source[r.Start-1]
	if bytes.IndexByte([]byte(chars), delim) < 0 {
		return r
	}
	for idx := 1; idx <= width; idx++ {
		if s.source[r.Start-idx] != delim || s.source[r.End+idx-1] != delim {
			return r
		}
	}
	return Range{Start: r.Start - width, End: r.End + width}
}

// linkRange extends the range of a link's text over its brackets and
// destination. reference is true for [text][label] and [text] forms.
func (s *state[V, H, S]) linkRange(text Range, image bool) (r Range, reference bool) {
	if text.IsEmpty() || text.Start == 0 || s.source[text.Start-1] != '[' {
		return text, false
	}
	r = Range{Start: text.Start - 1, End: text.End}
	if image {
		if r.Start == 0 || s.source[r.Start-1] != '!' {
			return text, false
		}
		r.Start--
	}
	closing := bytes.IndexByte(s.source[text.End:], ']')
	if closing < 0 {
		return text, false
	}
	r.End = text.End + closing + 1

	if r.End < len(s.source) {
		switch s.source[r.End] {
		case '(':
			if end := matchingParen(s.source, r.End); end > 0 {
				r.End = end
				return r, false
			}
		case '[':
			if end := bytes.IndexByte(s.source[r.End:], ']'); end >= 0 {
				r.End += end + 1
			}
		}
	}
	return r, true
}

// matchingParen returns the offset just past the parenthesis closing the one
// at open, or -1.
func matchingParen(source []byte, open int) int {
	depth := 0
	escaped := false
	for idx := open; idx < len(source); idx++ {
		ch := source[idx]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth == 0 {
				return idx + 1
			}
		case ch == '\n' && idx+1 < len(source) && source[idx+1] == '\n':
			return -1
		}
	}
	return -1
}

func (s *state[V, H, S]) wikilinkRange(label Range) Range {
	if label.IsEmpty() {
		return label
	}
	lineStart := s.lineStart(label.Start)
	open := bytes.LastIndex(s.source[lineStart:label.Start], []byte("[["))
	closing := bytes.Index(s.source[label.End:s.lineEnd(label.End)], []byte("]]"))
	if open < 0 || closing < 0 {
		return label
	}
	r := Range{Start: lineStart + open, End: label.End + closing + 2}
	if r.Start > 0 && s.source[r.Start-1] == '!' {
		r.Start--
	}
	return r
}

func (s *state[V, H, S]) lineStart(pos int) int {
	if pos <= 0 {
		return 0
	}
	pos = min(pos, len(s.source))
	return bytes.LastIndexByte(s.source[:pos], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line at pos.
func (s *state[V, H, S]) lineEnd(pos int) int {
	if pos >= len(s.source) {
		return len(s.source)
	}
	idx := bytes.IndexByte(s.source[pos:], '\n')
	if idx < 0 {
		return len(s.source)
	}
	return pos + idx + 1
}

func (s *state[V, H, S]) trimRange(r Range) Range {
	r = s.clamp(r)
	for r.End > r.Start && isTrailingSpace(s.source[r.End-1]) {
		r.End--
	}
	return r
}

func (s *state[V, H, S]) clamp(r Range) Range {
	r.Start = min(max(r.Start, 0), len(s.source))
	r.End = min(max(r.End, r.Start), len(s.source))
	return r
}

func isTrailingSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
