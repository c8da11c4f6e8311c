package mdrender

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/wikilink"
	"golang.org/x/net/html"
)

func (s *state[V, H, S]) renderInlines(parent ast.Node) []V {
	return s.renderInlineSlice(childNodes(parent))
}

func (s *state[V, H, S]) renderInlineSlice(children []ast.Node) []V {
	var content []V
	for index := 0; index < len(children); {
		if raw, ok := children[index].(*ast.RawHTML); ok {
			views, consumed := s.renderRawHTMLAt(children, index, raw)
			content = append(content, views...)
			index += consumed
			continue
		}
		content = append(content, s.renderInline(children[index])...)
		index++
	}
	return content
}

func (s *state[V, H, S]) renderInline(node ast.Node) []V {
	switch typed := node.(type) {
	case *ast.Text:
		return s.renderText(typed)
	case *ast.String:
		return []V{s.ctx.ElText(s.stringValue(typed))}
	case *ast.CodeSpan:
		return []V{s.element(Code, typed, []V{s.ctx.ElText(s.codeSpanText(typed))})}
	case *ast.Emphasis:
		element := Italics
		if typed.Level >= 2 {
			element = Bold
		}
		return []V{s.element(element, typed, s.renderInlines(typed))}
	case *extast.Strikethrough:
		return []V{s.element(StrikeThrough, typed, s.renderInlines(typed))}
	case *ast.Link:
		return []V{s.renderLink(typed)}
	case *ast.Image:
		return []V{s.renderImage(typed)}
	case *ast.AutoLink:
		return []V{s.renderAutoLink(typed)}
	case *wikilink.Node:
		return []V{s.renderWikilink(typed)}
	case *ast.RawHTML:
		return []V{s.renderRawHTML(typed)}
	case *extast.TaskCheckBox:
		return []V{s.ctx.ElInputCheckbox(typed.IsChecked, ElementAttributes[H]{})}
	case *extast.FootnoteLink:
		label := s.ctx.ElText(fmt.Sprintf("[%d]", typed.Index))
		link := s.ctx.ElA(label, fmt.Sprintf("#fn:%d", typed.Index))
		return []V{s.ctx.ElWithAttributes(Span, link, ElementAttributes[H]{Classes: []string{"footnote-ref"}})}
	case *extast.FootnoteBacklink:
		return nil
	default:
		return []V{s.ctx.ElFragment(s.renderInlines(node))}
	}
}

// renderText wraps a text run in a span reporting its own range, followed by
// the line break that ends it.
func (s *state[V, H, S]) renderText(node *ast.Text) []V {
	var out []V
	value := node.Segment.Value(s.source)
	if len(value) > 0 {
		r := s.nodeRange(node)
		s.tracef("text %s", r)
		content := string(value)
		if !node.IsRaw() {
			content = unescapeText(value)
		}
		out = append(out, s.ctx.ElWithAttributes(Span, s.ctx.ElText(content), s.attrs(r)))
	}

	switch {
	case node.HardLineBreak():
		out = append(out, s.ctx.ElBr())
	case node.SoftLineBreak():
		if s.props.HardLineBreaks {
			out = append(out, s.ctx.ElBr())
		} else {
			out = append(out, s.ctx.ElText(" "))
		}
	}
	return out
}

func (s *state[V, H, S]) stringValue(node *ast.String) string {
	switch {
	case node.IsCode():
		// typographer output such as &ldquo;
		return html.UnescapeString(string(node.Value))
	case node.IsRaw():
		return string(node.Value)
	default:
		return unescapeText(node.Value)
	}
}

func (s *state[V, H, S]) codeSpanText(node *ast.CodeSpan) string {
	var sb strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			sb.Write(typed.Segment.Value(s.source))
		case *ast.String:
			sb.Write(typed.Value)
		}
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

// plainText flattens the text below node, as used for image alt text.
func (s *state[V, H, S]) plainText(node ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := n.(type) {
		case *ast.Text:
			sb.WriteString(unescapeText(typed.Segment.Value(s.source)))
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.WriteString(s.stringValue(typed))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func (s *state[V, H, S]) renderRawHTML(node *ast.RawHTML) V {
	return s.ctx.ElSpanWithInnerHTML(s.rawHTMLText(node), s.attrs(s.nodeRange(node)))
}

func (s *state[V, H, S]) rawHTMLText(node *ast.RawHTML) string {
	var sb strings.Builder
	for i := 0; i < node.Segments.Len(); i++ {
		segment := node.Segments.At(i)
		sb.Write(segment.Value(s.source))
	}
	return sb.String()
}

func unescapeText(value []byte) string {
	return string(util.UnescapePunctuations(util.ResolveNumericReferences(util.ResolveEntityNames(value))))
}
