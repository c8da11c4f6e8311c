package mdrender

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func (s *state[V, H, S]) renderBlockSlice(children []ast.Node) []V {
	var content []V
	for index := 0; index < len(children); {
		if htmlBlock, ok := children[index].(*ast.HTMLBlock); ok {
			views, consumed := s.renderHTMLBlockAt(children, index, htmlBlock)
			content = append(content, views...)
			index += consumed
			continue
		}
		content = append(content, s.renderBlock(children[index]))
		index++
	}
	return content
}

func (s *state[V, H, S]) renderBlock(node ast.Node) V {
	s.tracef("start %s %s", node.Kind(), s.nodeRange(node))

	switch typed := node.(type) {
	case *ast.Document:
		return s.ctx.ElFragment(s.renderBlockSlice(childNodes(typed)))
	case *ast.Paragraph:
		return s.element(Paragraph, typed, s.renderInlines(typed))
	case *ast.TextBlock:
		return s.ctx.ElFragment(s.renderInlines(typed))
	case *ast.Heading:
		return s.renderHeading(typed)
	case *ast.Blockquote:
		return s.element(BlockQuote, typed, s.renderBlockSlice(childNodes(typed)))
	case *ast.ThematicBreak:
		return s.ctx.ElHr(ElementAttributes[H]{})
	case *ast.FencedCodeBlock:
		return s.renderCodeBlock(typed, string(typed.Language(s.source)))
	case *ast.CodeBlock:
		return s.renderCodeBlock(typed, "")
	case *ast.List:
		return s.renderList(typed)
	case *ast.ListItem:
		return s.renderListItem(typed)
	case *ast.HTMLBlock:
		return s.renderRawHTMLBlock(typed)
	case *extast.Table:
		return s.renderTable(typed)
	case *extast.FootnoteList:
		return s.renderFootnoteList(typed)
	case *extast.DefinitionList:
		return s.element(Div, typed, s.renderBlockSlice(childNodes(typed)), "definition-list")
	case *extast.DefinitionTerm:
		return s.element(Div, typed, s.renderInlines(typed), "definition-term")
	case *extast.DefinitionDescription:
		return s.element(Div, typed, s.renderBlockSlice(childNodes(typed)), "definition-description")
	default:
		nodeKind := node.Kind().String()
		s.addWarning(
			WarningUnknownNode,
			nodeKind,
			s.nodeRange(node),
			fmt.Sprintf("unsupported markdown block node: %s", nodeKind),
		)
		if first := node.FirstChild(); first != nil && first.Type() == ast.TypeInline {
			return s.ctx.ElFragment(s.renderInlines(node))
		}
		return s.ctx.ElFragment(s.renderBlockSlice(childNodes(node)))
	}
}

// renderHeading applies the {#id .class} attributes goldmark strips from
// the heading text when OptionHeadingAttributes is set.
func (s *state[V, H, S]) renderHeading(node *ast.Heading) V {
	attributes := s.attrs(s.nodeRange(node), strings.Fields(attributeString(node, "class"))...)
	attributes.ID = attributeString(node, "id")
	return s.ctx.ElWithAttributes(Heading(node.Level), s.ctx.ElFragment(s.renderInlines(node)), attributes)
}

func attributeString(node ast.Node, name string) string {
	value, ok := node.AttributeString(name)
	if !ok {
		return ""
	}
	switch typed := value.(type) {
	case []byte:
		return string(typed)
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

// renderCodeBlock renders code as pre > code. Languages chroma knows are
// split into token spans styled by the theme stylesheet.
func (s *state[V, H, S]) renderCodeBlock(node ast.Node, language string) V {
	code := s.linesText(node)

	var codeAttrs ElementAttributes[H]
	if language != "" {
		codeAttrs.Classes = []string{"language-" + language}
	}

	tokens, ok := highlight(language, code)
	if !ok {
		inner := s.ctx.ElWithAttributes(Code, s.ctx.ElText(code), codeAttrs)
		return s.ctx.ElWithAttributes(Pre, inner, s.attrs(s.nodeRange(node)))
	}

	s.mountTheme()
	spans := make([]V, 0, len(tokens))
	for _, token := range tokens {
		value := s.ctx.ElText(token.value)
		if token.class == "" {
			spans = append(spans, value)
			continue
		}
		spans = append(spans, s.ctx.ElWithAttributes(Span, value, ElementAttributes[H]{Classes: []string{token.class}}))
	}
	inner := s.ctx.ElWithAttributes(Code, s.ctx.ElFragment(spans), codeAttrs)
	return s.ctx.ElWithAttributes(Pre, inner, s.attrs(s.nodeRange(node), HighlightClass))
}

// mountTheme injects the highlighting stylesheet, at most once per render.
func (s *state[V, H, S]) mountTheme() {
	if s.themeMounted {
		return
	}
	s.themeMounted = true

	href, integrity, err := themeLink(s.props.Theme)
	if err != nil {
		s.addWarning(WarningStylesheetUnavailable, "", Range{}, err.Error())
		return
	}
	if err := s.ctx.MountDynamicLink("stylesheet", href, integrity, "anonymous"); err != nil {
		s.addWarning(WarningStylesheetUnavailable, "", Range{}, fmt.Sprintf("failed to mount theme stylesheet: %v", err))
		return
	}
	s.tracef("stylesheet %s", s.props.Theme)
}

func (s *state[V, H, S]) linesText(node ast.Node) string {
	lines := node.Lines()
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(s.source))
	}
	return sb.String()
}

func (s *state[V, H, S]) renderFootnoteList(list *extast.FootnoteList) V {
	items := make([]V, 0, list.ChildCount())
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		footnote, ok := child.(*extast.Footnote)
		if !ok {
			continue
		}
		items = append(items, s.element(Li, footnote, s.renderBlockSlice(childNodes(footnote)), "footnote"))
	}
	ordered := s.ctx.ElWithAttributes(Ol(1), s.ctx.ElFragment(items), ElementAttributes[H]{})
	return s.ctx.ElWithAttributes(Div, ordered, ElementAttributes[H]{Classes: []string{"footnotes"}})
}
