package mdrender

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"go.abhg.dev/goldmark/wikilink"
)

func (s *state[V, H, S]) renderLink(node *ast.Link) V {
	_, reference := s.linkRange(s.childrenRange(node), false)
	linkType := LinkInline
	if reference {
		linkType = LinkReference
	}
	return s.link(node, LinkDescription[V]{
		URL:     string(node.Destination),
		Title:   string(node.Title),
		Content: s.ctx.ElFragment(s.renderInlines(node)),
		Type:    linkType,
	})
}

func (s *state[V, H, S]) renderImage(node *ast.Image) V {
	_, reference := s.linkRange(s.childrenRange(node), true)
	linkType := LinkInline
	if reference {
		linkType = LinkReference
	}
	if !s.props.CustomLinks {
		return s.ctx.ElImg(string(node.Destination), s.plainText(node))
	}
	return s.link(node, LinkDescription[V]{
		URL:     string(node.Destination),
		Title:   string(node.Title),
		Content: s.ctx.ElText(s.plainText(node)),
		Type:    linkType,
		Image:   true,
	})
}

func (s *state[V, H, S]) renderAutoLink(node *ast.AutoLink) V {
	url := string(node.URL(s.source))
	linkType := LinkAutolink
	if node.AutoLinkType == ast.AutoLinkEmail {
		linkType = LinkEmail
		if !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
	}
	return s.link(node, LinkDescription[V]{
		URL:     url,
		Content: s.ctx.ElText(string(node.Label(s.source))),
		Type:    linkType,
	})
}

func (s *state[V, H, S]) renderWikilink(node *wikilink.Node) V {
	target := string(node.Target)
	if len(node.Fragment) > 0 {
		target += "#" + string(node.Fragment)
	}

	if node.Embed && !s.props.CustomLinks {
		return s.ctx.ElImg(target, s.plainText(node))
	}

	content := s.ctx.ElText(string(node.Target))
	if node.HasChildren() {
		content = s.ctx.ElFragment(s.renderInlines(node))
	}
	return s.link(node, LinkDescription[V]{
		URL:     target,
		Content: content,
		Type:    LinkWikilink,
		Image:   node.Embed,
	})
}

// link renders desc as an anchor, or through the caller's link renderer when
// custom links are enabled.
func (s *state[V, H, S]) link(node ast.Node, desc LinkDescription[V]) V {
	if !s.props.CustomLinks {
		return s.ctx.ElA(desc.Content, desc.URL)
	}

	view, err := s.ctx.RenderLinks(desc)
	if err != nil {
		r := s.nodeRange(node)
		s.addWarning(WarningLinkFailed, node.Kind().String(), r, err.Error())
		return s.errorView("link", r, err)
	}
	return view
}
