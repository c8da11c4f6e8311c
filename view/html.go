package view

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes the HTML serialization of n to w. Fragments are flattened
// and raw nodes are written without escaping.
func Render(w io.Writer, n *Node) error {
	for _, converted := range toHTML(n) {
		if err := html.Render(w, converted); err != nil {
			return fmt.Errorf("failed to render html: %w", err)
		}
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(n *Node) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderDocument writes a complete HTML page with the mounted head links.
func RenderDocument(w io.Writer, doc *Document, title string) error {
	head := El("head",
		El("meta").SetAttr("charset", "utf-8"),
		El("title", Text(title)),
	)
	head.Append(doc.Head...)
	page := El("html", head, El("body", doc.Body))

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	if err := Render(w, page); err != nil {
		return err
	}
	// the page wrapper adopted the mounted nodes; hand them back.
	for _, link := range doc.Head {
		link.parent = nil
	}
	if doc.Body != nil {
		doc.Body.parent = nil
	}
	return nil
}

// IsVoidElement reports whether tag never has children in HTML.
func IsVoidElement(tag string) bool {
	switch atom.Lookup([]byte(tag)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Link, atom.Meta, atom.Source, atom.Track, atom.Wbr:
		return true
	default:
		return false
	}
}

func toHTML(n *Node) []*html.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case KindText:
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	case KindRawHTML:
		return []*html.Node{{Type: html.RawNode, Data: n.Text}}
	case KindFragment:
		var out []*html.Node
		for _, child := range n.Children {
			out = append(out, toHTML(child)...)
		}
		return out
	case KindElement:
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
		}
		for _, attr := range n.Attrs {
			el.Attr = append(el.Attr, html.Attribute{Key: attr.Key, Val: attr.Val})
		}
		if !IsVoidElement(n.Tag) {
			for _, child := range n.Children {
				for _, converted := range toHTML(child) {
					el.AppendChild(converted)
				}
			}
		}
		return []*html.Node{el}
	default:
		return nil
	}
}
