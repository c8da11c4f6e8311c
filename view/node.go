package view

import "strings"

// Kind discriminates the node variants of a view tree.
type Kind int

const (
	KindElement Kind = iota + 1
	KindText
	KindFragment
	KindRawHTML
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindFragment:
		return "fragment"
	case KindRawHTML:
		return "raw"
	default:
		return "unknown"
	}
}

// Attr is a single element attribute. Order of attributes is preserved.
type Attr struct {
	Key string
	Val string
}

// Node is a view tree node owned by a Document once mounted.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node

	parent  *Node
	onClick EventHandler[*MouseEvent]
}

// El creates an element node and adopts the given children.
func El(tag string, children ...*Node) *Node {
	n := &Node{Kind: KindElement, Tag: tag}
	n.Append(children...)
	return n
}

// Text creates a text node. The text is escaped when rendered.
func Text(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Raw creates a node whose text is emitted as unescaped markup.
func Raw(markup string) *Node {
	return &Node{Kind: KindRawHTML, Text: markup}
}

// Fragment groups children without introducing an element.
func Fragment(children ...*Node) *Node {
	n := &Node{Kind: KindFragment}
	n.Append(children...)
	return n
}

// Append adopts children, skipping nil entries.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.parent = n
		n.Children = append(n.Children, child)
	}
	return n
}

// SetAttr sets an attribute, replacing an earlier value with the same key.
func (n *Node) SetAttr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// Attr returns the value of an attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// OnClick installs the click handler of the node.
func (n *Node) OnClick(handler EventHandler[*MouseEvent]) *Node {
	n.onClick = handler
	return n
}

// Clickable reports whether a click handler is installed.
func (n *Node) Clickable() bool {
	return n.onClick != nil
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first node in depth-first order matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if pred(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// FindAll returns all nodes matching pred in depth-first order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var found []*Node
	n.Walk(func(node *Node) bool {
		if pred(node) {
			found = append(found, node)
		}
		return true
	})
	return found
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(node *Node) bool {
		if node.Kind == KindText {
			sb.WriteString(node.Text)
		}
		return true
	})
	return sb.String()
}

// IsTag matches element nodes with the given tag.
func IsTag(tag string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Kind == KindElement && n.Tag == tag
	}
}

// HasText matches text nodes with exactly the given text.
func HasText(text string) func(*Node) bool {
	return func(n *Node) bool {
		return n.Kind == KindText && n.Text == text
	}
}
