package mdrender

import "fmt"

// ElementKind enumerates the standard markdown constructs.
type ElementKind int

const (
	ElementDiv ElementKind = iota + 1
	ElementSpan
	ElementParagraph
	ElementBlockQuote
	ElementUl
	ElementOl
	ElementLi
	ElementHeading
	ElementTable
	ElementThead
	ElementTbody
	ElementTrow
	ElementTheader
	ElementTcell
	ElementItalics
	ElementBold
	ElementStrikeThrough
	ElementPre
	ElementCode
)

var elementKindNames = map[ElementKind]string{
	ElementDiv:           "Div",
	ElementSpan:          "Span",
	ElementParagraph:     "Paragraph",
	ElementBlockQuote:    "BlockQuote",
	ElementUl:            "Ul",
	ElementOl:            "Ol",
	ElementLi:            "Li",
	ElementHeading:       "Heading",
	ElementTable:         "Table",
	ElementThead:         "Thead",
	ElementTbody:         "Tbody",
	ElementTrow:          "Trow",
	ElementTheader:       "Theader",
	ElementTcell:         "Tcell",
	ElementItalics:       "Italics",
	ElementBold:          "Bold",
	ElementStrikeThrough: "StrikeThrough",
	ElementPre:           "Pre",
	ElementCode:          "Code",
}

func (k ElementKind) String() string {
	if name, ok := elementKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ElementKind(%d)", int(k))
}

// HTMLElement is the element variant the renderer asks a Context to build.
// Level is set for headings, Start for ordered lists.
type HTMLElement struct {
	Kind  ElementKind
	Level int
	Start int
}

var (
	Div           = HTMLElement{Kind: ElementDiv}
	Span          = HTMLElement{Kind: ElementSpan}
	Paragraph     = HTMLElement{Kind: ElementParagraph}
	BlockQuote    = HTMLElement{Kind: ElementBlockQuote}
	Ul            = HTMLElement{Kind: ElementUl}
	Li            = HTMLElement{Kind: ElementLi}
	Table         = HTMLElement{Kind: ElementTable}
	Thead         = HTMLElement{Kind: ElementThead}
	Tbody         = HTMLElement{Kind: ElementTbody}
	Trow          = HTMLElement{Kind: ElementTrow}
	Theader       = HTMLElement{Kind: ElementTheader}
	Tcell         = HTMLElement{Kind: ElementTcell}
	Italics       = HTMLElement{Kind: ElementItalics}
	Bold          = HTMLElement{Kind: ElementBold}
	StrikeThrough = HTMLElement{Kind: ElementStrikeThrough}
	Pre           = HTMLElement{Kind: ElementPre}
	Code          = HTMLElement{Kind: ElementCode}
)

func Ol(start int) HTMLElement {
	return HTMLElement{Kind: ElementOl, Start: start}
}

// Heading returns a heading element. The renderer only emits levels 1 to 6.
func Heading(level int) HTMLElement {
	return HTMLElement{Kind: ElementHeading, Level: level}
}

var elementTags = map[ElementKind]string{
	ElementDiv:           "div",
	ElementSpan:          "span",
	ElementParagraph:     "p",
	ElementBlockQuote:    "blockquote",
	ElementUl:            "ul",
	ElementOl:            "ol",
	ElementLi:            "li",
	ElementTable:         "table",
	ElementThead:         "thead",
	ElementTbody:         "tbody",
	ElementTrow:          "tr",
	ElementTheader:       "th",
	ElementTcell:         "td",
	ElementItalics:       "em",
	ElementBold:          "strong",
	ElementStrikeThrough: "s",
	ElementPre:           "pre",
	ElementCode:          "code",
}

// Tag returns the HTML tag name of e. It panics on a heading level outside
// 1 to 6 or an unknown kind.
func (e HTMLElement) Tag() string {
	if e.Kind == ElementHeading {
		if e.Level < 1 || e.Level > 6 {
			panic(fmt.Sprintf("mdrender: invalid heading level %d", e.Level))
		}
		return fmt.Sprintf("h%d", e.Level)
	}
	tag, ok := elementTags[e.Kind]
	if !ok {
		panic(fmt.Sprintf("mdrender: unknown element kind %d", int(e.Kind)))
	}
	return tag
}

func (e HTMLElement) String() string {
	switch e.Kind {
	case ElementHeading:
		return fmt.Sprintf("Heading(%d)", e.Level)
	case ElementOl:
		return fmt.Sprintf("Ol(%d)", e.Start)
	default:
		return e.Kind.String()
	}
}
