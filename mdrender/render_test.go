package mdrender

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const richDocument = `# Title

Some *emphasis* and ` + "`code`" + ` and [link](https://example.com) text.

> quote line

- item one
- item **two**

1. first
2. second

| a | b |
|:-:|---|
| 1 | 2 |

---

~~gone~~ <kbd>Ctrl</kbd>
`

func TestRenderEmptyDocument(t *testing.T) {
	ctx := newTestContext()
	view, result := render(t, ctx, "")
	assert.Empty(t, flatten(view))
	assert.Empty(t, result.Warnings)
}

func TestRenderHeadingAndParagraph(t *testing.T) {
	ctx := newTestContext()
	view, result := render(t, ctx, "# Heading\n\nclick **here** now\n")
	assert.Empty(t, result.Warnings)

	heading := view.find(byTag("h1"))
	require.NotNil(t, heading)
	assert.Equal(t, "Heading", heading.textContent())
	require.NotNil(t, heading.Click)
	assert.Equal(t, Range{Start: 0, End: 9}, *heading.Click)

	paragraph := view.find(byTag("p"))
	require.NotNil(t, paragraph)
	assert.Equal(t, "click here now", paragraph.textContent())
	assert.Equal(t, Range{Start: 11, End: 29}, *paragraph.Click)

	bold := paragraph.find(byTag("strong"))
	require.NotNil(t, bold)
	assert.Equal(t, Range{Start: 17, End: 25}, *bold.Click)
}

func TestTextClickReportsExactSourceRange(t *testing.T) {
	source := "# Heading\n\nclick **here** now\n"
	ctx := newTestContext()
	view, _ := render(t, ctx, source)

	here := view.find(textSpan("here"))
	require.NotNil(t, here)
	require.NotNil(t, here.Click)
	assert.Equal(t, Range{Start: 19, End: 23}, *here.Click)
	assert.Equal(t, "here", here.Click.Slice(source))
}

func TestTextSpansSliceToTheirText(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, richDocument)

	spans := view.findAll(func(n *testNode) bool {
		return n.Tag == "span" && n.Click != nil && len(n.Children) == 1 && n.Children[0].Tag == "#text"
	})
	require.NotEmpty(t, spans)
	for _, span := range spans {
		assert.Equal(t, span.Children[0].Text, span.Click.Slice(richDocument))
	}
}

func TestClickRangesAreValidAndNested(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, richDocument)

	clickable := 0
	view.walk(func(node *testNode, ancestors []*testNode) {
		if node.Click == nil {
			return
		}
		clickable++
		r := *node.Click
		assert.False(t, r.IsEmpty(), "empty range on %s", node.Tag)
		assert.GreaterOrEqual(t, r.Start, 0)
		assert.LessOrEqual(t, r.End, len(richDocument))
		for _, ancestor := range ancestors {
			if ancestor.Click == nil {
				continue
			}
			assert.True(t, ancestor.Click.Contains(r), "%s %s not inside %s %s", node.Tag, r, ancestor.Tag, *ancestor.Click)
		}
	})
	assert.Greater(t, clickable, 10)
}

func TestRuleHasNoClickHandler(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, "above\n\n---\n\nbelow\n")

	rule := view.find(byTag("hr"))
	require.NotNil(t, rule)
	assert.Nil(t, rule.Click)
}

func TestLineBreaks(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		hardBreaks bool
		wantBreaks int
	}{
		{name: "soft break becomes space", source: "one\ntwo\n", wantBreaks: 0},
		{name: "soft break as hard break", source: "one\ntwo\n", hardBreaks: true, wantBreaks: 1},
		{name: "hard break", source: "one  \ntwo\n", wantBreaks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			ctx.props.HardLineBreaks = tt.hardBreaks
			view, _ := render(t, ctx, tt.source)

			assert.Len(t, view.findAll(byTag("br")), tt.wantBreaks)
			paragraph := view.find(byTag("p"))
			require.NotNil(t, paragraph)
			if tt.wantBreaks == 0 {
				assert.Equal(t, "one two", paragraph.textContent())
			} else {
				assert.Equal(t, "onetwo", paragraph.textContent())
			}
		})
	}
}

func TestRenderLists(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, "3. three\n4. four\n\n- [x] done\n- [ ] open\n")

	ordered := view.find(byTag("ol"))
	require.NotNil(t, ordered)
	assert.Equal(t, 3, ordered.Element.Start)
	assert.Len(t, ordered.findAll(byTag("li")), 2)

	boxes := view.findAll(byTag("input"))
	require.Len(t, boxes, 2)
	assert.True(t, boxes[0].Checked)
	assert.False(t, boxes[1].Checked)
	assert.Nil(t, boxes[0].Click)
	assert.Len(t, view.findAll(byClass("task-list-item")), 2)
}

func TestRenderTableAlignment(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, "| a | b |\n|:-:|---|\n| 1 | 2 |\n")

	require.NotNil(t, view.find(byTag("table")))
	headers := view.findAll(byTag("th"))
	require.Len(t, headers, 2)
	assert.Equal(t, "text-align: center", headers[0].Style)
	assert.Empty(t, headers[1].Style)

	cells := view.findAll(byTag("td"))
	require.Len(t, cells, 2)
	assert.Equal(t, "1", cells[0].textContent())
	assert.Equal(t, "text-align: center", cells[0].Style)
	require.NotNil(t, view.find(byTag("tbody")))
}

func TestRenderInlineCodeAndStrikethrough(t *testing.T) {
	source := "use `fmt.Println` not ~~print~~\n"
	ctx := newTestContext()
	view, _ := render(t, ctx, source)

	code := view.find(byTag("code"))
	require.NotNil(t, code)
	assert.Equal(t, "fmt.Println", code.textContent())
	assert.Equal(t, "`fmt.Println`", code.Click.Slice(source))

	strike := view.find(byTag("s"))
	require.NotNil(t, strike)
	assert.Equal(t, "~~print~~", strike.Click.Slice(source))
}

func TestRenderRawInlineHTMLIsUnescaped(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, "press <kbd>Ctrl</kbd>\n")

	raws := view.findAll(func(n *testNode) bool { return n.InnerRaw != "" })
	require.Len(t, raws, 2)
	assert.Equal(t, "<kbd>", raws[0].InnerRaw)
	assert.Equal(t, "</kbd>", raws[1].InnerRaw)
}

func TestRenderHTMLBlockFallsBackToRawSpan(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, "<div class=\"note\">\nhello\n</div>\n")

	raw := view.find(func(n *testNode) bool { return n.InnerRaw != "" })
	require.NotNil(t, raw)
	assert.Equal(t, "<div class=\"note\">\nhello\n</div>\n", raw.InnerRaw)
}

func TestRenderCodeBlockHighlighting(t *testing.T) {
	source := "```go\npackage main\n\nfunc main() {}\n```\n\n```go\nvar x = 1\n```\n"
	ctx := newTestContext()
	view, result := render(t, ctx, source)
	assert.Empty(t, result.Warnings)

	blocks := view.findAll(byTag("pre"))
	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].hasClass(HighlightClass))
	assert.Equal(t, "```go\npackage main\n\nfunc main() {}\n```", blocks[0].Click.Slice(source))

	code := blocks[0].find(byTag("code"))
	require.NotNil(t, code)
	assert.Equal(t, []string{"language-go"}, code.Classes)
	assert.Equal(t, "package main\n\nfunc main() {}\n", code.textContent())
	assert.NotNil(t, code.find(byClass("kd")))

	require.Len(t, ctx.links, 1, "stylesheet is mounted once per render")
	assert.True(t, strings.HasPrefix(ctx.links[0], "data:text/css;base64,"))
	assert.True(t, strings.HasPrefix(ctx.integrities[0], "sha384-"))
}

func TestRenderCodeBlockUnknownLanguage(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, "```nosuchlang\nplain text\n```\n\n    indented\n")

	blocks := view.findAll(byTag("pre"))
	require.Len(t, blocks, 2)
	assert.False(t, blocks[0].hasClass(HighlightClass))
	assert.Equal(t, "plain text\n", blocks[0].textContent())
	assert.Equal(t, "indented\n", blocks[1].textContent())
	assert.Empty(t, ctx.links)
}

func TestRenderStylesheetFailuresAreWarnings(t *testing.T) {
	source := "```go\nvar x = 1\n```\n"

	t.Run("unknown theme", func(t *testing.T) {
		ctx := newTestContext()
		ctx.props.Theme = "no-such-theme"
		view, result := render(t, ctx, source)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningStylesheetUnavailable, result.Warnings[0].Type)
		assert.NotNil(t, view.find(byClass("kd")))
	})

	t.Run("mount failure", func(t *testing.T) {
		ctx := newTestContext()
		ctx.mountErr = errors.New("no document head")
		_, result := render(t, ctx, source)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0].Message, "no document head")
	})
}

func TestRenderFrontmatter(t *testing.T) {
	source := "---\ntitle: Hello\n---\n# Body\n"
	ctx := newTestContext()
	view, _ := render(t, ctx, source)

	assert.Equal(t, []string{"title: Hello\n"}, ctx.frontmatter)
	assert.Nil(t, view.find(byTag("hr")))
	heading := view.find(byTag("h1"))
	require.NotNil(t, heading)
	assert.Equal(t, "# Body", heading.Click.Slice(source))
}

func TestRenderFrontmatterDisabled(t *testing.T) {
	options := DefaultOptions &^ OptionFrontmatter
	ctx := newTestContext()
	ctx.props.ParseOptions = &options
	view, _ := render(t, ctx, "---\ntitle: Hello\n---\n# Body\n")

	assert.Empty(t, ctx.frontmatter)
	assert.NotNil(t, view.find(byTag("hr")))
}

func TestRenderLinks(t *testing.T) {
	source := "[inline](https://a.example \"A\") [ref][r] <https://auto.example> <me@example.com>\n\n[r]: https://r.example\n"

	t.Run("anchors", func(t *testing.T) {
		ctx := newTestContext()
		view, _ := render(t, ctx, source)
		anchors := view.findAll(byTag("a"))
		require.Len(t, anchors, 4)
		assert.Equal(t, "https://a.example", anchors[0].Href)
		assert.Equal(t, "https://r.example", anchors[1].Href)
		assert.Equal(t, "https://auto.example", anchors[2].Href)
		assert.Equal(t, "mailto:me@example.com", anchors[3].Href)
		assert.Equal(t, "me@example.com", anchors[3].textContent())
	})

	t.Run("custom renderer", func(t *testing.T) {
		ctx := newTestContext()
		ctx.props.CustomLinks = true
		view, _ := render(t, ctx, source)

		require.Len(t, ctx.linkRequests, 4)
		assert.Equal(t, LinkInline, ctx.linkRequests[0].Type)
		assert.Equal(t, "A", ctx.linkRequests[0].Title)
		assert.Equal(t, LinkReference, ctx.linkRequests[1].Type)
		assert.Equal(t, LinkAutolink, ctx.linkRequests[2].Type)
		assert.Equal(t, LinkEmail, ctx.linkRequests[3].Type)
		assert.Len(t, view.findAll(byTag("custom-link")), 4)
		assert.Empty(t, view.findAll(byTag("a")))
	})

	t.Run("renderer error", func(t *testing.T) {
		ctx := newTestContext()
		ctx.props.CustomLinks = true
		ctx.linkErr = errors.New("blocked")
		view, result := render(t, ctx, "[x](https://x.example)\n")

		placeholder := view.find(byClass(ErrorClass))
		require.NotNil(t, placeholder)
		assert.Equal(t, "link: blocked", placeholder.textContent())
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningLinkFailed, result.Warnings[0].Type)
	})
}

func TestRenderImages(t *testing.T) {
	source := "![alt *text*](/img.png)\n"
	ctx := newTestContext()
	view, _ := render(t, ctx, source)

	img := view.find(byTag("img"))
	require.NotNil(t, img)
	assert.Equal(t, "/img.png", img.Src)
	assert.Equal(t, "alt text", img.Alt)

	ctx = newTestContext()
	ctx.props.CustomLinks = true
	render(t, ctx, source)
	require.Len(t, ctx.linkRequests, 1)
	assert.True(t, ctx.linkRequests[0].Image)
}

func TestRenderWikilinks(t *testing.T) {
	ctx := newTestContext()
	ctx.props.Wikilinks = true
	view, _ := render(t, ctx, "see [[Page#Section]]\n")

	anchor := view.find(byTag("a"))
	require.NotNil(t, anchor)
	assert.Equal(t, "Page#Section", anchor.Href)

	ctx = newTestContext()
	view, _ = render(t, ctx, "see [[Page]]\n")
	assert.Nil(t, view.find(byTag("a")), "wikilinks are off by default")
}

func TestRenderFootnotes(t *testing.T) {
	ctx := newTestContext()
	view, _ := render(t, ctx, "text[^1]\n\n[^1]: the note\n")

	ref := view.find(byClass("footnote-ref"))
	require.NotNil(t, ref)
	assert.Equal(t, "[1]", ref.textContent())

	notes := view.find(byClass("footnotes"))
	require.NotNil(t, notes)
	assert.Contains(t, notes.textContent(), "the note")
}

func TestRenderOptionalExtensions(t *testing.T) {
	options := DefaultOptions | OptionDefinitionLists | OptionSmartPunctuation
	ctx := newTestContext()
	ctx.props.ParseOptions = &options
	view, _ := render(t, ctx, "Term\n: Description\n\n\"quoted\"\n")

	assert.NotNil(t, view.find(byClass("definition-list")))
	assert.NotNil(t, view.find(byClass("definition-term")))
	assert.Contains(t, view.textContent(), "“quoted”")
}

func TestRenderHeadingAttributes(t *testing.T) {
	source := "# Title {#intro .big .wide}\n"

	ctx := newTestContext()
	view, _ := render(t, ctx, source)
	heading := view.find(byTag("h1"))
	require.NotNil(t, heading)
	assert.Empty(t, heading.ID)
	assert.Empty(t, heading.Classes)
	assert.Contains(t, heading.textContent(), "{#intro .big .wide}")

	options := DefaultOptions | OptionHeadingAttributes
	ctx.props.ParseOptions = &options
	view, _ = render(t, ctx, source)
	heading = view.find(byTag("h1"))
	require.NotNil(t, heading)
	assert.Equal(t, "intro", heading.ID)
	assert.Equal(t, []string{"big", "wide"}, heading.Classes)
	assert.Equal(t, "Title", heading.textContent())
	assert.NotNil(t, heading.Click)
}

func TestRenderDebugTrace(t *testing.T) {
	ctx := newTestContext()
	render(t, ctx, "hello\n")
	assert.Empty(t, ctx.debug)

	ctx.props.Debug = true
	render(t, ctx, "hello\n")
	require.Len(t, ctx.debug, 1)
	assert.Contains(t, ctx.debug[0], "start Paragraph 0..5")
	assert.Contains(t, ctx.debug[0], "text 0..5")
}

func TestRenderIsIdempotent(t *testing.T) {
	ctx := newTestContext()
	ctx.props.Components.Register("box", boxComponent)

	first, _ := render(t, ctx, richDocument+"\n<box>**bold**</box>\n")
	second, _ := render(t, ctx, richDocument+"\n<box>**bold**</box>\n")
	assert.Empty(t, cmp.Diff(first, second))
}

func TestRangeHelpers(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "cde", r.Slice("abcdefg"))
	assert.Equal(t, "c", Range{Start: 2, End: 50}.Slice("abc"))
	assert.True(t, r.Contains(Range{Start: 3, End: 5}))
	assert.False(t, r.Contains(Range{Start: 1, End: 3}))
	assert.True(t, Range{Start: 4, End: 4}.IsEmpty())
	assert.Equal(t, "2..5", r.String())
}

func TestHeadingTagPanicsOutsideRange(t *testing.T) {
	assert.Equal(t, "h6", Heading(6).Tag())
	assert.Panics(t, func() { Heading(7).Tag() })
	assert.Panics(t, func() { Heading(0).Tag() })
}
