package markdown

import (
	"fmt"
	"log/slog"

	"github.com/rgonek/md-view/markdown/debug"
	"github.com/rgonek/md-view/mdrender"
	"github.com/rgonek/md-view/view"
)

// Props configures a Markdown view.
type Props struct {
	Source string `json:"source"`
	// OnClick receives every click on rendered markdown, with the source
	// range of the innermost clicked construct.
	OnClick view.EventHandler[MarkdownMouseEvent] `json:"-"`
	// RenderLinks, when set, renders every link and image instead of the
	// default anchors.
	RenderLinks HTMLCallback[LinkDescription] `json:"-"`

	Theme          string            `json:"theme,omitempty"`
	Wikilinks      bool              `json:"wikilinks,omitempty"`
	HardLineBreaks bool              `json:"hardLineBreaks,omitempty"`
	ParseOptions   *mdrender.Options `json:"parseOptions,omitempty"`
	Components     *CustomComponents `json:"-"`

	// Frontmatter receives the raw frontmatter of the source, empty when
	// there is none.
	Frontmatter *view.Shared[string] `json:"-"`
	// Debug enables the render trace. The slot is only written when the
	// trace changes.
	Debug  *view.Shared[debug.EventInfo] `json:"-"`
	Logger *slog.Logger                  `json:"-"`
}

func (p Props) applyDefaults() Props {
	if p.Theme == "" {
		p.Theme = mdrender.DefaultTheme
	}
	if p.Components == nil {
		p.Components = NewComponents()
	}
	return p
}

func (p Props) clone() Props {
	cloned := p
	if p.ParseOptions != nil {
		options := *p.ParseOptions
		cloned.ParseOptions = &options
	}
	return cloned
}

// Validate checks that props values are valid.
func (p Props) Validate() error {
	if p.Theme != "" {
		if _, err := mdrender.ThemeCSS(p.Theme); err != nil {
			return fmt.Errorf("invalid theme: %w", err)
		}
	}

	if p.ParseOptions != nil {
		known, err := mdrender.ParseOptionNames(p.ParseOptions.Names())
		if err != nil || known != *p.ParseOptions {
			return fmt.Errorf("invalid parseOptions %#x", uint16(*p.ParseOptions))
		}
	}

	return nil
}
