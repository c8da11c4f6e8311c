package mdrender

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/wikilink"
)

type parserKey struct {
	options   Options
	wikilinks bool
}

var parsers sync.Map // parserKey -> parser.Parser

func markdownParser(options Options, wikilinks bool) parser.Parser {
	key := parserKey{options: options, wikilinks: wikilinks}
	if cached, ok := parsers.Load(key); ok {
		return cached.(parser.Parser)
	}
	built, _ := parsers.LoadOrStore(key, newMarkdownParser(options, wikilinks))
	return built.(parser.Parser)
}

func newMarkdownParser(options Options, wikilinks bool) parser.Parser {
	var extensions []goldmark.Extender
	if options.Has(OptionTables) {
		extensions = append(extensions, extension.Table)
	}
	if options.Has(OptionStrikethrough) {
		extensions = append(extensions, extension.Strikethrough)
	}
	if options.Has(OptionTaskLists) {
		extensions = append(extensions, extension.TaskList)
	}
	if options.Has(OptionFootnotes) {
		extensions = append(extensions, extension.Footnote)
	}
	if options.Has(OptionSmartPunctuation) {
		extensions = append(extensions, extension.Typographer)
	}
	if options.Has(OptionLinkify) {
		extensions = append(extensions, extension.Linkify)
	}
	if options.Has(OptionDefinitionLists) {
		extensions = append(extensions, extension.DefinitionList)
	}
	if wikilinks {
		extensions = append(extensions, &wikilink.Extender{})
	}

	var parserOptions []parser.Option
	if options.Has(OptionHeadingAttributes) {
		parserOptions = append(parserOptions, parser.WithAttribute())
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parserOptions...),
	).Parser()
}
