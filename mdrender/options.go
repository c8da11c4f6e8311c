package mdrender

import (
	"fmt"
	"strings"
)

// Options selects the markdown extensions the parser understands.
type Options uint16

const (
	OptionTables Options = 1 << iota
	OptionStrikethrough
	OptionTaskLists
	OptionFootnotes
	OptionSmartPunctuation
	OptionLinkify
	OptionHeadingAttributes
	OptionDefinitionLists
	OptionFrontmatter
)

// DefaultOptions is used when no options are configured.
const DefaultOptions = OptionTables | OptionStrikethrough | OptionTaskLists | OptionFootnotes | OptionFrontmatter

var optionNames = []struct {
	option Options
	name   string
}{
	{OptionTables, "tables"},
	{OptionStrikethrough, "strikethrough"},
	{OptionTaskLists, "tasklists"},
	{OptionFootnotes, "footnotes"},
	{OptionSmartPunctuation, "smart-punctuation"},
	{OptionLinkify, "linkify"},
	{OptionHeadingAttributes, "heading-attributes"},
	{OptionDefinitionLists, "definition-lists"},
	{OptionFrontmatter, "frontmatter"},
}

// ParseOptionNames converts option names, as used in config files, into a
// set. Names are case insensitive.
func ParseOptionNames(names []string) (Options, error) {
	var out Options
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		found := false
		for _, entry := range optionNames {
			if entry.name == name {
				out |= entry.option
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown parse option %q", raw)
		}
	}
	return out, nil
}

// AllOptionNames lists every option name.
func AllOptionNames() []string {
	names := make([]string, 0, len(optionNames))
	for _, entry := range optionNames {
		names = append(names, entry.name)
	}
	return names
}

func (o Options) Has(option Options) bool {
	return o&option == option
}

func (o Options) Names() []string {
	var names []string
	for _, entry := range optionNames {
		if o.Has(entry.option) {
			names = append(names, entry.name)
		}
	}
	return names
}

func (o Options) String() string {
	if o == 0 {
		return "none"
	}
	return strings.Join(o.Names(), "|")
}
