package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rgonek/md-view/markdown"
	"github.com/rgonek/md-view/mdrender"
)

const (
	presetDefault    = "default"
	presetGFM        = "gfm"
	presetCommonMark = "commonmark"
	presetNotes      = "notes"
	presetAll        = "all"
)

// Config is the YAML configuration file of mdview.
type Config struct {
	Preset         string            `yaml:"preset,omitempty"`
	Theme          string            `yaml:"theme,omitempty"`
	Wikilinks      *bool             `yaml:"wikilinks,omitempty"`
	HardLineBreaks *bool             `yaml:"hardLineBreaks,omitempty"`
	ParseOptions   []string          `yaml:"parseOptions,omitempty"`
	Components     []ComponentConfig `yaml:"components,omitempty"`
}

// ComponentConfig declares a custom component. The component renders its
// markdown children inside Tag.
type ComponentConfig struct {
	Name  string `yaml:"name"`
	Tag   string `yaml:"tag,omitempty"`
	Class string `yaml:"class,omitempty"`
	// Title, when set, is rendered as a heading line above the children.
	// {name} placeholders are replaced with attribute values.
	Title string `yaml:"title,omitempty"`
	// Required attributes must be present on every use of the tag.
	Required []string `yaml:"required,omitempty"`
	// PassAttributes copies the tag attributes onto the element as data-*
	// attributes.
	PassAttributes bool `yaml:"passAttributes,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.Preset == "" {
		c.Preset = presetDefault
	}
	for i := range c.Components {
		c.Components[i] = c.Components[i].applyDefaults()
	}
	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.ParseOptions = append([]string(nil), c.ParseOptions...)
	cloned.Components = make([]ComponentConfig, len(c.Components))
	for i, component := range c.Components {
		component.Required = append([]string(nil), component.Required...)
		cloned.Components[i] = component
	}
	if c.Wikilinks != nil {
		value := *c.Wikilinks
		cloned.Wikilinks = &value
	}
	if c.HardLineBreaks != nil {
		value := *c.HardLineBreaks
		cloned.HardLineBreaks = &value
	}
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if _, err := presetProps(c.Preset); err != nil {
		return err
	}

	if _, err := mdrender.ParseOptionNames(c.ParseOptions); err != nil {
		return fmt.Errorf("invalid parseOptions: %w", err)
	}

	seen := make(map[string]bool, len(c.Components))
	for _, component := range c.Components {
		if err := component.Validate(); err != nil {
			return err
		}
		if seen[component.Name] {
			return fmt.Errorf("duplicate component %q", component.Name)
		}
		seen[component.Name] = true
	}

	return nil
}

func (c ComponentConfig) applyDefaults() ComponentConfig {
	if c.Tag == "" {
		c.Tag = "div"
	}
	return c
}

// Validate checks that a component declaration is usable.
func (c ComponentConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("component name must be non-empty")
	}
	if !isTagName(c.Name) {
		return fmt.Errorf("invalid component name %q", c.Name)
	}
	if !isTagName(c.Tag) {
		return fmt.Errorf("component %q: invalid tag %q", c.Name, c.Tag)
	}
	for _, name := range c.Required {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("component %q: required attribute names must be non-empty", c.Name)
		}
	}
	return nil
}

func isTagName(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case i > 0 && (ch >= '0' && ch <= '9' || ch == '-' || ch == '_' || ch == '.'):
		default:
			return false
		}
	}
	return true
}

// decodeConfig reads a YAML config. Unknown keys are rejected.
func decodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg = cfg.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadConfig reads the config file at path. An empty path yields the
// default config.
func loadConfig(path string) (Config, error) {
	if path == "" {
		return decodeConfig(bytes.NewReader(nil))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return decodeConfig(bytes.NewReader(data))
}

func presetProps(preset string) (markdown.Props, error) {
	options := func(o mdrender.Options) *mdrender.Options { return &o }

	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetDefault:
		return markdown.Props{}, nil
	case presetGFM:
		return markdown.Props{
			ParseOptions: options(mdrender.OptionTables | mdrender.OptionStrikethrough |
				mdrender.OptionTaskLists | mdrender.OptionLinkify),
		}, nil
	case presetCommonMark:
		return markdown.Props{ParseOptions: options(0)}, nil
	case presetNotes:
		return markdown.Props{
			Wikilinks:      true,
			HardLineBreaks: true,
			ParseOptions:   options(mdrender.DefaultOptions | mdrender.OptionDefinitionLists),
		}, nil
	case presetAll:
		all, err := mdrender.ParseOptionNames(mdrender.AllOptionNames())
		if err != nil {
			return markdown.Props{}, err
		}
		return markdown.Props{Wikilinks: true, ParseOptions: &all}, nil
	default:
		return markdown.Props{}, fmt.Errorf("unknown preset %q (allowed: default, gfm, commonmark, notes, all)", preset)
	}
}

// overrides are the command line flags that take precedence over the
// config file.
type overrides struct {
	preset         string
	theme          string
	wikilinks      bool
	hardLineBreaks bool
}

func resolveProps(cfg Config, flags overrides) (markdown.Props, error) {
	preset := cfg.Preset
	if flags.preset != "" {
		preset = flags.preset
	}
	props, err := presetProps(preset)
	if err != nil {
		return markdown.Props{}, fmt.Errorf("invalid preset: %w", err)
	}

	if len(cfg.ParseOptions) > 0 {
		options, err := mdrender.ParseOptionNames(cfg.ParseOptions)
		if err != nil {
			return markdown.Props{}, fmt.Errorf("invalid parseOptions: %w", err)
		}
		props.ParseOptions = &options
	}
	if cfg.Wikilinks != nil {
		props.Wikilinks = *cfg.Wikilinks
	}
	if cfg.HardLineBreaks != nil {
		props.HardLineBreaks = *cfg.HardLineBreaks
	}
	props.Theme = cfg.Theme

	if flags.theme != "" {
		props.Theme = flags.theme
	}
	if flags.wikilinks {
		props.Wikilinks = true
	}
	if flags.hardLineBreaks {
		props.HardLineBreaks = true
	}

	props.Components = markdown.NewComponents()
	for _, component := range cfg.Components {
		props.Components.Register(component.Name, declarativeComponent(component))
	}

	return props, nil
}
