package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/md-view/mdrender"
)

func TestPresetProps(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		props, err := presetProps(presetDefault)
		require.NoError(t, err)
		assert.Nil(t, props.ParseOptions)
		assert.False(t, props.Wikilinks)
	})

	t.Run("empty defaults to default", func(t *testing.T) {
		props, err := presetProps("")
		require.NoError(t, err)
		assert.Nil(t, props.ParseOptions)
	})

	t.Run("gfm", func(t *testing.T) {
		props, err := presetProps(presetGFM)
		require.NoError(t, err)
		require.NotNil(t, props.ParseOptions)
		assert.Equal(t, []string{"tables", "strikethrough", "tasklists", "linkify"}, props.ParseOptions.Names())
	})

	t.Run("commonmark", func(t *testing.T) {
		props, err := presetProps(presetCommonMark)
		require.NoError(t, err)
		require.NotNil(t, props.ParseOptions)
		assert.Equal(t, mdrender.Options(0), *props.ParseOptions)
	})

	t.Run("notes", func(t *testing.T) {
		props, err := presetProps(presetNotes)
		require.NoError(t, err)
		assert.True(t, props.Wikilinks)
		assert.True(t, props.HardLineBreaks)
		assert.True(t, props.ParseOptions.Has(mdrender.OptionDefinitionLists))
		assert.True(t, props.ParseOptions.Has(mdrender.OptionFrontmatter))
	})

	t.Run("all", func(t *testing.T) {
		props, err := presetProps(" ALL ")
		require.NoError(t, err)
		assert.True(t, props.Wikilinks)
		assert.Equal(t, mdrender.AllOptionNames(), props.ParseOptions.Names())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := presetProps("fancy")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown preset "fancy"`)
	})
}

func TestDecodeConfig(t *testing.T) {
	input := `
preset: gfm
theme: monokai
wikilinks: true
parseOptions: [tables, footnotes]
components:
  - name: Note
    class: callout
    title: "Note: {title}"
    required: [title]
  - name: box
    tag: section
    passAttributes: true
`
	cfg, err := decodeConfig(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, presetGFM, cfg.Preset)
	assert.Equal(t, "monokai", cfg.Theme)
	require.NotNil(t, cfg.Wikilinks)
	assert.True(t, *cfg.Wikilinks)
	assert.Nil(t, cfg.HardLineBreaks)
	assert.Equal(t, []string{"tables", "footnotes"}, cfg.ParseOptions)

	require.Len(t, cfg.Components, 2)
	assert.Equal(t, ComponentConfig{
		Name:     "Note",
		Tag:      "div",
		Class:    "callout",
		Title:    "Note: {title}",
		Required: []string{"title"},
	}, cfg.Components[0])
	assert.Equal(t, "section", cfg.Components[1].Tag)
	assert.True(t, cfg.Components[1].PassAttributes)
}

func TestDecodeConfigEmpty(t *testing.T) {
	cfg, err := decodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, presetDefault, cfg.Preset)
	assert.Empty(t, cfg.Components)
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unknown key", input: "colour: red\n", want: "field colour not found"},
		{name: "unknown preset", input: "preset: fancy\n", want: `unknown preset "fancy"`},
		{name: "unknown option", input: "parseOptions: [emoji]\n", want: `unknown parse option "emoji"`},
		{name: "empty component name", input: "components:\n  - tag: div\n", want: "component name must be non-empty"},
		{name: "invalid component name", input: "components:\n  - name: 1box\n", want: `invalid component name "1box"`},
		{name: "invalid tag", input: "components:\n  - name: box\n    tag: \"di v\"\n", want: `invalid tag "di v"`},
		{name: "duplicate component", input: "components:\n  - name: box\n  - name: box\n", want: `duplicate component "box"`},
		{name: "blank required", input: "components:\n  - name: box\n    required: [\" \"]\n", want: "required attribute names must be non-empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeConfig(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, presetDefault, cfg.Preset)

	path := filepath.Join(t.TempDir(), "mdview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: notes\n"), 0o600))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, presetNotes, cfg.Preset)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestConfigClone(t *testing.T) {
	wikilinks := true
	cfg := Config{
		Wikilinks:    &wikilinks,
		ParseOptions: []string{"tables"},
		Components:   []ComponentConfig{{Name: "box", Required: []string{"id"}}},
	}

	cloned := cfg.clone()
	*cloned.Wikilinks = false
	cloned.ParseOptions[0] = "footnotes"
	cloned.Components[0].Required[0] = "title"

	assert.True(t, wikilinks)
	assert.Equal(t, "tables", cfg.ParseOptions[0])
	assert.Equal(t, "id", cfg.Components[0].Required[0])
}

func TestResolveProps(t *testing.T) {
	off := false
	cfg := Config{
		Preset:       presetNotes,
		Theme:        "monokai",
		Wikilinks:    &off,
		ParseOptions: []string{"tables"},
		Components:   []ComponentConfig{{Name: "box", Tag: "div"}},
	}

	t.Run("config over preset", func(t *testing.T) {
		props, err := resolveProps(cfg, overrides{})
		require.NoError(t, err)
		assert.False(t, props.Wikilinks)
		assert.True(t, props.HardLineBreaks)
		assert.Equal(t, mdrender.OptionTables, *props.ParseOptions)
		assert.Equal(t, "monokai", props.Theme)
		assert.Equal(t, []string{"box"}, props.Components.Names())
	})

	t.Run("flags over config", func(t *testing.T) {
		props, err := resolveProps(cfg, overrides{theme: "github", wikilinks: true})
		require.NoError(t, err)
		assert.True(t, props.Wikilinks)
		assert.Equal(t, "github", props.Theme)
	})

	t.Run("preset flag", func(t *testing.T) {
		props, err := resolveProps(Config{}, overrides{preset: presetCommonMark})
		require.NoError(t, err)
		assert.Equal(t, mdrender.Options(0), *props.ParseOptions)

		_, err = resolveProps(Config{}, overrides{preset: "fancy"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid preset")
	})

	t.Run("parse options", func(t *testing.T) {
		_, err := resolveProps(Config{ParseOptions: []string{"emoji"}}, overrides{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid parseOptions: unknown parse option "emoji"`)
		assert.NotContains(t, err.Error(), "preset")
	})
}
