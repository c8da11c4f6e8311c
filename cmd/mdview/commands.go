package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/rgonek/md-view/logging"
	"github.com/rgonek/md-view/markdown"
	"github.com/rgonek/md-view/markdown/debug"
	"github.com/rgonek/md-view/mdrender"
	"github.com/rgonek/md-view/view"
)

type commandOptions struct {
	configFile     string
	preset         string
	theme          string
	wikilinks      bool
	hardLineBreaks bool
	output         string
	title          string
	offset         int
}

var opts commandOptions

func (o commandOptions) overrides() overrides {
	return overrides{
		preset:         o.preset,
		theme:          o.theme,
		wikilinks:      o.wikilinks,
		hardLineBreaks: o.hardLineBreaks,
	}
}

var configFlag = &cli.StringFlag{
	Name:        "config",
	Aliases:     []string{"c"},
	Usage:       "YAML config file",
	Destination: &opts.configFile,
}

func markdownFlags() []cli.Flag {
	return []cli.Flag{
		configFlag,
		&cli.StringFlag{
			Name:        "preset",
			Usage:       "Preset: default|gfm|commonmark|notes|all",
			Destination: &opts.preset,
		},
		&cli.StringFlag{
			Name:        "theme",
			Usage:       "Code highlighting theme",
			Destination: &opts.theme,
		},
		&cli.BoolFlag{
			Name:        "wikilinks",
			Usage:       "Enable [[wikilink]] syntax",
			Destination: &opts.wikilinks,
		},
		&cli.BoolFlag{
			Name:        "hard-breaks",
			Usage:       "Render soft line breaks as hard breaks",
			Destination: &opts.hardLineBreaks,
		},
	}
}

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "Render a markdown file to an HTML page",
	ArgsUsage: "[input-file]",
	Action:    renderCmd,
	Flags: append(markdownFlags(),
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file, stdout when empty",
			Destination: &opts.output,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Page title, defaults to the frontmatter title or the input name",
			Destination: &opts.title,
		},
	),
}

var clickCommand = &cli.Command{
	Name:      "click",
	Usage:     "Click the innermost element covering a source offset and print the reported range",
	ArgsUsage: "[input-file]",
	Action:    clickCmd,
	Flags: append(markdownFlags(),
		&cli.IntFlag{
			Name:        "offset",
			Usage:       "Byte offset into the source",
			Required:    true,
			Destination: &opts.offset,
		},
	),
}

var componentsCommand = &cli.Command{
	Name:   "components",
	Usage:  "List the components declared in the config file",
	Action: componentsCmd,
	Flags:  []cli.Flag{configFlag},
}

var themesCommand = &cli.Command{
	Name:   "themes",
	Usage:  "List the code highlighting themes",
	Action: themesCmd,
}

func loadProps() (markdown.Props, error) {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return markdown.Props{}, err
	}
	props, err := resolveProps(cfg, opts.overrides())
	if err != nil {
		return markdown.Props{}, fmt.Errorf("invalid config: %w", err)
	}
	return props, nil
}

func readInput(cc *cli.Context) (source, name string, err error) {
	path := cc.Args().First()
	if path == "" || path == "-" {
		data, err := io.ReadAll(cc.App.Reader)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), filepath.Base(path), nil
}

func renderCmd(cc *cli.Context) error {
	source, name, err := readInput(cc)
	if err != nil {
		return err
	}
	props, err := loadProps()
	if err != nil {
		return err
	}

	frontmatter := view.NewShared("")
	props.Frontmatter = frontmatter
	if logging.Opts.Debug {
		props.Debug = view.NewShared(debug.EventInfo{})
	}

	renderer, err := markdown.New(props)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	doc := view.NewDocument(slog.Default())
	result := renderer.Render(doc, source)
	logWarnings(result.Warnings)
	if props.Debug != nil {
		logging.Dump("render trace", props.Debug.Get().String())
	}

	title := opts.title
	if title == "" {
		title = frontmatterTitle(frontmatter.Get(), name)
	}

	if opts.output == "" {
		return view.RenderDocument(cc.App.Writer, doc, title)
	}
	if err := writePage(opts.output, doc, title); err != nil {
		return err
	}
	slog.Info("wrote page", "path", opts.output, "warnings", len(result.Warnings))
	return nil
}

func writePage(path string, doc *view.Document, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := view.RenderDocument(f, doc, title); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func frontmatterTitle(frontmatter, fallback string) string {
	var meta struct {
		Title string `yaml:"title"`
	}
	if err := markdown.DecodeFrontmatter(frontmatter, &meta); err != nil {
		slog.Warn("ignoring frontmatter", "error", err)
		return fallback
	}
	if meta.Title == "" {
		return fallback
	}
	return meta.Title
}

func logWarnings(warnings []mdrender.Warning) {
	for _, warning := range warnings {
		slog.Warn("render warning",
			"type", warning.Type,
			"node", warning.NodeType,
			"position", warning.Position.String(),
			"message", warning.Message,
		)
	}
}

var errNoClickTarget = errors.New("no clickable element")

// clickAt clicks every clickable element and returns the event of the
// innermost one covering offset.
func clickAt(props markdown.Props, source string, offset int) (markdown.MarkdownMouseEvent, error) {
	if offset < 0 || offset >= len(source) {
		return markdown.MarkdownMouseEvent{}, fmt.Errorf("offset %d outside source of %d bytes", offset, len(source))
	}

	var events []markdown.MarkdownMouseEvent
	props.Source = source
	props.OnClick = func(event markdown.MarkdownMouseEvent) {
		events = append(events, event)
	}

	doc := view.NewDocument(slog.Default())
	root := markdown.Markdown(doc, props)

	var (
		best  markdown.MarkdownMouseEvent
		found bool
	)
	for _, node := range root.FindAll(func(n *view.Node) bool { return n.Clickable() }) {
		events = events[:0]
		doc.Click(node, &view.MouseEvent{})
		for _, event := range events {
			r := event.Position
			if r.Start > offset || offset >= r.End {
				continue
			}
			if !found || r.Len() <= best.Position.Len() {
				best, found = event, true
			}
		}
	}

	if !found {
		return markdown.MarkdownMouseEvent{}, fmt.Errorf("%w at offset %d", errNoClickTarget, offset)
	}
	return best, nil
}

func clickCmd(cc *cli.Context) error {
	source, _, err := readInput(cc)
	if err != nil {
		return err
	}
	props, err := loadProps()
	if err != nil {
		return err
	}
	if err := props.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	event, err := clickAt(props, source, opts.offset)
	if err != nil {
		return err
	}
	logging.Dump("click position", event.Position)

	_, err = fmt.Fprintf(cc.App.Writer, "%s %q\n", event.Position, event.Position.Slice(source))
	return err
}

func componentsCmd(cc *cli.Context) error {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	return writeComponents(cc.App.Writer, cfg.Components)
}

func themesCmd(cc *cli.Context) error {
	for _, name := range mdrender.ThemeNames() {
		marker := " "
		if name == mdrender.DefaultTheme {
			marker = "*"
		}
		if _, err := fmt.Fprintf(cc.App.Writer, "%s %s\n", marker, name); err != nil {
			return err
		}
	}
	return nil
}
