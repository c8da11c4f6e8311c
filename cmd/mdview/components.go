package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/rgonek/md-view/markdown"
	"github.com/rgonek/md-view/mdrender"
	"github.com/rgonek/md-view/view"
)

// declarativeComponent builds a component from its config declaration.
func declarativeComponent(cfg ComponentConfig) markdown.ComponentFunc {
	return func(scope *view.Scope, props markdown.MdComponentProps) (*view.Node, error) {
		for _, name := range cfg.Required {
			if _, err := mdrender.GetParsed[string](props, name); err != nil {
				return nil, err
			}
		}

		node := view.El(cfg.Tag)
		classes := []string{"component-" + strings.ToLower(cfg.Name)}
		if cfg.Class != "" {
			classes = append(classes, cfg.Class)
		}
		node.SetAttr("class", strings.Join(classes, " "))

		if cfg.PassAttributes {
			names := make([]string, 0, len(props.Attributes))
			for name := range props.Attributes {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				node.SetAttr("data-"+strings.ToLower(name), props.Attributes[name])
			}
		}

		if cfg.Title != "" {
			node.Append(view.El("div", view.Text(expandTitle(cfg.Title, props.Attributes))).SetAttr("class", "component-title"))
		}
		node.Append(props.Children)

		scope.Logger().Debug("rendered declarative component", "name", cfg.Name, "attributes", len(props.Attributes))
		return node, nil
	}
}

// expandTitle replaces {name} placeholders with attribute values. Unknown
// placeholders expand to nothing.
func expandTitle(title string, attributes map[string]string) string {
	var sb strings.Builder
	for {
		open := strings.IndexByte(title, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(title[open:], '}')
		if end < 0 {
			break
		}
		sb.WriteString(title[:open])
		sb.WriteString(attributes[title[open+1:open+end]])
		title = title[open+end+1:]
	}
	sb.WriteString(title)
	return sb.String()
}

func writeComponents(w io.Writer, components []ComponentConfig) error {
	if len(components) == 0 {
		_, err := fmt.Fprintln(w, "no components configured")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTAG\tCLASS\tREQUIRED")
	for _, component := range components {
		required := strings.Join(component.Required, ",")
		if required == "" {
			required = "-"
		}
		class := component.Class
		if class == "" {
			class = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", component.Name, component.Tag, class, required)
	}
	return tw.Flush()
}
