package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeFrontmatter decodes YAML frontmatter, as published through
// Props.Frontmatter, into out. Empty frontmatter leaves out untouched.
func DecodeFrontmatter(frontmatter string, out any) error {
	if strings.TrimSpace(frontmatter) == "" {
		return nil
	}
	if err := yaml.Unmarshal([]byte(frontmatter), out); err != nil {
		return fmt.Errorf("failed to decode frontmatter: %w", err)
	}
	return nil
}
