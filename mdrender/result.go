package mdrender

// Result holds the output of a render.
type Result[V any] struct {
	View     V         `json:"-"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes render warnings.
type WarningType string

const (
	WarningUnknownNode           WarningType = "unknown_node"
	WarningComponentFailed       WarningType = "component_failed"
	WarningLinkFailed            WarningType = "link_failed"
	WarningStylesheetUnavailable WarningType = "stylesheet_unavailable"
	WarningUnmatchedTag          WarningType = "unmatched_tag"
)

// Warning represents a non-fatal issue encountered while rendering.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
	Position Range       `json:"position"`
}
