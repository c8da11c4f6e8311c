// Package debug holds the render trace a markdown view reports when
// debugging is enabled.
package debug

import (
	"slices"
	"strings"
)

// EventInfo is the event trace of the last render, one entry per visited
// node, component, or warning.
type EventInfo struct {
	Log []string `json:"log"`
}

// Equal reports whether both traces hold the same entries.
func (e EventInfo) Equal(other EventInfo) bool {
	return slices.Equal(e.Log, other.Log)
}

func (e EventInfo) String() string {
	return strings.Join(e.Log, "\n")
}
