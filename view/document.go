package view

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidLink is returned when a head link cannot be mounted.
var ErrInvalidLink = errors.New("invalid head link")

// Document owns a mounted view tree and the links injected into its head.
type Document struct {
	Head []*Node
	Body *Node

	logger *slog.Logger
}

// NewDocument creates an empty document.
func NewDocument(logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	return &Document{logger: logger}
}

func (d *Document) Logger() *slog.Logger {
	if d.logger == nil {
		return slog.Default()
	}
	return d.logger
}

// Mount replaces the body of the document.
func (d *Document) Mount(root *Node) {
	d.Body = root
}

// MountLink appends a <link> element to the document head. Links are
// deduplicated by href so re-rendering does not grow the head.
func (d *Document) MountLink(rel, href, integrity, crossorigin string) error {
	rel = strings.TrimSpace(rel)
	href = strings.TrimSpace(href)
	if rel == "" {
		return fmt.Errorf("%w: empty rel", ErrInvalidLink)
	}
	if href == "" {
		return fmt.Errorf("%w: empty href", ErrInvalidLink)
	}

	for _, existing := range d.Head {
		if value, ok := existing.Attr("href"); ok && value == href {
			return nil
		}
	}

	link := El("link").SetAttr("rel", rel).SetAttr("href", href)
	if integrity != "" {
		link.SetAttr("integrity", integrity)
	}
	if crossorigin != "" {
		link.SetAttr("crossorigin", crossorigin)
	}
	d.Head = append(d.Head, link)
	d.Logger().Debug("mounted head link", "rel", rel, "bytes", len(href))
	return nil
}

// Click dispatches a click on target. The event bubbles through the
// ancestors of target until a handler stops propagation. It returns the
// number of handlers that ran.
func (d *Document) Click(target *Node, event *MouseEvent) int {
	if target == nil {
		return 0
	}
	if event == nil {
		event = &MouseEvent{}
	}
	return dispatchClick(target, event)
}
