package view

import "log/slog"

// Scope is the handle a render function receives. It ties the function to
// the document being rendered.
type Scope struct {
	Document *Document
	// Name is the component currently rendering, empty at the top level.
	Name string
}

// NewScope creates a top-level scope for doc.
func NewScope(doc *Document) *Scope {
	return &Scope{Document: doc}
}

// Child returns a scope for a nested component.
func (s *Scope) Child(name string) *Scope {
	return &Scope{Document: s.Document, Name: name}
}

func (s *Scope) Logger() *slog.Logger {
	if s.Document == nil {
		return slog.Default()
	}
	logger := s.Document.Logger()
	if s.Name != "" {
		logger = logger.With("component", s.Name)
	}
	return logger
}
