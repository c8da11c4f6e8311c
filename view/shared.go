package view

// Shared is a mutable slot shared between a writer and the views reading
// it. Every Set bumps the version, which is what readers use to decide
// whether they need to re-render. It is not safe for concurrent use.
type Shared[T any] struct {
	value   T
	version uint64
}

// NewShared creates a slot holding initial.
func NewShared[T any](initial T) *Shared[T] {
	return &Shared[T]{value: initial}
}

func (s *Shared[T]) Get() T {
	return s.value
}

func (s *Shared[T]) Set(value T) {
	s.value = value
	s.version++
}

// SetIfChanged stores value only when equal reports a difference, and
// reports whether the slot was written.
func (s *Shared[T]) SetIfChanged(value T, equal func(a, b T) bool) bool {
	if equal(s.value, value) {
		return false
	}
	s.Set(value)
	return true
}

func (s *Shared[T]) Version() uint64 {
	return s.version
}
