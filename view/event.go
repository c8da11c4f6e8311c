package view

// EventHandler is a callback receiving an event value.
type EventHandler[T any] func(T)

// Call invokes the handler. Calling a nil handler is a no-op.
func (h EventHandler[T]) Call(event T) {
	if h == nil {
		return
	}
	h(event)
}

// MouseButton identifies the pressed button of a mouse event.
type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonAuxiliary
	ButtonSecondary
)

// MouseEvent is the platform mouse event delivered to click handlers.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	// Target is the innermost node that was hit.
	Target *Node

	stopped bool
}

// StopPropagation prevents ancestors of the current node from seeing the event.
func (e *MouseEvent) StopPropagation() {
	e.stopped = true
}

func (e *MouseEvent) PropagationStopped() bool {
	return e.stopped
}

// dispatchClick bubbles the event from target up to the root and returns the
// number of handlers invoked.
func dispatchClick(target *Node, event *MouseEvent) int {
	if event.Target == nil {
		event.Target = target
	}

	invoked := 0
	for node := target; node != nil; node = node.parent {
		if node.onClick == nil {
			continue
		}
		node.onClick.Call(event)
		invoked++
		if event.stopped {
			break
		}
	}
	return invoked
}
