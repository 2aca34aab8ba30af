package render

import "fmt"

// Event is a window or input event delivered to OnEvent handlers.
type Event interface {
	String() string
}

// MouseScrolledEvent reports a mouse wheel movement.
// Positive YOffset scrolls up.
type MouseScrolledEvent struct {
	XOffset, YOffset float32
}

func (e MouseScrolledEvent) String() string {
	return fmt.Sprintf("MouseScrolled(%g, %g)", e.XOffset, e.YOffset)
}

// WindowResizedEvent reports a new framebuffer size in pixels.
type WindowResizedEvent struct {
	Width, Height int
}

func (e WindowResizedEvent) String() string {
	return fmt.Sprintf("WindowResized(%d, %d)", e.Width, e.Height)
}

// EventHandler receives events. It returns true if the event was consumed.
type EventHandler func(Event) bool
