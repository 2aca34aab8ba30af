package render

// Key represents a keyboard key the camera controller responds to.
type Key int

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyEscape
	KeyR
	KeyCount
)

// KeyState reports held keys. InputState implements it; so do window adapters.
type KeyState interface {
	IsKeyPressed(key Key) bool
}

// InputState holds input state for the current frame.
// This is typically populated by the application from GLFW or similar.
type InputState struct {
	keyDown    [KeyCount]bool
	keyPressed [KeyCount]bool // True on the frame key was pressed
	keyUp      [KeyCount]bool // True on the frame key was released

	// Mouse wheel delta accumulated this frame
	MouseWheelX float32
	MouseWheelY float32

	// Framebuffer size, 0 until the first resize
	Width, Height int
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// Reset clears per-frame input state.
// Call this at the start of each frame before collecting input.
func (s *InputState) Reset() {
	clear(s.keyPressed[:])
	clear(s.keyUp[:])
	s.MouseWheelX = 0
	s.MouseWheelY = 0
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key <= KeyNone || key >= KeyCount {
		return
	}

	wasDown := s.keyDown[key]
	s.keyDown[key] = down

	if down && !wasDown {
		s.keyPressed[key] = true
	}
	if !down && wasDown {
		s.keyUp[key] = true
	}
}

// AddMouseWheel accumulates a mouse wheel delta.
func (s *InputState) AddMouseWheel(x, y float32) {
	s.MouseWheelX += x
	s.MouseWheelY += y
}

// IsKeyPressed returns true if a key is currently held.
func (s *InputState) IsKeyPressed(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// KeyPressed returns true if a key was just pressed (pressed this frame).
func (s *InputState) KeyPressed(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyReleased returns true if a key was just released.
func (s *InputState) KeyReleased(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	return s.keyUp[key]
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyNone:   "--",
		KeyW:      "W",
		KeyA:      "A",
		KeyS:      "S",
		KeyD:      "D",
		KeyQ:      "Q",
		KeyE:      "E",
		KeyEscape: "Esc",
		KeyR:      "R",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
