package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/render"
)

// GLFWInputAdapter adapts GLFW input to render.InputState and render.Event.
type GLFWInputAdapter struct {
	window  *glfw.Window
	input   *render.InputState
	handler render.EventHandler
}

// NewGLFWInputAdapter creates a new GLFW input adapter.
// Scroll and framebuffer-resize callbacks are forwarded to handler as
// render.MouseScrolledEvent and render.WindowResizedEvent.
func NewGLFWInputAdapter(window *glfw.Window, handler render.EventHandler) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window:  window,
		input:   render.NewInputState(),
		handler: handler,
	}

	// Setup callbacks
	window.SetKeyCallback(adapter.keyCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetFramebufferSizeCallback(adapter.framebufferSizeCallback)

	w, h := window.GetFramebufferSize()
	adapter.input.Width, adapter.input.Height = w, h

	return adapter
}

// Update resets per-frame input state.
// Call this at the start of each frame, before glfw.PollEvents.
func (a *GLFWInputAdapter) Update() *render.InputState {
	a.input.Reset()
	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *render.InputState {
	return a.input
}

// IsKeyPressed implements render.KeyState by polling the window.
func (a *GLFWInputAdapter) IsKeyPressed(key render.Key) bool {
	gk, ok := renderKeyToGLFW(key)
	if !ok {
		return false
	}
	state := a.window.GetKey(gk)
	return state == glfw.Press || state == glfw.Repeat
}

func (a *GLFWInputAdapter) dispatch(e render.Event) {
	if a.handler != nil {
		a.handler(e)
	}
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	rk := glfwKeyToRenderKey(key)
	if rk == render.KeyNone {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		a.input.SetKey(rk, true)
	case glfw.Release:
		a.input.SetKey(rk, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.AddMouseWheel(float32(xoff), float32(yoff))
	a.dispatch(render.MouseScrolledEvent{XOffset: float32(xoff), YOffset: float32(yoff)})
}

func (a *GLFWInputAdapter) framebufferSizeCallback(w *glfw.Window, width, height int) {
	a.input.Width, a.input.Height = width, height
	a.dispatch(render.WindowResizedEvent{Width: width, Height: height})
}

var glfwKeys = map[glfw.Key]render.Key{
	glfw.KeyW:      render.KeyW,
	glfw.KeyA:      render.KeyA,
	glfw.KeyS:      render.KeyS,
	glfw.KeyD:      render.KeyD,
	glfw.KeyQ:      render.KeyQ,
	glfw.KeyE:      render.KeyE,
	glfw.KeyR:      render.KeyR,
	glfw.KeyEscape: render.KeyEscape,
}

// glfwKeyToRenderKey maps GLFW keys to render keys.
func glfwKeyToRenderKey(key glfw.Key) render.Key {
	if rk, ok := glfwKeys[key]; ok {
		return rk
	}
	return render.KeyNone
}

// renderKeyToGLFW maps render keys back to GLFW keys for polling.
func renderKeyToGLFW(key render.Key) (glfw.Key, bool) {
	for gk, rk := range glfwKeys {
		if rk == key {
			return gk, true
		}
	}
	return glfw.KeyUnknown, false
}
