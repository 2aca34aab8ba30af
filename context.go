package render

import (
	"log/slog"
	"sync"
)

// Context owns the single GPU context all resources are created in.
// This is NOT context.Context - it wraps a Device and tracks which
// program, vertex array and buffers are currently bound so that resources
// can check they are the target of a call before issuing it.
//
// A Context is confined to the render thread. The only methods safe to call
// from other goroutines are Post and Pending.
type Context struct {
	dev    Device
	logger *slog.Logger

	// Bind tracking
	program  uint32
	array    uint32
	vertices uint32            // Array-buffer binding (global state)
	elements map[uint32]uint32 // Vertex array -> element-array binding

	// Work marshalled from other goroutines
	mu      sync.Mutex
	pending []func()
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger used by the Context and every resource created in it.
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewContext creates a Context issuing its calls to dev.
func NewContext(dev Device, opts ...ContextOption) *Context {
	c := &Context{
		dev:      dev,
		logger:   defaultLogger,
		elements: make(map[uint32]uint32),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Device returns the underlying device.
func (c *Context) Device() Device {
	return c.dev
}

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// BoundProgram returns the program handle currently in use, or 0.
func (c *Context) BoundProgram() uint32 {
	return c.program
}

// BoundVertexArray returns the vertex array handle currently bound, or 0.
func (c *Context) BoundVertexArray() uint32 {
	return c.array
}

// BoundBuffer returns the buffer handle currently bound to target, or 0.
// The element-array binding belongs to the bound vertex array, so it changes
// with BindVertexArray.
func (c *Context) BoundBuffer(target BufferTarget) uint32 {
	if target == ElementArrayBuffer {
		return c.elements[c.array]
	}
	return c.vertices
}

func (c *Context) useProgram(program uint32) {
	c.dev.UseProgram(program)
	c.program = program
}

func (c *Context) bindVertexArray(array uint32) {
	c.dev.BindVertexArray(array)
	c.array = array
}

func (c *Context) bindBuffer(target BufferTarget, buffer uint32) {
	c.dev.BindBuffer(target, buffer)
	if target == ElementArrayBuffer {
		c.elements[c.array] = buffer
		return
	}
	c.vertices = buffer
}

// forgetProgram clears bind tracking for a deleted program.
func (c *Context) forgetProgram(program uint32) {
	if c.program == program {
		c.program = 0
	}
}

func (c *Context) forgetVertexArray(array uint32) {
	delete(c.elements, array)
	if c.array == array {
		c.array = 0
	}
}

func (c *Context) forgetBuffer(buffer uint32) {
	if c.vertices == buffer {
		c.vertices = 0
	}
	for array, b := range c.elements {
		if b == buffer {
			c.elements[array] = 0
		}
	}
}

// Post queues fn to run on the render thread at the next RunPending.
// Safe to call from any goroutine.
func (c *Context) Post(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

// Pending returns the number of queued functions.
// Safe to call from any goroutine.
func (c *Context) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// RunPending runs every function queued by Post in submission order and
// returns how many ran. Call it once per frame from the render thread.
// Functions posted while draining run on the next call.
func (c *Context) RunPending() int {
	c.mu.Lock()
	queue := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}
