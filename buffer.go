package render

import (
	"fmt"
	"unsafe"
)

// IndexBuffer owns one GPU element-array buffer of uint32 indices.
// Its count and usage are fixed at construction.
type IndexBuffer struct {
	refCount
	ctx    *Context
	handle uint32
	count  int
	usage  BufferUsage
}

// NewIndexBuffer allocates a buffer and uploads indices with the given usage hint.
// The buffer is left unbound. The element-array binding is vertex array state,
// so vertex array 0 is bound first to leave the current array untouched.
func (c *Context) NewIndexBuffer(indices []uint32, usage BufferUsage) (*IndexBuffer, error) {
	handle := c.dev.GenBuffer()
	if handle == 0 {
		return nil, ErrBufferCreate
	}

	c.bindVertexArray(0)
	c.bindBuffer(ElementArrayBuffer, handle)
	c.dev.BufferData(ElementArrayBuffer, len(indices)*4, slicePtr(indices), usage)
	c.bindBuffer(ElementArrayBuffer, 0)

	c.logger.Debug("index buffer created", "handle", handle, "count", len(indices), "usage", usage)

	return &IndexBuffer{
		refCount: newRefCount(),
		ctx:      c,
		handle:   handle,
		count:    len(indices),
		usage:    usage,
	}, nil
}

// Handle returns the GPU handle, or 0 after release.
func (b *IndexBuffer) Handle() uint32 { return b.handle }

// Count returns the number of indices.
func (b *IndexBuffer) Count() int { return b.count }

// Usage returns the usage hint the buffer was created with.
func (b *IndexBuffer) Usage() BufferUsage { return b.usage }

// Bind binds the buffer to the element-array target.
func (b *IndexBuffer) Bind() {
	b.ctx.bindBuffer(ElementArrayBuffer, b.handle)
}

// Unbind binds 0 to the element-array target.
func (b *IndexBuffer) Unbind() {
	b.ctx.bindBuffer(ElementArrayBuffer, 0)
}

// Retain adds an owner to the buffer.
func (b *IndexBuffer) Retain() *IndexBuffer {
	if !b.retain() {
		b.ctx.logger.Warn("retain of released index buffer")
	}
	return b
}

// Release drops an owner. The GPU buffer is deleted when the last owner releases it.
func (b *IndexBuffer) Release() {
	last, ok := b.release()
	if !ok {
		b.ctx.logger.Warn("index buffer released more than once")
		return
	}
	if last {
		b.ctx.deleteBuffer(&b.handle)
	}
}

// VertexBuffer owns one GPU array buffer of interleaved float32 vertex data.
type VertexBuffer struct {
	refCount
	ctx    *Context
	handle uint32
	size   int // Bytes allocated on the GPU
	usage  BufferUsage
	layout BufferLayout
}

// NewVertexBuffer allocates a buffer and uploads vertices with the given usage hint.
// The buffer is left unbound.
func (c *Context) NewVertexBuffer(vertices []float32, usage BufferUsage) (*VertexBuffer, error) {
	return c.newVertexBuffer(len(vertices)*4, slicePtr(vertices), usage)
}

// NewDynamicVertexBuffer allocates size bytes of uninitialized vertex storage
// for later SetData calls.
func (c *Context) NewDynamicVertexBuffer(size int) (*VertexBuffer, error) {
	return c.newVertexBuffer(size, nil, DynamicDraw)
}

func (c *Context) newVertexBuffer(size int, data unsafe.Pointer, usage BufferUsage) (*VertexBuffer, error) {
	handle := c.dev.GenBuffer()
	if handle == 0 {
		return nil, ErrBufferCreate
	}

	c.bindBuffer(ArrayBuffer, handle)
	c.dev.BufferData(ArrayBuffer, size, data, usage)
	c.bindBuffer(ArrayBuffer, 0)

	c.logger.Debug("vertex buffer created", "handle", handle, "bytes", size, "usage", usage)

	return &VertexBuffer{
		refCount: newRefCount(),
		ctx:      c,
		handle:   handle,
		size:     size,
		usage:    usage,
	}, nil
}

// Handle returns the GPU handle, or 0 after release.
func (b *VertexBuffer) Handle() uint32 { return b.handle }

// Size returns the allocated size in bytes.
func (b *VertexBuffer) Size() int { return b.size }

// Count returns the number of float32 values the buffer holds.
func (b *VertexBuffer) Count() int { return b.size / 4 }

// Usage returns the usage hint the buffer was created with.
func (b *VertexBuffer) Usage() BufferUsage { return b.usage }

// Layout returns the attribute layout.
func (b *VertexBuffer) Layout() BufferLayout { return b.layout }

// SetLayout sets the attribute layout used when the buffer is added to a VertexArray.
func (b *VertexBuffer) SetLayout(l BufferLayout) { b.layout = l }

// SetData overwrites the start of the buffer with vertices.
// Only buffers created with a non-static usage can be updated, and the data
// must fit in the original allocation.
func (b *VertexBuffer) SetData(vertices []float32) error {
	if b.handle == 0 {
		return ErrReleased
	}
	if b.usage == StaticDraw {
		return ErrStaticBuffer
	}
	size := len(vertices) * 4
	if size > b.size {
		return fmt.Errorf("%w: %d bytes into %d", ErrBufferOverflow, size, b.size)
	}

	b.ctx.bindBuffer(ArrayBuffer, b.handle)
	b.ctx.dev.BufferSubData(ArrayBuffer, 0, size, slicePtr(vertices))
	b.ctx.bindBuffer(ArrayBuffer, 0)
	return nil
}

// Bind binds the buffer to the array target.
func (b *VertexBuffer) Bind() {
	b.ctx.bindBuffer(ArrayBuffer, b.handle)
}

// Unbind binds 0 to the array target.
func (b *VertexBuffer) Unbind() {
	b.ctx.bindBuffer(ArrayBuffer, 0)
}

// Retain adds an owner to the buffer.
func (b *VertexBuffer) Retain() *VertexBuffer {
	if !b.retain() {
		b.ctx.logger.Warn("retain of released vertex buffer")
	}
	return b
}

// Release drops an owner. The GPU buffer is deleted when the last owner releases it.
func (b *VertexBuffer) Release() {
	last, ok := b.release()
	if !ok {
		b.ctx.logger.Warn("vertex buffer released more than once")
		return
	}
	if last {
		b.ctx.deleteBuffer(&b.handle)
	}
}

// deleteBuffer frees *handle and zeroes it. Handle 0 is a no-op.
func (c *Context) deleteBuffer(handle *uint32) {
	if *handle == 0 {
		return
	}
	c.forgetBuffer(*handle)
	c.dev.DeleteBuffer(*handle)
	c.logger.Debug("buffer deleted", "handle", *handle)
	*handle = 0
}

// slicePtr returns a pointer to the first element, or nil for an empty slice.
func slicePtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
