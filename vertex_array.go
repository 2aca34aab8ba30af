package render

import "fmt"

// VertexArray owns one GPU vertex array object and the buffers attached to it.
// Attached buffers are retained and released with the array.
type VertexArray struct {
	refCount
	ctx           *Context
	handle        uint32
	vertexBuffers []*VertexBuffer
	indexBuffer   *IndexBuffer
	attribIndex   uint32 // Next free attribute location
}

// NewVertexArray allocates an empty vertex array.
func (c *Context) NewVertexArray() (*VertexArray, error) {
	handle := c.dev.GenVertexArray()
	if handle == 0 {
		return nil, ErrArrayCreate
	}
	c.logger.Debug("vertex array created", "handle", handle)
	return &VertexArray{
		refCount: newRefCount(),
		ctx:      c,
		handle:   handle,
	}, nil
}

// Handle returns the GPU handle, or 0 after release.
func (va *VertexArray) Handle() uint32 { return va.handle }

// Bind binds the vertex array.
func (va *VertexArray) Bind() {
	va.ctx.bindVertexArray(va.handle)
}

// Unbind binds vertex array 0.
func (va *VertexArray) Unbind() {
	va.ctx.bindVertexArray(0)
}

// AddVertexBuffer attaches vb and enables one attribute location per layout
// element (matrices take one location per column). The array retains vb.
func (va *VertexArray) AddVertexBuffer(vb *VertexBuffer) error {
	if va.handle == 0 || vb.handle == 0 {
		return ErrReleased
	}
	if vb.ctx != va.ctx {
		return ErrContextMismatch
	}
	layout := vb.Layout()
	if layout.Empty() {
		return ErrEmptyLayout
	}
	for _, e := range layout.Elements() {
		if e.Type.ComponentCount() == 0 {
			return fmt.Errorf("%w: attribute %q has no type", ErrInvalidAttribute, e.Name)
		}
	}

	va.Bind()
	vb.Bind()

	stride := int32(layout.Stride())
	for _, e := range layout.Elements() {
		count := e.Type.ComponentCount()
		columnSize := uintptr(int(count) * 4)
		for col := 0; col < e.Type.slots(); col++ {
			va.ctx.dev.EnableVertexAttribArray(va.attribIndex)
			va.ctx.dev.VertexAttribPointer(va.attribIndex, count, e.Type.kind(), e.Normalized, stride,
				uintptr(e.Offset)+uintptr(col)*columnSize)
			va.attribIndex++
		}
	}

	va.vertexBuffers = append(va.vertexBuffers, vb.Retain())
	return nil
}

// SetIndexBuffer attaches ib, replacing and releasing any previous index buffer.
// The array retains ib.
func (va *VertexArray) SetIndexBuffer(ib *IndexBuffer) error {
	if va.handle == 0 || ib.handle == 0 {
		return ErrReleased
	}
	if ib.ctx != va.ctx {
		return ErrContextMismatch
	}

	va.Bind()
	ib.Bind()

	ib.Retain()
	if va.indexBuffer != nil {
		va.indexBuffer.Release()
	}
	va.indexBuffer = ib
	return nil
}

// VertexBuffers returns the attached vertex buffers.
func (va *VertexArray) VertexBuffers() []*VertexBuffer { return va.vertexBuffers }

// IndexBuffer returns the attached index buffer, or nil.
func (va *VertexArray) IndexBuffer() *IndexBuffer { return va.indexBuffer }

// Retain adds an owner to the vertex array.
func (va *VertexArray) Retain() *VertexArray {
	if !va.retain() {
		va.ctx.logger.Warn("retain of released vertex array")
	}
	return va
}

// Release drops an owner. On the last release the GPU array is deleted and
// every attached buffer is released.
func (va *VertexArray) Release() {
	last, ok := va.release()
	if !ok {
		va.ctx.logger.Warn("vertex array released more than once")
		return
	}
	if !last {
		return
	}

	va.ctx.forgetVertexArray(va.handle)
	va.ctx.dev.DeleteVertexArray(va.handle)
	va.ctx.logger.Debug("vertex array deleted", "handle", va.handle)
	va.handle = 0

	for _, vb := range va.vertexBuffers {
		vb.Release()
	}
	va.vertexBuffers = nil
	if va.indexBuffer != nil {
		va.indexBuffer.Release()
		va.indexBuffer = nil
	}
}
