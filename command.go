package render

// RenderCommand is the thin layer between the Renderer and the Device.
// It knows nothing about shaders or cameras.
type RenderCommand struct {
	ctx *Context
}

// NewRenderCommand creates a command layer issuing to ctx.
func NewRenderCommand(ctx *Context) *RenderCommand {
	return &RenderCommand{ctx: ctx}
}

// Init applies the one-time pipeline state from cfg.
func (rc *RenderCommand) Init(cfg Config) {
	dev := rc.ctx.dev
	if cfg.Blend {
		dev.Enable(CapBlend)
		dev.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	} else {
		dev.Disable(CapBlend)
	}
	if cfg.DepthTest {
		dev.Enable(CapDepthTest)
	} else {
		dev.Disable(CapDepthTest)
	}
	c := cfg.ClearColor
	dev.ClearColor(c[0], c[1], c[2], c[3])
}

// SetClearColor sets the color used by Clear.
func (rc *RenderCommand) SetClearColor(r, g, b, a float32) {
	rc.ctx.dev.ClearColor(r, g, b, a)
}

// Clear clears the color and depth attachments.
func (rc *RenderCommand) Clear() {
	rc.ctx.dev.Clear(ClearColorBit | ClearDepthBit)
}

// SetViewport sets the viewport rectangle.
func (rc *RenderCommand) SetViewport(x, y, width, height int) {
	rc.ctx.dev.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// DrawIndexed draws every index of va's index buffer as triangles.
// The vertex array must be bound.
func (rc *RenderCommand) DrawIndexed(va *VertexArray) error {
	if va.handle == 0 {
		return ErrReleased
	}
	ib := va.IndexBuffer()
	if ib == nil {
		return ErrNoIndexBuffer
	}
	rc.ctx.dev.DrawElements(int32(ib.Count()))
	return nil
}
