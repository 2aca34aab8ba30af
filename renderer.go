package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera supplies the view-projection matrix for a scene.
type Camera interface {
	ViewProjectionMatrix() mgl32.Mat4
}

// RenderState is the per-pass state shared by every Submit between
// BeginScene and EndScene. Independent passes use independent states.
type RenderState struct {
	viewProjection mgl32.Mat4
	active         bool
	drawCalls      int
}

// NewRenderState returns an inactive state holding the identity matrix.
func NewRenderState() *RenderState {
	return &RenderState{viewProjection: mgl32.Ident4()}
}

// ViewProjection returns the matrix captured by the last BeginScene.
func (s *RenderState) ViewProjection() mgl32.Mat4 { return s.viewProjection }

// Active returns true between BeginScene and EndScene.
func (s *RenderState) Active() bool { return s.active }

// Stats holds counters for the current or last scene.
type Stats struct {
	DrawCalls int
}

// Stats returns the counters since the last BeginScene.
func (s *RenderState) Stats() Stats { return Stats{DrawCalls: s.drawCalls} }

// Renderer submits draws through a RenderCommand.
type Renderer struct {
	ctx         *Context
	cmd         *RenderCommand
	cfg         Config
	initialized bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConfig sets the renderer settings.
func WithConfig(cfg Config) Option {
	return func(r *Renderer) { r.cfg = cfg }
}

// WithClearColor overrides the clear color.
func WithClearColor(red, green, blue, alpha float32) Option {
	return func(r *Renderer) { r.cfg.ClearColor = [4]float32{red, green, blue, alpha} }
}

// New creates a renderer for ctx. Call Init before the first Submit.
func New(ctx *Context, opts ...Option) *Renderer {
	r := &Renderer{
		ctx: ctx,
		cmd: NewRenderCommand(ctx),
		cfg: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Init performs one-time pipeline setup. Further calls have no effect.
func (r *Renderer) Init() error {
	if r.initialized {
		return nil
	}
	r.cmd.Init(r.cfg)
	r.initialized = true
	r.ctx.logger.Debug("renderer initialized", "blend", r.cfg.Blend, "depthTest", r.cfg.DepthTest)
	return nil
}

// Config returns the renderer settings.
func (r *Renderer) Config() Config { return r.cfg }

// Command returns the command layer, for clears and viewport changes.
func (r *Renderer) Command() *RenderCommand { return r.cmd }

// OnWindowResize resizes the viewport to the new framebuffer size.
func (r *Renderer) OnWindowResize(width, height int) {
	r.cmd.SetViewport(0, 0, width, height)
}

// BeginScene captures the camera's view-projection matrix into state.
// Calling it again before EndScene overwrites the matrix.
func (r *Renderer) BeginScene(state *RenderState, cam Camera) {
	state.viewProjection = cam.ViewProjectionMatrix()
	state.active = true
	state.drawCalls = 0
}

// EndScene closes the scene opened by BeginScene.
func (r *Renderer) EndScene(state *RenderState) {
	state.active = false
}

// Submit draws va with shader. The shader is bound (linking it on first
// use), receives the scene's view-projection matrix and transform, and va is
// drawn with its index buffer.
func (r *Renderer) Submit(state *RenderState, shader *Shader, va *VertexArray, transform mgl32.Mat4) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if state == nil || !state.active {
		return ErrSceneNotActive
	}

	if err := shader.Bind(); err != nil {
		return err
	}
	if err := shader.SetMat4(UniformViewProjection, state.viewProjection); err != nil {
		return err
	}
	if err := shader.SetMat4(UniformTransform, transform); err != nil {
		return err
	}

	va.Bind()
	if err := r.cmd.DrawIndexed(va); err != nil {
		return fmt.Errorf("submit %q: %w", shader.Name(), err)
	}
	state.drawCalls++
	return nil
}
