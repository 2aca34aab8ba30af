package render_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/render"
)

// staticCamera is a Camera with a fixed matrix.
type staticCamera struct {
	vp mgl32.Mat4
}

func (c staticCamera) ViewProjectionMatrix() mgl32.Mat4 { return c.vp }

func newTestRenderer(t *testing.T) (*render.Renderer, *render.Context, *fakeDevice) {
	t.Helper()
	ctx, dev := newTestContext()
	r := render.New(ctx)
	require.NoError(t, r.Init())
	return r, ctx, dev
}

func TestRendererInit(t *testing.T) {
	ctx, dev := newTestContext()
	r := render.New(ctx, render.WithClearColor(0.2, 0.3, 0.4, 1))

	require.NoError(t, r.Init())
	require.NoError(t, r.Init())

	assert.True(t, dev.enabled[render.CapBlend])
	assert.True(t, dev.enabled[render.CapDepthTest])
	assert.Equal(t, 1, dev.count("BlendFunc"), "setup runs once")
	assert.Equal(t, [4]float32{0.2, 0.3, 0.4, 1}, dev.clearColor)
}

func TestRendererInitFromConfig(t *testing.T) {
	ctx, dev := newTestContext()
	cfg := render.DefaultConfig()
	cfg.Blend = false
	cfg.DepthTest = false

	r := render.New(ctx, render.WithConfig(cfg))
	require.NoError(t, r.Init())

	assert.False(t, dev.enabled[render.CapBlend])
	assert.False(t, dev.enabled[render.CapDepthTest])
	assert.Zero(t, dev.count("BlendFunc"))
	assert.Equal(t, cfg, r.Config())
}

func TestSubmitIdentity(t *testing.T) {
	r, ctx, dev := newTestRenderer(t)
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, _, _ := newTestQuad(t, ctx)

	state := render.NewRenderState()
	r.BeginScene(state, staticCamera{vp: mgl32.Ident4()})
	require.NoError(t, r.Submit(state, shader, va, mgl32.Ident4()))
	r.EndScene(state)

	vp, ok := dev.lastUniform(0)
	require.True(t, ok)
	assert.Equal(t, mgl32.Ident4(), vp.value)

	transform, ok := dev.lastUniform(1)
	require.True(t, ok)
	assert.Equal(t, mgl32.Ident4(), transform.value)

	// Both uniforms are set before the draw, on the shader's program.
	drawAt := -1
	for i, c := range dev.calls {
		if c == "DrawElements" {
			drawAt = i
		}
	}
	require.NotEqual(t, -1, drawAt)
	assert.Equal(t, 2, countBefore(dev.calls, "UniformMatrix4fv", drawAt))

	require.Len(t, dev.draws, 1)
	assert.Equal(t, shader.Handle(), dev.draws[0].program)
	assert.Equal(t, va.Handle(), dev.draws[0].array)
	assert.Equal(t, int32(6), dev.draws[0].count)
	assert.Equal(t, 1, state.Stats().DrawCalls)
}

func countBefore(calls []string, name string, end int) int {
	n := 0
	for _, c := range calls[:end] {
		if c == name {
			n++
		}
	}
	return n
}

func TestSubmitUsesSceneMatrix(t *testing.T) {
	r, ctx, dev := newTestRenderer(t)
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, _, _ := newTestQuad(t, ctx)

	vp := mgl32.Ortho(-2, 2, -1, 1, -1, 1)
	transform := mgl32.Translate3D(1, 2, 0)

	state := render.NewRenderState()
	r.BeginScene(state, staticCamera{vp: mgl32.Ident4()})
	r.BeginScene(state, staticCamera{vp: vp}) // Last write wins
	require.NoError(t, r.Submit(state, shader, va, transform))

	got, _ := dev.lastUniform(0)
	assert.Equal(t, vp, got.value)
	got, _ = dev.lastUniform(1)
	assert.Equal(t, transform, got.value)
}

func TestSubmitLinksShaderOnce(t *testing.T) {
	r, ctx, dev := newTestRenderer(t)
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, _, _ := newTestQuad(t, ctx)

	state := render.NewRenderState()
	r.BeginScene(state, staticCamera{vp: mgl32.Ident4()})
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Submit(state, shader, va, mgl32.Ident4()))
	}
	r.EndScene(state)

	assert.Equal(t, 1, dev.count("LinkProgram"))
	assert.Equal(t, 2, dev.uniformQueries, "one query per standard uniform")
	assert.Equal(t, 5, state.Stats().DrawCalls)
}

func TestSubmitPreconditions(t *testing.T) {
	ctx, dev := newTestContext()
	r := render.New(ctx)
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, _, _ := newTestQuad(t, ctx)
	state := render.NewRenderState()

	assert.ErrorIs(t, r.Submit(state, shader, va, mgl32.Ident4()), render.ErrNotInitialized)

	require.NoError(t, r.Init())
	assert.ErrorIs(t, r.Submit(state, shader, va, mgl32.Ident4()), render.ErrSceneNotActive)
	assert.ErrorIs(t, r.Submit(nil, shader, va, mgl32.Ident4()), render.ErrSceneNotActive)

	r.BeginScene(state, staticCamera{vp: mgl32.Ident4()})
	assert.True(t, state.Active())
	r.EndScene(state)
	assert.False(t, state.Active())
	assert.ErrorIs(t, r.Submit(state, shader, va, mgl32.Ident4()), render.ErrSceneNotActive)

	assert.Empty(t, dev.draws)
	assert.Zero(t, dev.count("LinkProgram"))
}

func TestSubmitWithoutIndexBuffer(t *testing.T) {
	r, ctx, dev := newTestRenderer(t)
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, err := ctx.NewVertexArray()
	require.NoError(t, err)

	state := render.NewRenderState()
	r.BeginScene(state, staticCamera{vp: mgl32.Ident4()})
	assert.ErrorIs(t, r.Submit(state, shader, va, mgl32.Ident4()), render.ErrNoIndexBuffer)
	assert.Empty(t, dev.draws)
}

func TestSubmitFailedShader(t *testing.T) {
	r, ctx, dev := newTestRenderer(t)
	dev.linkFail = true
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, _, _ := newTestQuad(t, ctx)

	state := render.NewRenderState()
	r.BeginScene(state, staticCamera{vp: mgl32.Ident4()})

	var linkErr *render.LinkError
	assert.ErrorAs(t, r.Submit(state, shader, va, mgl32.Ident4()), &linkErr)
	assert.ErrorAs(t, r.Submit(state, shader, va, mgl32.Ident4()), &linkErr)
	assert.Equal(t, 1, dev.count("LinkProgram"))
	assert.Empty(t, dev.draws)
}

func TestIndependentRenderStates(t *testing.T) {
	r, ctx, dev := newTestRenderer(t)
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, _, _ := newTestQuad(t, ctx)

	world := render.NewRenderState()
	hud := render.NewRenderState()
	assert.Equal(t, mgl32.Ident4(), hud.ViewProjection())

	worldVP := mgl32.Ortho(-4, 4, -3, 3, -1, 1)
	r.BeginScene(world, staticCamera{vp: worldVP})
	r.BeginScene(hud, staticCamera{vp: mgl32.Ident4()})

	require.NoError(t, r.Submit(world, shader, va, mgl32.Ident4()))
	got, _ := dev.lastUniform(0)
	assert.Equal(t, worldVP, got.value)

	require.NoError(t, r.Submit(hud, shader, va, mgl32.Ident4()))
	got, _ = dev.lastUniform(0)
	assert.Equal(t, mgl32.Ident4(), got.value)
}

func TestRendererWindowResizeAndClear(t *testing.T) {
	r, _, dev := newTestRenderer(t)

	r.OnWindowResize(800, 600)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.viewport)

	r.Command().SetClearColor(1, 0, 0, 1)
	r.Command().Clear()
	assert.Equal(t, [4]float32{1, 0, 0, 1}, dev.clearColor)
	assert.Equal(t, 1, dev.count("Clear"))
}

func TestRendererWithOrthographicController(t *testing.T) {
	r, ctx, dev := newTestRenderer(t)
	shader, err := ctx.NewShaderFromSource("flat", twoStageSource("\n"))
	require.NoError(t, err)
	va, _, _ := newTestQuad(t, ctx)

	controller := render.NewOrthographicCameraController(16.0/9.0, false)
	state := render.NewRenderState()
	r.BeginScene(state, controller)
	require.NoError(t, r.Submit(state, shader, va, mgl32.Ident4()))

	got, _ := dev.lastUniform(0)
	assert.Equal(t, controller.Camera().ViewProjectionMatrix(), got.value)
}
