// Example draws a grid of colored quads through the render core, with an
// orthographic camera driven by W/A/S/D, Q/E and the mouse wheel.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example from the repository root
//
// Settings are read from example/sandbox.toml. Editing
// example/assets/flat_color.glsl while the example runs reloads the shader.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/render"
	"github.com/go-theft-auto/render/backend/opengl"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	windowTitle  = "render example"
)

func init() {
	// GLFW and every GL call must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "example/sandbox.toml", "renderer config file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if err := run(*configPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) error {
	cfg, err := render.LoadConfig(configPath)
	if err != nil {
		return err
	}
	render.SetVerbose(verbose || cfg.Verbose)

	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	dev, err := opengl.NewDevice()
	if err != nil {
		return err
	}

	ctx := render.NewContext(dev)
	ctx.Logger().Info("opengl device ready", "version", dev.Version())

	renderer := render.New(ctx, render.WithConfig(cfg))
	if err := renderer.Init(); err != nil {
		return err
	}

	fbw, fbh := window.GetFramebufferSize()
	renderer.OnWindowResize(fbw, fbh)

	controller := render.NewOrthographicCameraController(float32(fbw)/float32(fbh), true)

	input := opengl.NewGLFWInputAdapter(window, func(e render.Event) bool {
		if resize, ok := e.(render.WindowResizedEvent); ok {
			renderer.OnWindowResize(resize.Width, resize.Height)
		}
		return controller.OnEvent(e)
	})

	shaders := ctx.NewShaderLibrary()
	defer shaders.Release()

	flat, err := shaders.Load(filepath.Join(cfg.ShaderDir, "flat_color.glsl"))
	if err != nil {
		return err
	}

	watcher, err := shaders.Watch(render.WithReloadHandler(func(name string, err error) {
		if err == nil {
			ctx.Logger().Info("reloaded", "shader", name)
		}
	}))
	if err != nil {
		return err
	}
	defer watcher.Close()

	quad, err := newQuad(ctx)
	if err != nil {
		return err
	}
	defer quad.Release()

	state := render.NewRenderState()
	last := glfw.GetTime()

	// Main loop.
	for !window.ShouldClose() {
		input.Update()
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		ctx.RunPending()
		controller.OnUpdate(dt, input)

		renderer.Command().Clear()

		renderer.BeginScene(state, controller)
		if err := drawGrid(renderer, state, flat, quad); err != nil {
			ctx.Logger().Error("draw failed", "err", err)
		}
		renderer.EndScene(state)

		if input.Input().KeyPressed(render.KeyEscape) {
			window.SetShouldClose(true)
		}

		window.SwapBuffers()
	}

	return nil
}

// newQuad builds a unit quad centered on the origin.
func newQuad(ctx *render.Context) (*render.VertexArray, error) {
	vertices := []float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		0.5, 0.5, 0.0,
		-0.5, 0.5, 0.0,
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	va, err := ctx.NewVertexArray()
	if err != nil {
		return nil, err
	}

	vb, err := ctx.NewVertexBuffer(vertices, render.StaticDraw)
	if err != nil {
		va.Release()
		return nil, err
	}
	defer vb.Release()
	vb.SetLayout(render.NewBufferLayout(render.BufferElement{Name: "a_Position", Type: render.DataFloat3}))

	ib, err := ctx.NewIndexBuffer(indices, render.StaticDraw)
	if err != nil {
		va.Release()
		return nil, err
	}
	defer ib.Release()

	if err := va.AddVertexBuffer(vb); err != nil {
		va.Release()
		return nil, err
	}
	if err := va.SetIndexBuffer(ib); err != nil {
		va.Release()
		return nil, err
	}
	return va, nil
}

func drawGrid(r *render.Renderer, state *render.RenderState, shader *render.Shader, quad *render.VertexArray) error {
	if err := shader.Bind(); err != nil {
		return err
	}
	scale := mgl32.Scale3D(0.1, 0.1, 1)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			color := mgl32.Vec4{0.8, 0.2, 0.3, 1}
			if (x+y)%2 == 0 {
				color = mgl32.Vec4{0.2, 0.3, 0.8, 1}
			}
			if err := shader.SetVec4("u_Color", color); err != nil {
				return err
			}
			transform := mgl32.Translate3D(float32(x)*0.11, float32(y)*0.11, 0).Mul4(scale)
			if err := r.Submit(state, shader, quad, transform); err != nil {
				return err
			}
		}
	}
	return nil
}
