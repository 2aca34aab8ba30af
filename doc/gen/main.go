// Command gen renders sample scenes with the render core, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/render"
	"github.com/go-theft-auto/render/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single scene capture.
type screenshot struct {
	name   string                                       // filename without extension
	width  int                                          // viewport width
	height int                                          // viewport height
	camera func(c *render.OrthographicCameraController) // camera setup before drawing
}

// scene holds the GPU resources shared by every capture.
type scene struct {
	renderer *render.Renderer
	shader   *render.Shader
	quad     *render.VertexArray
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	dev, err := opengl.NewDevice()
	if err != nil {
		return err
	}
	ctx := render.NewContext(dev)

	renderer := render.New(ctx, render.WithClearColor(0.12, 0.12, 0.14, 1))
	if err := renderer.Init(); err != nil {
		return err
	}

	shader, err := ctx.NewShader(filepath.Join("example", "assets", "flat_color.glsl"))
	if err != nil {
		return fmt.Errorf("flat shader: %w", err)
	}
	defer shader.Release()

	quad, err := newQuad(ctx)
	if err != nil {
		return fmt.Errorf("quad: %w", err)
	}
	defer quad.Release()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	sc := scene{renderer: renderer, shader: shader, quad: quad}
	shots := buildScreenshots()

	for _, s := range shots {
		if err := capture(dev, sc, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(dev *opengl.Device, sc scene, s screenshot, outDir string) error {
	// The hidden window stays at 800x600 (larger than every screenshot), so
	// only the viewport changes.
	sc.renderer.OnWindowResize(s.width, s.height)
	sc.renderer.Command().Clear()

	// Fresh controller per screenshot so camera state does not leak between captures.
	controller := render.NewOrthographicCameraController(float32(s.width)/float32(s.height), true)
	if s.camera != nil {
		s.camera(controller)
	}

	state := render.NewRenderState()
	sc.renderer.BeginScene(state, controller)
	if err := drawGrid(sc, state); err != nil {
		return err
	}
	sc.renderer.EndScene(state)

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, dev.ReadPixels(s.width, s.height))

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the list of scenes to capture.
func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "grid", width: 640, height: 360},
		{
			name: "grid_zoomed_out", width: 640, height: 360,
			camera: func(c *render.OrthographicCameraController) {
				c.OnEvent(render.MouseScrolledEvent{YOffset: -3})
			},
		},
		{
			name: "grid_panned", width: 640, height: 360,
			camera: func(c *render.OrthographicCameraController) {
				c.OnUpdate(1, heldKeys{render.KeyD: true, render.KeyW: true})
			},
		},
		{
			name: "grid_rotated", width: 480, height: 480,
			camera: func(c *render.OrthographicCameraController) {
				c.OnUpdate(0.25, heldKeys{render.KeyQ: true})
			},
		},
	}
}

// heldKeys is a render.KeyState with a fixed set of held keys.
type heldKeys map[render.Key]bool

func (k heldKeys) IsKeyPressed(key render.Key) bool { return k[key] }

func drawGrid(sc scene, state *render.RenderState) error {
	if err := sc.shader.Bind(); err != nil {
		return err
	}
	scale := mgl32.Scale3D(0.1, 0.1, 1)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			color := mgl32.Vec4{0.8, 0.2, 0.3, 1}
			if (x+y)%2 == 0 {
				color = mgl32.Vec4{0.2, 0.3, 0.8, 1}
			}
			if err := sc.shader.SetVec4("u_Color", color); err != nil {
				return err
			}
			transform := mgl32.Translate3D(float32(x-10)*0.11, float32(y-10)*0.11, 0).Mul4(scale)
			if err := sc.renderer.Submit(state, sc.shader, sc.quad, transform); err != nil {
				return err
			}
		}
	}
	return nil
}

// newQuad builds a unit quad centered on the origin.
func newQuad(ctx *render.Context) (*render.VertexArray, error) {
	va, err := ctx.NewVertexArray()
	if err != nil {
		return nil, err
	}

	vb, err := ctx.NewVertexBuffer([]float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		0.5, 0.5, 0.0,
		-0.5, 0.5, 0.0,
	}, render.StaticDraw)
	if err != nil {
		va.Release()
		return nil, err
	}
	defer vb.Release()
	vb.SetLayout(render.NewBufferLayout(render.BufferElement{Name: "a_Position", Type: render.DataFloat3}))

	ib, err := ctx.NewIndexBuffer([]uint32{0, 1, 2, 2, 3, 0}, render.StaticDraw)
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
