package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera controller tuning.
const (
	MinZoomLevel         float32 = 0.25
	ZoomStep             float32 = 1.25 // Zoom factor per scroll notch
	DefaultRotationSpeed float32 = 180  // Degrees per second
)

// CameraBounds are the extents an orthographic camera shows.
type CameraBounds struct {
	Left, Right float32
	Bottom, Top float32
}

// Width returns Right - Left.
func (b CameraBounds) Width() float32 { return b.Right - b.Left }

// Height returns Top - Bottom.
func (b CameraBounds) Height() float32 { return b.Top - b.Bottom }

// OrthographicCameraController drives an OrthographicCamera from input.
// Scrolling zooms, window resizes change the aspect ratio, W/A/S/D pan and,
// with rotation enabled, Q/E rotate. Pan speed equals the zoom level, so
// the camera moves faster when zoomed out.
type OrthographicCameraController struct {
	aspectRatio float32
	zoomLevel   float32
	rotation    bool

	bounds CameraBounds
	camera *OrthographicCamera

	position       mgl32.Vec3
	cameraRotation float32 // Degrees

	translationSpeed float32
	rotationSpeed    float32
}

// NewOrthographicCameraController creates a controller for the given aspect
// ratio. If rotation is false, Q/E are ignored.
func NewOrthographicCameraController(aspectRatio float32, rotation bool) *OrthographicCameraController {
	c := &OrthographicCameraController{
		aspectRatio:      aspectRatio,
		zoomLevel:        1,
		rotation:         rotation,
		translationSpeed: 1,
		rotationSpeed:    DefaultRotationSpeed,
	}
	c.bounds = c.computeBounds()
	c.camera = NewOrthographicCamera(c.bounds.Left, c.bounds.Right, c.bounds.Bottom, c.bounds.Top)
	return c
}

// Camera returns the controlled camera.
func (c *OrthographicCameraController) Camera() *OrthographicCamera { return c.camera }

// ViewProjectionMatrix returns the camera's view-projection matrix, so the
// controller can be passed to Renderer.BeginScene directly.
func (c *OrthographicCameraController) ViewProjectionMatrix() mgl32.Mat4 {
	return c.camera.ViewProjectionMatrix()
}

// Bounds returns the current camera extents.
func (c *OrthographicCameraController) Bounds() CameraBounds { return c.bounds }

// ZoomLevel returns the current zoom level.
func (c *OrthographicCameraController) ZoomLevel() float32 { return c.zoomLevel }

// SetZoomLevel sets the zoom level, clamped to MinZoomLevel.
func (c *OrthographicCameraController) SetZoomLevel(z float32) {
	c.zoomLevel = max(z, MinZoomLevel)
	c.translationSpeed = c.zoomLevel
	c.updateProjection()
}

// AspectRatio returns width / height.
func (c *OrthographicCameraController) AspectRatio() float32 { return c.aspectRatio }

// Position returns the camera position.
func (c *OrthographicCameraController) Position() mgl32.Vec3 { return c.position }

// Rotation returns the camera rotation in degrees, in [-180, 180].
func (c *OrthographicCameraController) Rotation() float32 { return c.cameraRotation }

// OnUpdate integrates held movement keys over dt seconds.
func (c *OrthographicCameraController) OnUpdate(dt float32, keys KeyState) {
	rad := float64(mgl32.DegToRad(c.cameraRotation))
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))
	step := c.translationSpeed * dt

	if keys.IsKeyPressed(KeyA) {
		c.position[0] -= cos * step
		c.position[1] -= sin * step
	} else if keys.IsKeyPressed(KeyD) {
		c.position[0] += cos * step
		c.position[1] += sin * step
	}

	if keys.IsKeyPressed(KeyW) {
		c.position[0] += -sin * step
		c.position[1] += cos * step
	} else if keys.IsKeyPressed(KeyS) {
		c.position[0] -= -sin * step
		c.position[1] -= cos * step
	}

	if c.rotation {
		if keys.IsKeyPressed(KeyQ) {
			c.cameraRotation += c.rotationSpeed * dt
		}
		if keys.IsKeyPressed(KeyE) {
			c.cameraRotation -= c.rotationSpeed * dt
		}

		if c.cameraRotation > 180 {
			c.cameraRotation -= 360
		} else if c.cameraRotation <= -180 {
			c.cameraRotation += 360
		}

		c.camera.SetRotation(c.cameraRotation)
	}

	c.camera.SetPosition(c.position)
	c.translationSpeed = c.zoomLevel
}

// OnEvent reacts to scroll and resize events. It returns true if e was
// consumed; the controller never consumes events so other handlers see them too.
func (c *OrthographicCameraController) OnEvent(e Event) bool {
	switch e := e.(type) {
	case MouseScrolledEvent:
		return c.onMouseScrolled(e)
	case WindowResizedEvent:
		return c.onWindowResized(e)
	default:
		return false
	}
}

func (c *OrthographicCameraController) onMouseScrolled(e MouseScrolledEvent) bool {
	factor := float32(math.Pow(float64(ZoomStep), float64(-e.YOffset)))
	c.SetZoomLevel(c.zoomLevel * factor)
	return false
}

func (c *OrthographicCameraController) onWindowResized(e WindowResizedEvent) bool {
	if e.Width <= 0 || e.Height <= 0 {
		return false
	}
	c.aspectRatio = float32(e.Width) / float32(e.Height)
	c.updateProjection()
	return false
}

func (c *OrthographicCameraController) computeBounds() CameraBounds {
	return CameraBounds{
		Left:   -c.aspectRatio * c.zoomLevel,
		Right:  c.aspectRatio * c.zoomLevel,
		Bottom: -c.zoomLevel,
		Top:    c.zoomLevel,
	}
}

func (c *OrthographicCameraController) updateProjection() {
	c.bounds = c.computeBounds()
	c.camera.SetProjection(c.bounds.Left, c.bounds.Right, c.bounds.Bottom, c.bounds.Top)
}
