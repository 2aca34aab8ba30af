package render

import "github.com/go-gl/mathgl/mgl32"

// OrthographicCamera is a 2D camera with position and rotation about Z.
type OrthographicCamera struct {
	projection     mgl32.Mat4
	view           mgl32.Mat4
	viewProjection mgl32.Mat4

	position mgl32.Vec3
	rotation float32 // Degrees
}

// NewOrthographicCamera creates a camera looking at the given extents, with
// near and far planes at -1 and 1.
func NewOrthographicCamera(left, right, bottom, top float32) *OrthographicCamera {
	c := &OrthographicCamera{
		projection: mgl32.Ortho(left, right, bottom, top, -1, 1),
		view:       mgl32.Ident4(),
	}
	c.viewProjection = c.projection.Mul4(c.view)
	return c
}

// SetProjection replaces the projection extents.
func (c *OrthographicCamera) SetProjection(left, right, bottom, top float32) {
	c.projection = mgl32.Ortho(left, right, bottom, top, -1, 1)
	c.viewProjection = c.projection.Mul4(c.view)
}

// Position returns the camera position.
func (c *OrthographicCamera) Position() mgl32.Vec3 { return c.position }

// SetPosition moves the camera.
func (c *OrthographicCamera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.recalculateView()
}

// Rotation returns the rotation about Z in degrees.
func (c *OrthographicCamera) Rotation() float32 { return c.rotation }

// SetRotation sets the rotation about Z in degrees.
func (c *OrthographicCamera) SetRotation(deg float32) {
	c.rotation = deg
	c.recalculateView()
}

// ProjectionMatrix returns the projection matrix.
func (c *OrthographicCamera) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// ViewMatrix returns the view matrix.
func (c *OrthographicCamera) ViewMatrix() mgl32.Mat4 { return c.view }

// ViewProjectionMatrix returns projection * view.
func (c *OrthographicCamera) ViewProjectionMatrix() mgl32.Mat4 { return c.viewProjection }

func (c *OrthographicCamera) recalculateView() {
	transform := mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.rotation)))
	c.view = transform.Inv()
	c.viewProjection = c.projection.Mul4(c.view)
}
