package render

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Device is the interface for the GPU calls the render core issues.
// The OpenGL backend implements it with go-gl; tests use a recording fake.
// Handles are opaque and 0 always means "none".
//
// All methods must be called from the thread that owns the GPU context.
type Device interface {
	// Programs
	CreateProgram() uint32
	DeleteProgram(program uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) bool
	ProgramInfoLog(program uint32) string
	ValidateProgram(program uint32)
	AttachedShaders(program uint32) []uint32
	UseProgram(program uint32)
	BindAttribLocation(program, index uint32, name string)
	BindFragDataLocation(program, color uint32, name string)

	// Shader stages
	CreateShader(stage ShaderType) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)

	// Uniforms target the currently used program.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform3fv(location int32, v mgl32.Vec3)
	Uniform4fv(location int32, v mgl32.Vec4)
	UniformMatrix3fv(location int32, m mgl32.Mat3)
	UniformMatrix4fv(location int32, m mgl32.Mat4)

	// Buffers
	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, size int, data unsafe.Pointer, usage BufferUsage)
	BufferSubData(target BufferTarget, offset, size int, data unsafe.Pointer)

	// Vertex arrays
	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, kind ScalarKind, normalized bool, stride int32, offset uintptr)

	// Pipeline state and drawing
	Enable(c Capability)
	Disable(c Capability)
	BlendFunc(src, dst BlendFactor)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)
	DrawElements(count int32)
}

// BufferTarget is the binding point of a buffer object.
type BufferTarget int

const (
	ArrayBuffer        BufferTarget = iota // Vertex attribute data
	ElementArrayBuffer                     // Index data
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "array"
	case ElementArrayBuffer:
		return "element-array"
	default:
		return "unknown"
	}
}

// BufferUsage is the expected update pattern of a buffer's contents.
type BufferUsage int

const (
	StaticDraw  BufferUsage = iota // Written once, drawn many times
	DynamicDraw                    // Rewritten occasionally
	StreamDraw                     // Rewritten every frame
)

func (u BufferUsage) String() string {
	switch u {
	case StaticDraw:
		return "static"
	case DynamicDraw:
		return "dynamic"
	case StreamDraw:
		return "stream"
	default:
		return "unknown"
	}
}

// ScalarKind is the component type of a vertex attribute.
type ScalarKind int

const (
	KindFloat ScalarKind = iota
	KindInt
	KindBool
)

// Capability is a toggleable pipeline state.
type Capability int

const (
	CapBlend Capability = iota
	CapDepthTest
	CapCullFace
)

// BlendFactor is a source or destination blend factor.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// ClearMask selects the framebuffer attachments cleared by Device.Clear.
type ClearMask uint8

const (
	ClearColorBit ClearMask = 1 << iota
	ClearDepthBit
)
