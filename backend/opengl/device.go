// Package opengl provides an OpenGL 4.1 core backend for the render package.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/render"
)

// computeShader is GL_COMPUTE_SHADER. It is not part of 4.1 core, so drivers
// without compute support reject it and CreateShader returns 0.
const computeShader = 0x91B9

// Device implements render.Device on the current OpenGL context.
type Device struct {
	version string
}

// NewDevice loads the OpenGL function pointers for the current context.
// A context must be current on the calling thread.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return &Device{version: gl.GoStr(gl.GetString(gl.VERSION))}, nil
}

// Version returns the GL_VERSION string of the context.
func (d *Device) Version() string {
	return d.version
}

var _ render.Device = (*Device)(nil)

// --- Programs ---

func (d *Device) CreateProgram() uint32        { return gl.CreateProgram() }
func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *Device) LinkProgram(program uint32)   { gl.LinkProgram(program) }

func (d *Device) ProgramLinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &log[0])
	return cString(log)
}

func (d *Device) ValidateProgram(program uint32) { gl.ValidateProgram(program) }

func (d *Device) AttachedShaders(program uint32) []uint32 {
	var count int32
	gl.GetProgramiv(program, gl.ATTACHED_SHADERS, &count)
	if count <= 0 {
		return nil
	}
	shaders := make([]uint32, count)
	var written int32
	gl.GetAttachedShaders(program, count, &written, &shaders[0])
	return shaders[:written]
}

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
}

func (d *Device) BindFragDataLocation(program, color uint32, name string) {
	gl.BindFragDataLocation(program, color, gl.Str(name+"\x00"))
}

// --- Shader stages ---

func (d *Device) CreateShader(stage render.ShaderType) uint32 {
	xtype, ok := shaderTypes[stage]
	if !ok {
		return 0
	}
	return gl.CreateShader(xtype)
}

var shaderTypes = map[render.ShaderType]uint32{
	render.ShaderVertex:         gl.VERTEX_SHADER,
	render.ShaderFragment:       gl.FRAGMENT_SHADER,
	render.ShaderGeometry:       gl.GEOMETRY_SHADER,
	render.ShaderTessControl:    gl.TESS_CONTROL_SHADER,
	render.ShaderTessEvaluation: gl.TESS_EVALUATION_SHADER,
	render.ShaderCompute:        computeShader,
}

func (d *Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Device) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
}

func (d *Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Device) ShaderCompileStatus(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
	return cString(log)
}

func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Device) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

// --- Uniforms ---

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(location int32, v int32)         { gl.Uniform1i(location, v) }
func (d *Device) Uniform1f(location int32, v float32)       { gl.Uniform1f(location, v) }
func (d *Device) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (d *Device) Uniform3fv(location int32, v mgl32.Vec3) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (d *Device) Uniform4fv(location int32, v mgl32.Vec4) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (d *Device) UniformMatrix3fv(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (d *Device) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// --- Buffers ---

func (d *Device) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *Device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Device) BindBuffer(target render.BufferTarget, buffer uint32) {
	gl.BindBuffer(bufferTarget(target), buffer)
}

func (d *Device) BufferData(target render.BufferTarget, size int, data unsafe.Pointer, usage render.BufferUsage) {
	gl.BufferData(bufferTarget(target), size, data, bufferUsage(usage))
}

func (d *Device) BufferSubData(target render.BufferTarget, offset, size int, data unsafe.Pointer) {
	gl.BufferSubData(bufferTarget(target), offset, size, data)
}

func bufferTarget(t render.BufferTarget) uint32 {
	if t == render.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u render.BufferUsage) uint32 {
	switch u {
	case render.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case render.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

// --- Vertex arrays ---

func (d *Device) GenVertexArray() uint32 {
	var array uint32
	gl.GenVertexArrays(1, &array)
	return array
}

func (d *Device) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }
func (d *Device) BindVertexArray(array uint32)   { gl.BindVertexArray(array) }
func (d *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Device) VertexAttribPointer(index uint32, size int32, kind render.ScalarKind, normalized bool, stride int32, offset uintptr) {
	switch kind {
	case render.KindInt:
		gl.VertexAttribIPointerWithOffset(index, size, gl.INT, stride, offset)
	case render.KindBool:
		gl.VertexAttribIPointerWithOffset(index, size, gl.UNSIGNED_BYTE, stride, offset)
	default:
		gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, normalized, stride, offset)
	}
}

// --- Pipeline state and drawing ---

func (d *Device) Enable(c render.Capability)  { gl.Enable(capability(c)) }
func (d *Device) Disable(c render.Capability) { gl.Disable(capability(c)) }

func capability(c render.Capability) uint32 {
	switch c {
	case render.CapDepthTest:
		return gl.DEPTH_TEST
	case render.CapCullFace:
		return gl.CULL_FACE
	default:
		return gl.BLEND
	}
}

func (d *Device) BlendFunc(src, dst render.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func blendFactor(f render.BlendFactor) uint32 {
	switch f {
	case render.BlendOne:
		return gl.ONE
	case render.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case render.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ZERO
	}
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear(mask render.ClearMask) {
	var bits uint32
	if mask&render.ClearColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&render.ClearDepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) DrawElements(count int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}

// ReadPixels reads an RGBA8 rectangle of the current framebuffer, top row first.
func (d *Device) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}
	return pixels
}

// cString trims a NUL-terminated info log.
func cString(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
