package render_test

import (
	"io"
	"log/slog"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/render"
)

// fakeDevice is a Device that records calls instead of talking to a GPU.
type fakeDevice struct {
	next  uint32
	calls []string

	programs map[uint32]*fakeProgram
	shaders  map[uint32]*fakeShader
	buffers  map[uint32]*fakeBuffer
	arrays   map[uint32]bool // Handle -> alive

	current       uint32            // Program in use
	array         uint32            // Bound vertex array
	vertices      uint32            // Array-buffer binding
	elements      map[uint32]uint32 // Vertex array -> element-array binding
	attribIndices []uint32          // Enabled attribute locations, in call order

	// Failure injection
	compileFail       map[render.ShaderType]string // Stage -> info log
	linkFail          bool
	linkLog           string
	failCreateProgram bool
	failCreateShader  bool
	failGenBuffer     bool

	// Uniforms
	uniformLocations map[string]int32
	uniformQueries   int
	uniformSets      []uniformSet

	draws []drawCall

	enabled    map[render.Capability]bool
	clearColor [4]float32
	viewport   [4]int32
}

type fakeProgram struct {
	attached []uint32
	linked   bool
	deleted  bool
	attribs  map[string]uint32
}

type fakeShader struct {
	stage    render.ShaderType
	source   string
	compiled bool
	deleted  bool
}

type fakeBuffer struct {
	size    int
	usage   render.BufferUsage
	deleted bool
	updates int
}

type uniformSet struct {
	program  uint32
	location int32
	value    any
}

type drawCall struct {
	program uint32
	array   uint32
	count   int32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		programs:    make(map[uint32]*fakeProgram),
		shaders:     make(map[uint32]*fakeShader),
		buffers:     make(map[uint32]*fakeBuffer),
		arrays:      make(map[uint32]bool),
		elements:    make(map[uint32]uint32),
		compileFail: make(map[render.ShaderType]string),
		uniformLocations: map[string]int32{
			render.UniformViewProjection: 0,
			render.UniformTransform:      1,
			"u_Color":                    2,
			"u_Enabled":                  3,
			"u_Count":                    4,
			"u_Time":                     5,
			"u_Offset":                   6,
			"u_Normal":                   7,
		},
		enabled: make(map[render.Capability]bool),
	}
}

// newTestContext returns a Context over a fresh fakeDevice with logging discarded.
func newTestContext() (*render.Context, *fakeDevice) {
	dev := newFakeDevice()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return render.NewContext(dev, render.WithLogger(logger)), dev
}

func (d *fakeDevice) handle() uint32 {
	d.next++
	return d.next
}

func (d *fakeDevice) record(name string) { d.calls = append(d.calls, name) }

// count returns how many times a method was called.
func (d *fakeDevice) count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c == name {
			n++
		}
	}
	return n
}

// liveShaders returns the number of stage objects not yet deleted.
func (d *fakeDevice) liveShaders() int {
	n := 0
	for _, s := range d.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// livePrograms returns the number of programs not yet deleted.
func (d *fakeDevice) livePrograms() int {
	n := 0
	for _, p := range d.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// --- Programs ---

func (d *fakeDevice) CreateProgram() uint32 {
	d.record("CreateProgram")
	if d.failCreateProgram {
		return 0
	}
	h := d.handle()
	d.programs[h] = &fakeProgram{attribs: make(map[string]uint32)}
	return h
}

func (d *fakeDevice) DeleteProgram(program uint32) {
	d.record("DeleteProgram")
	if p, ok := d.programs[program]; ok {
		p.deleted = true
	}
	if d.current == program {
		d.current = 0
	}
}

func (d *fakeDevice) LinkProgram(program uint32) {
	d.record("LinkProgram")
	if p, ok := d.programs[program]; ok && !d.linkFail {
		p.linked = true
	}
}

func (d *fakeDevice) ProgramLinkStatus(program uint32) bool {
	d.record("ProgramLinkStatus")
	p, ok := d.programs[program]
	return ok && p.linked
}

func (d *fakeDevice) ProgramInfoLog(program uint32) string {
	d.record("ProgramInfoLog")
	return d.linkLog
}

func (d *fakeDevice) ValidateProgram(program uint32) { d.record("ValidateProgram") }

func (d *fakeDevice) AttachedShaders(program uint32) []uint32 {
	d.record("AttachedShaders")
	p, ok := d.programs[program]
	if !ok {
		return nil
	}
	out := make([]uint32, len(p.attached))
	copy(out, p.attached)
	return out
}

func (d *fakeDevice) UseProgram(program uint32) {
	d.record("UseProgram")
	d.current = program
}

func (d *fakeDevice) BindAttribLocation(program, index uint32, name string) {
	d.record("BindAttribLocation")
	d.programs[program].attribs[name] = index
}

func (d *fakeDevice) BindFragDataLocation(program, color uint32, name string) {
	d.record("BindFragDataLocation")
}

// --- Shader stages ---

func (d *fakeDevice) CreateShader(stage render.ShaderType) uint32 {
	d.record("CreateShader")
	if d.failCreateShader {
		return 0
	}
	h := d.handle()
	d.shaders[h] = &fakeShader{stage: stage}
	return h
}

func (d *fakeDevice) DeleteShader(shader uint32) {
	d.record("DeleteShader")
	if s, ok := d.shaders[shader]; ok {
		s.deleted = true
	}
}

func (d *fakeDevice) ShaderSource(shader uint32, source string) {
	d.record("ShaderSource")
	d.shaders[shader].source = source
}

func (d *fakeDevice) CompileShader(shader uint32) {
	d.record("CompileShader")
	s := d.shaders[shader]
	_, fail := d.compileFail[s.stage]
	s.compiled = !fail
}

func (d *fakeDevice) ShaderCompileStatus(shader uint32) bool {
	d.record("ShaderCompileStatus")
	return d.shaders[shader].compiled
}

func (d *fakeDevice) ShaderInfoLog(shader uint32) string {
	d.record("ShaderInfoLog")
	return d.compileFail[d.shaders[shader].stage]
}

func (d *fakeDevice) AttachShader(program, shader uint32) {
	d.record("AttachShader")
	p := d.programs[program]
	p.attached = append(p.attached, shader)
}

func (d *fakeDevice) DetachShader(program, shader uint32) {
	d.record("DetachShader")
	p, ok := d.programs[program]
	if !ok {
		return
	}
	for i, h := range p.attached {
		if h == shader {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			return
		}
	}
}

// --- Uniforms ---

// UniformLocation returns -1 for programs that are not linked, as GL does.
func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation")
	d.uniformQueries++
	if p, ok := d.programs[program]; !ok || !p.linked || p.deleted {
		return -1
	}
	if loc, ok := d.uniformLocations[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) setUniform(name string, loc int32, v any) {
	d.record(name)
	d.uniformSets = append(d.uniformSets, uniformSet{program: d.current, location: loc, value: v})
}

func (d *fakeDevice) Uniform1i(loc int32, v int32)         { d.setUniform("Uniform1i", loc, v) }
func (d *fakeDevice) Uniform1f(loc int32, v float32)       { d.setUniform("Uniform1f", loc, v) }
func (d *fakeDevice) Uniform3f(loc int32, x, y, z float32) { d.setUniform("Uniform3f", loc, [3]float32{x, y, z}) }
func (d *fakeDevice) Uniform3fv(loc int32, v mgl32.Vec3)   { d.setUniform("Uniform3fv", loc, v) }
func (d *fakeDevice) Uniform4fv(loc int32, v mgl32.Vec4)   { d.setUniform("Uniform4fv", loc, v) }
func (d *fakeDevice) UniformMatrix3fv(loc int32, m mgl32.Mat3) {
	d.setUniform("UniformMatrix3fv", loc, m)
}
func (d *fakeDevice) UniformMatrix4fv(loc int32, m mgl32.Mat4) {
	d.setUniform("UniformMatrix4fv", loc, m)
}

// lastUniform returns the last value set at loc.
func (d *fakeDevice) lastUniform(loc int32) (uniformSet, bool) {
	for i := len(d.uniformSets) - 1; i >= 0; i-- {
		if d.uniformSets[i].location == loc {
			return d.uniformSets[i], true
		}
	}
	return uniformSet{}, false
}

// --- Buffers ---

func (d *fakeDevice) GenBuffer() uint32 {
	d.record("GenBuffer")
	if d.failGenBuffer {
		return 0
	}
	h := d.handle()
	d.buffers[h] = &fakeBuffer{}
	return h
}

func (d *fakeDevice) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer")
	if b, ok := d.buffers[buffer]; ok {
		b.deleted = true
	}
}

// BindBuffer stores element-array bindings in the bound vertex array, as GL does.
func (d *fakeDevice) BindBuffer(target render.BufferTarget, buffer uint32) {
	d.record("BindBuffer")
	if target == render.ElementArrayBuffer {
		d.elements[d.array] = buffer
		return
	}
	d.vertices = buffer
}

func (d *fakeDevice) boundBuffer(target render.BufferTarget) uint32 {
	if target == render.ElementArrayBuffer {
		return d.elements[d.array]
	}
	return d.vertices
}

// elementBuffer returns the index buffer recorded in a vertex array.
func (d *fakeDevice) elementBuffer(array uint32) uint32 {
	return d.elements[array]
}

func (d *fakeDevice) BufferData(target render.BufferTarget, size int, data unsafe.Pointer, usage render.BufferUsage) {
	d.record("BufferData")
	b := d.buffers[d.boundBuffer(target)]
	b.size = size
	b.usage = usage
}

func (d *fakeDevice) BufferSubData(target render.BufferTarget, offset, size int, data unsafe.Pointer) {
	d.record("BufferSubData")
	d.buffers[d.boundBuffer(target)].updates++
}

// --- Vertex arrays ---

func (d *fakeDevice) GenVertexArray() uint32 {
	d.record("GenVertexArray")
	h := d.handle()
	d.arrays[h] = true
	return h
}

func (d *fakeDevice) DeleteVertexArray(array uint32) {
	d.record("DeleteVertexArray")
	d.arrays[array] = false
	delete(d.elements, array)
	if d.array == array {
		d.array = 0
	}
}

func (d *fakeDevice) BindVertexArray(array uint32) {
	d.record("BindVertexArray")
	d.array = array
}

func (d *fakeDevice) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray")
	d.attribIndices = append(d.attribIndices, index)
}

func (d *fakeDevice) VertexAttribPointer(index uint32, size int32, kind render.ScalarKind, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer")
}

// --- Pipeline state and drawing ---

func (d *fakeDevice) Enable(c render.Capability)  { d.record("Enable"); d.enabled[c] = true }
func (d *fakeDevice) Disable(c render.Capability) { d.record("Disable"); d.enabled[c] = false }
func (d *fakeDevice) BlendFunc(src, dst render.BlendFactor) {
	d.record("BlendFunc")
}

func (d *fakeDevice) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *fakeDevice) Clear(mask render.ClearMask) { d.record("Clear") }

func (d *fakeDevice) Viewport(x, y, width, height int32) {
	d.record("Viewport")
	d.viewport = [4]int32{x, y, width, height}
}

func (d *fakeDevice) DrawElements(count int32) {
	d.record("DrawElements")
	d.draws = append(d.draws, drawCall{program: d.current, array: d.array, count: count})
}
