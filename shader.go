package render

import (
	"fmt"
	"path/filepath"
	"strings"
)

// linkState tracks deferred linking. Bind attempts a link only from linkUnlinked.
type linkState int

const (
	linkUnlinked linkState = iota
	linkLinked
	linkFailed
)

func (s linkState) String() string {
	switch s {
	case linkUnlinked:
		return "unlinked"
	case linkLinked:
		return "linked"
	case linkFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Shader is a GPU program built from a combined multi-stage source.
//
// Stages are compiled and attached at construction. The program links the
// first time it is bound; after a successful link the stage objects are
// deleted. A failed link frees everything and every later Bind returns the
// same error.
type Shader struct {
	refCount
	ctx  *Context
	name string
	path string // Empty for shaders built from memory

	handle   uint32
	state    linkState
	linkErr  error
	uniforms map[string]int32 // Uniform name -> location, -1 for absent
}

// NewShader reads a combined shader source from path and compiles it.
// The shader is named after the file without its extension.
//
// A missing or unreadable file is logged and treated as an empty source, so
// the returned error is ErrNoStages.
func (c *Context) NewShader(path string) (*Shader, error) {
	src := c.readShaderFile(path)
	return c.newShader(shaderNameFromPath(path), path, src)
}

// NewShaderFromSource compiles a combined shader source held in memory.
func (c *Context) NewShaderFromSource(name, src string) (*Shader, error) {
	return c.newShader(name, "", src)
}

func (c *Context) newShader(name, path, src string) (*Shader, error) {
	sources, err := ParseShaderSource(src)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("shader %q: %w", name, ErrNoStages)
	}

	s := &Shader{
		refCount: newRefCount(),
		ctx:      c,
		name:     name,
		path:     path,
		uniforms: make(map[string]int32),
	}

	handle, err := c.compileProgram(sources)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	s.handle = handle

	c.logger.Debug("shader compiled", "name", name, "program", handle, "stages", len(sources))
	return s, nil
}

// compileProgram compiles every stage and attaches it to a new program.
// On failure every GPU object created so far is deleted.
func (c *Context) compileProgram(sources ShaderSources) (uint32, error) {
	var program uint32
	var attached []uint32

	discard := func() {
		for _, h := range attached {
			c.dev.DeleteShader(h)
		}
		if program != 0 {
			c.dev.DeleteProgram(program)
		}
	}

	for _, stage := range shaderStages {
		src, ok := sources[stage]
		if !ok {
			continue
		}

		if program == 0 {
			program = c.dev.CreateProgram()
			if program == 0 {
				return 0, ErrProgramCreate
			}
		}

		h, err := c.compileStage(stage, src)
		if err != nil {
			discard()
			return 0, err
		}

		c.dev.AttachShader(program, h)
		attached = append(attached, h)
	}

	return program, nil
}

// compileStage compiles one stage. A failed stage object is deleted before returning.
func (c *Context) compileStage(stage ShaderType, src string) (uint32, error) {
	h := c.dev.CreateShader(stage)
	if h == 0 {
		return 0, fmt.Errorf("%w: %s stage", ErrShaderCreate, stage)
	}

	c.dev.ShaderSource(h, src)
	c.dev.CompileShader(h)

	if !c.dev.ShaderCompileStatus(h) {
		log := strings.TrimRight(c.dev.ShaderInfoLog(h), "\x00\r\n ")
		c.dev.DeleteShader(h)
		c.logger.Error("shader stage failed to compile", "stage", stage, "log", log)
		return 0, &CompileError{Stage: stage, Log: log}
	}

	return h, nil
}

// Name returns the shader name.
func (s *Shader) Name() string { return s.name }

// Path returns the source file path, or "" for shaders built from memory.
func (s *Shader) Path() string { return s.path }

// Handle returns the GPU program handle, or 0 once released or after a failed link.
func (s *Shader) Handle() uint32 { return s.handle }

// Linked returns true once the program has linked successfully.
func (s *Shader) Linked() bool { return s.state == linkLinked }

// Bind makes the shader the current program, linking it first if it has
// never been linked.
func (s *Shader) Bind() error {
	switch s.state {
	case linkFailed:
		return s.linkErr
	case linkUnlinked:
		if s.handle == 0 {
			return fmt.Errorf("shader %q: %w", s.name, ErrReleased)
		}
		if err := s.link(); err != nil {
			return err
		}
	}

	if s.handle == 0 {
		return fmt.Errorf("shader %q: %w", s.name, ErrReleased)
	}
	s.ctx.useProgram(s.handle)
	return nil
}

// Unbind clears the current program.
func (s *Shader) Unbind() {
	s.ctx.useProgram(0)
}

func (s *Shader) link() error {
	dev := s.ctx.dev

	dev.LinkProgram(s.handle)
	stages := dev.AttachedShaders(s.handle)

	if dev.ProgramLinkStatus(s.handle) {
		dev.ValidateProgram(s.handle)
		s.state = linkLinked

		for _, h := range stages {
			dev.DetachShader(s.handle, h)
			dev.DeleteShader(h)
		}

		s.ctx.logger.Debug("shader linked", "name", s.name, "program", s.handle)
		return nil
	}

	log := strings.TrimRight(dev.ProgramInfoLog(s.handle), "\x00\r\n ")

	s.ctx.forgetProgram(s.handle)
	dev.DeleteProgram(s.handle)
	for _, h := range stages {
		dev.DeleteShader(h)
	}

	s.handle = 0
	s.state = linkFailed
	s.linkErr = fmt.Errorf("shader %q: %w", s.name, &LinkError{Log: log})

	s.ctx.logger.Error("shader failed to link", "name", s.name, "log", log)
	return s.linkErr
}

// BindAttribLocation assigns a vertex attribute to a location.
// It has no effect once the program is linked.
func (s *Shader) BindAttribLocation(index uint32, name string) {
	if s.state == linkUnlinked && s.handle != 0 {
		s.ctx.dev.BindAttribLocation(s.handle, index, name)
	}
}

// BindFragDataLocation assigns a fragment output to a color number.
// It has no effect once the program is linked.
func (s *Shader) BindFragDataLocation(color uint32, name string) {
	if s.state == linkUnlinked && s.handle != 0 {
		s.ctx.dev.BindFragDataLocation(s.handle, color, name)
	}
}

// Reload recompiles the shader from src. On success the old program is
// deleted, the uniform cache is dropped and the next Bind links again.
// On failure the shader keeps its current program.
func (s *Shader) Reload(src string) error {
	if s.Released() {
		return fmt.Errorf("shader %q: %w", s.name, ErrReleased)
	}

	sources, err := ParseShaderSource(src)
	if err != nil {
		return fmt.Errorf("shader %q: %w", s.name, err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("shader %q: %w", s.name, ErrNoStages)
	}

	handle, err := s.ctx.compileProgram(sources)
	if err != nil {
		return fmt.Errorf("shader %q: %w", s.name, err)
	}

	s.deleteProgram()
	s.handle = handle
	s.state = linkUnlinked
	s.linkErr = nil
	clear(s.uniforms)

	s.ctx.logger.Info("shader reloaded", "name", s.name, "program", handle)
	return nil
}

// ReloadFile rereads the shader's source file and reloads it.
func (s *Shader) ReloadFile() error {
	if s.path == "" {
		return fmt.Errorf("shader %q: reload: no source file", s.name)
	}
	return s.Reload(s.ctx.readShaderFile(s.path))
}

// Retain adds an owner to the shader.
func (s *Shader) Retain() *Shader {
	if !s.retain() {
		s.ctx.logger.Warn("retain of released shader", "name", s.name)
	}
	return s
}

// Release drops an owner. The GPU program is deleted when the last owner releases it.
func (s *Shader) Release() {
	last, ok := s.release()
	if !ok {
		s.ctx.logger.Warn("shader released more than once", "name", s.name)
		return
	}
	if last {
		s.deleteProgram()
		s.ctx.logger.Debug("shader released", "name", s.name)
	}
}

// deleteProgram frees the program and, if it never linked, its attached stages.
func (s *Shader) deleteProgram() {
	if s.handle == 0 {
		return
	}
	dev := s.ctx.dev
	if s.state == linkUnlinked {
		for _, h := range dev.AttachedShaders(s.handle) {
			dev.DetachShader(s.handle, h)
			dev.DeleteShader(h)
		}
	}
	s.ctx.forgetProgram(s.handle)
	dev.DeleteProgram(s.handle)
	s.handle = 0
}

// shaderNameFromPath returns the file name without directory and extension.
func shaderNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
