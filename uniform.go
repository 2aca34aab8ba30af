package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Standard uniforms set by Renderer.Submit.
const (
	UniformViewProjection = "u_ViewProjectionMatrix"
	UniformTransform      = "u_Transform"
)

// UniformLocation returns the location of a uniform, or -1 if the program
// has no active uniform with that name. Each name is queried on the GPU once;
// absent names are cached as -1 too. The cache lives until the program is
// recreated by Reload.
//
// Locations only exist once the program is linked. Before that, and after
// release, UniformLocation returns -1 without querying or caching.
func (s *Shader) UniformLocation(name string) int32 {
	if s.state != linkLinked || s.handle == 0 {
		return -1
	}
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}

	loc := s.ctx.dev.UniformLocation(s.handle, name)
	if loc < 0 {
		loc = -1
		if renderVerbose() {
			s.ctx.logger.Debug("uniform not found", "shader", s.name, "uniform", name)
		}
	}
	s.uniforms[name] = loc
	return loc
}

// location resolves name for a setter. Setters only act on the bound program.
func (s *Shader) location(name string) (int32, error) {
	if s.handle == 0 || s.ctx.program != s.handle {
		return -1, fmt.Errorf("shader %q: set %q: %w", s.name, name, ErrNotBound)
	}
	return s.UniformLocation(name), nil
}

// SetBool sets a bool uniform.
func (s *Shader) SetBool(name string, v bool) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	var i int32
	if v {
		i = 1
	}
	s.ctx.dev.Uniform1i(loc, i)
	return nil
}

// SetInt sets an int or sampler uniform.
func (s *Shader) SetInt(name string, v int32) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	s.ctx.dev.Uniform1i(loc, v)
	return nil
}

// SetFloat sets a float uniform.
func (s *Shader) SetFloat(name string, v float32) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	s.ctx.dev.Uniform1f(loc, v)
	return nil
}

// SetFloat3 sets a vec3 uniform from components.
func (s *Shader) SetFloat3(name string, x, y, z float32) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	s.ctx.dev.Uniform3f(loc, x, y, z)
	return nil
}

// SetVec3 sets a vec3 uniform.
func (s *Shader) SetVec3(name string, v mgl32.Vec3) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	s.ctx.dev.Uniform3fv(loc, v)
	return nil
}

// SetVec4 sets a vec4 uniform.
func (s *Shader) SetVec4(name string, v mgl32.Vec4) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	s.ctx.dev.Uniform4fv(loc, v)
	return nil
}

// SetMat3 sets a mat3 uniform.
func (s *Shader) SetMat3(name string, m mgl32.Mat3) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	s.ctx.dev.UniformMatrix3fv(loc, m)
	return nil
}

// SetMat4 sets a mat4 uniform.
func (s *Shader) SetMat4(name string, m mgl32.Mat4) error {
	loc, err := s.location(name)
	if err != nil || loc < 0 {
		return err
	}
	s.ctx.dev.UniformMatrix4fv(loc, m)
	return nil
}
