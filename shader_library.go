package render

import (
	"fmt"
	"maps"
	"slices"
)

// ShaderLibrary is a name-indexed set of shaders owned by one Context.
// The library holds one reference to every shader it contains.
type ShaderLibrary struct {
	ctx     *Context
	shaders map[string]*Shader
	watcher *ShaderWatcher // Open watcher, or nil
}

// NewShaderLibrary creates an empty library.
func (c *Context) NewShaderLibrary() *ShaderLibrary {
	return &ShaderLibrary{
		ctx:     c,
		shaders: make(map[string]*Shader),
	}
}

// Add stores s under its own name.
func (l *ShaderLibrary) Add(s *Shader) error {
	return l.AddNamed(s.Name(), s)
}

// AddNamed stores s under name and retains it.
func (l *ShaderLibrary) AddNamed(name string, s *Shader) error {
	if _, ok := l.shaders[name]; ok {
		return fmt.Errorf("%w: %q", ErrShaderExists, name)
	}
	if s.ctx != l.ctx {
		return ErrContextMismatch
	}
	l.shaders[name] = s.Retain()
	l.watch(s)
	return nil
}

// Load compiles the shader at path and stores it under its file name.
// The returned shader is owned by the library.
func (l *ShaderLibrary) Load(path string) (*Shader, error) {
	return l.LoadNamed(shaderNameFromPath(path), path)
}

// LoadNamed compiles the shader at path and stores it under name.
func (l *ShaderLibrary) LoadNamed(name, path string) (*Shader, error) {
	if _, ok := l.shaders[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrShaderExists, name)
	}
	s, err := l.ctx.NewShader(path)
	if err != nil {
		return nil, err
	}
	l.shaders[name] = s
	l.watch(s)
	return s, nil
}

// watch adds s to the open watcher, if any. A failure only disables hot
// reload for s, so it is logged rather than returned.
func (l *ShaderLibrary) watch(s *Shader) {
	if l.watcher == nil {
		return
	}
	if err := l.watcher.watchShader(s); err != nil {
		l.ctx.logger.Warn("can't watch shader source", "name", s.Name(), "path", s.Path(), "err", err)
	}
}

// Get returns the shader stored under name.
func (l *ShaderLibrary) Get(name string) (*Shader, error) {
	s, ok := l.shaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrShaderNotFound, name)
	}
	return s, nil
}

// Exists reports whether a shader is stored under name.
func (l *ShaderLibrary) Exists(name string) bool {
	_, ok := l.shaders[name]
	return ok
}

// Names returns the stored names in sorted order.
func (l *ShaderLibrary) Names() []string {
	return slices.Sorted(maps.Keys(l.shaders))
}

// Remove drops the shader stored under name and releases the library's reference.
func (l *ShaderLibrary) Remove(name string) error {
	s, ok := l.shaders[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrShaderNotFound, name)
	}
	delete(l.shaders, name)
	s.Release()
	return nil
}

// Release releases every shader in the library and empties it.
func (l *ShaderLibrary) Release() {
	for _, name := range l.Names() {
		l.shaders[name].Release()
	}
	clear(l.shaders)
}

// byPath returns the shaders loaded from path.
func (l *ShaderLibrary) byPath(path string) []*Shader {
	var out []*Shader
	for _, name := range l.Names() {
		s := l.shaders[name]
		if s.path != "" && samePath(s.path, path) {
			out = append(out, s)
		}
	}
	return out
}
