package render

import (
	"errors"
	"fmt"
)

// Shader source errors.
var (
	ErrNoStages        = errors.New("render: shader source has no stages")
	ErrUnknownStage    = errors.New("render: unknown shader stage")
	ErrMalformedSource = errors.New("render: malformed shader source")
	ErrDuplicateStage  = errors.New("render: duplicate shader stage")
)

// GPU allocation errors. These are environment faults and are never retried.
var (
	ErrProgramCreate = errors.New("render: unable to create shader program")
	ErrShaderCreate  = errors.New("render: unable to create shader")
	ErrBufferCreate  = errors.New("render: unable to create buffer")
	ErrArrayCreate   = errors.New("render: unable to create vertex array")
)

// Usage errors.
var (
	ErrNotBound         = errors.New("render: shader is not the bound program")
	ErrReleased         = errors.New("render: resource already released")
	ErrSceneNotActive   = errors.New("render: submit outside BeginScene/EndScene")
	ErrNotInitialized   = errors.New("render: renderer not initialized")
	ErrNoIndexBuffer    = errors.New("render: vertex array has no index buffer")
	ErrEmptyLayout      = errors.New("render: vertex buffer has no layout")
	ErrInvalidAttribute = errors.New("render: invalid vertex attribute")
	ErrBufferOverflow   = errors.New("render: data exceeds buffer size")
	ErrStaticBuffer     = errors.New("render: buffer was not created for updates")
	ErrShaderNotFound   = errors.New("render: shader not found")
	ErrShaderExists     = errors.New("render: shader already exists")
	ErrContextMismatch  = errors.New("render: resource belongs to another context")
)

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage ShaderType
	Log   string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return "Shader compilation failed!"
	}
	return e.Log + ": shader compilation failed!"
}

// LinkError is returned when a program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	if e.Log == "" {
		return "Shader linking failed!"
	}
	return fmt.Sprintf("%s: shader linking failed!", e.Log)
}
