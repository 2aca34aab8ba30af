package render

import (
	"fmt"
	"os"
	"strings"
)

// ShaderType is a shader pipeline stage.
type ShaderType int

const (
	ShaderNone ShaderType = iota
	ShaderVertex
	ShaderFragment
	ShaderGeometry
	ShaderTessControl
	ShaderTessEvaluation
	ShaderCompute
)

// shaderStages lists the valid stages in pipeline order. Stages compile in this order.
var shaderStages = [...]ShaderType{
	ShaderVertex,
	ShaderTessControl,
	ShaderTessEvaluation,
	ShaderGeometry,
	ShaderFragment,
	ShaderCompute,
}

// shaderTypeNames maps the identifiers accepted after a #type marker to stages.
var shaderTypeNames = map[string]ShaderType{
	"vertex":         ShaderVertex,
	"fragment":       ShaderFragment,
	"pixel":          ShaderFragment,
	"geometry":       ShaderGeometry,
	"tessControl":    ShaderTessControl,
	"tessEvaluation": ShaderTessEvaluation,
	"compute":        ShaderCompute,
}

// ShaderTypeFromString returns the stage for a #type identifier,
// or ShaderNone if the identifier is not recognized.
func ShaderTypeFromString(s string) ShaderType {
	if t, ok := shaderTypeNames[s]; ok {
		return t
	}
	return ShaderNone
}

func (t ShaderType) String() string {
	switch t {
	case ShaderVertex:
		return "vertex"
	case ShaderFragment:
		return "fragment"
	case ShaderGeometry:
		return "geometry"
	case ShaderTessControl:
		return "tessControl"
	case ShaderTessEvaluation:
		return "tessEvaluation"
	case ShaderCompute:
		return "compute"
	default:
		return "none"
	}
}

// ShaderSources maps each stage of a program to its source text.
type ShaderSources map[ShaderType]string

// stageMarker starts a stage section in a combined shader source.
const stageMarker = "#type"

// ParseShaderSource splits a combined source into per-stage sources.
//
// Each stage starts with a line "#type <stage>". Its source runs from the
// first non-newline byte after that line up to the next marker, or to the
// end of the text. Source text is returned verbatim.
//
// A source with no marker yields an empty map and no error. Unknown stage
// identifiers, a marker without a line ending, a marker with no source after
// it, and two markers for the same stage are errors.
func ParseShaderSource(src string) (ShaderSources, error) {
	result := make(ShaderSources)

	pos := strings.Index(src, stageMarker)
	for pos >= 0 {
		lineStart := pos + len(stageMarker)
		eol := strings.IndexAny(src[lineStart:], "\r\n")
		if eol < 0 {
			return nil, fmt.Errorf("%w: %s marker at offset %d has no line ending", ErrMalformedSource, stageMarker, pos)
		}
		eol += lineStart

		name := strings.TrimSpace(src[lineStart:eol])
		stage := ShaderTypeFromString(name)
		if stage == ShaderNone {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, name)
		}

		begin := indexNotNewline(src, eol)
		if begin < 0 {
			return nil, fmt.Errorf("%w: %s stage has no source", ErrMalformedSource, stage)
		}

		if _, dup := result[stage]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, stage)
		}

		next := strings.Index(src[begin:], stageMarker)
		if next < 0 {
			result[stage] = src[begin:]
			pos = -1
		} else {
			next += begin
			result[stage] = src[begin:next]
			pos = next
		}
	}

	return result, nil
}

// indexNotNewline returns the index of the first byte at or after from that
// is neither '\r' nor '\n', or -1.
func indexNotNewline(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] != '\r' && s[i] != '\n' {
			return i
		}
	}
	return -1
}

// readShaderFile reads a shader source file. Read failures are logged and
// yield an empty source, which later fails as ErrNoStages.
func (c *Context) readShaderFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		c.logger.Error("can't read shader file", "path", path, "err", err)
		return ""
	}
	return string(data)
}
