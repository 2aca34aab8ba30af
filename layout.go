package render

// ShaderDataType is the type of a single vertex attribute.
type ShaderDataType int

const (
	DataNone ShaderDataType = iota
	DataFloat
	DataFloat2
	DataFloat3
	DataFloat4
	DataMat3
	DataMat4
	DataInt
	DataInt2
	DataInt3
	DataInt4
	DataBool
)

// Size returns the size in bytes of one value of the type.
func (t ShaderDataType) Size() int {
	switch t {
	case DataFloat, DataInt:
		return 4
	case DataFloat2, DataInt2:
		return 4 * 2
	case DataFloat3, DataInt3:
		return 4 * 3
	case DataFloat4, DataInt4:
		return 4 * 4
	case DataMat3:
		return 4 * 3 * 3
	case DataMat4:
		return 4 * 4 * 4
	case DataBool:
		return 1
	default:
		return 0
	}
}

// ComponentCount returns the number of scalar components per attribute slot.
// Matrices report their column height; they occupy one slot per column.
func (t ShaderDataType) ComponentCount() int32 {
	switch t {
	case DataFloat, DataInt, DataBool:
		return 1
	case DataFloat2, DataInt2:
		return 2
	case DataFloat3, DataInt3, DataMat3:
		return 3
	case DataFloat4, DataInt4, DataMat4:
		return 4
	default:
		return 0
	}
}

// slots returns the number of attribute locations the type occupies.
func (t ShaderDataType) slots() int {
	switch t {
	case DataMat3:
		return 3
	case DataMat4:
		return 4
	case DataNone:
		return 0
	default:
		return 1
	}
}

func (t ShaderDataType) kind() ScalarKind {
	switch t {
	case DataInt, DataInt2, DataInt3, DataInt4:
		return KindInt
	case DataBool:
		return KindBool
	default:
		return KindFloat
	}
}

// BufferElement describes one attribute in an interleaved vertex buffer.
type BufferElement struct {
	Name       string
	Type       ShaderDataType
	Normalized bool
	Offset     int // Filled in by NewBufferLayout
}

// BufferLayout is the ordered attribute layout of a vertex buffer.
type BufferLayout struct {
	elements []BufferElement
	stride   int
}

// NewBufferLayout computes offsets and stride for the given elements.
func NewBufferLayout(elements ...BufferElement) BufferLayout {
	l := BufferLayout{elements: make([]BufferElement, len(elements))}
	offset := 0
	for i, e := range elements {
		e.Offset = offset
		offset += e.Type.Size()
		l.elements[i] = e
	}
	l.stride = offset
	return l
}

// Elements returns the layout's elements in order.
func (l BufferLayout) Elements() []BufferElement {
	return l.elements
}

// Stride returns the size in bytes of one vertex.
func (l BufferLayout) Stride() int {
	return l.stride
}

// Empty returns true if the layout has no elements.
func (l BufferLayout) Empty() bool {
	return len(l.elements) == 0
}
