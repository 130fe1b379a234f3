package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange reports an index that does not name a vertex.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDegenerateGeometry reports input with no usable direction or area.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInvalidParameter reports a size, count or level outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// IndexError describes the first dangling index found in a mesh.
type IndexError struct {
	Pos   int    // position in the index buffer
	Index uint32 // offending value
	Count int    // vertex count at the time of the check
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: indices[%d] = %d, vertex count %d", ErrIndexOutOfRange, e.Pos, e.Index, e.Count)
}

// Is lets errors.Is match IndexError against ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
