package mesh

import (
	"unsafe"

	"github.com/gogpu/gputypes"
)

// VertexStride is the byte size of one Vertex in a vertex buffer.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// Shader locations of the vertex attributes.
const (
	LocationPosition = 0
	LocationColor    = 1
	LocationNormal   = 2
)

// VertexLayout describes how a []Vertex is read by a vertex shader:
// position as vec4 at 0, color as vec4 at 16, normal as vec3 at 32.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(Vertex{}.Position)), ShaderLocation: LocationPosition},
			{Format: gputypes.VertexFormatFloat32x4, Offset: uint64(unsafe.Offsetof(Vertex{}.Color)), ShaderLocation: LocationColor},
			{Format: gputypes.VertexFormatFloat32x3, Offset: uint64(unsafe.Offsetof(Vertex{}.Normal)), ShaderLocation: LocationNormal},
		},
	}
}

// ComponentCount returns how many float32 components a float format holds,
// or 0 for formats a Vertex never uses.
func ComponentCount(f gputypes.VertexFormat) int32 {
	switch f {
	case gputypes.VertexFormatFloat32,
		gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatFloat32x3,
		gputypes.VertexFormatFloat32x4:
		return int32(f.Size() / 4)
	}
	return 0
}
