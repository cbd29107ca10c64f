package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches Vertex layout exactly (36 bytes, three tightly packed vec3<f32>).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// Vertex is the GPU layout of a single primitive vertex.
// Size: 36 bytes, no padding.
type Vertex struct {
	Position [3]float32 // offset  0: model-space position
	Color    [3]float32 // offset 12: per-vertex color
	Normal   [3]float32 // offset 24: model-space normal
}

// NewVertex returns a Vertex with the default white color and a zero normal.
//
// Parameters:
//   - position: the model-space position
//
// Returns:
//   - Vertex: the vertex
func NewVertex(position [3]float32) Vertex {
	return Vertex{
		Position: position,
		Color:    [3]float32{1, 1, 1},
	}
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (36)
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the Vertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 36-byte buffer
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, v.Size())
	v.marshalInto(buf)
	return buf
}

func (v *Vertex) marshalInto(buf []byte) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v.Position[i]))
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(v.Color[i]))
		binary.LittleEndian.PutUint32(buf[24+i*4:], math.Float32bits(v.Normal[i]))
	}
}

// MarshalVertices serializes a vertex array into one contiguous GPU buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices) * 36 bytes
func MarshalVertices(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	stride := vertices[0].Size()
	buf := make([]byte, len(vertices)*stride)
	for i := range vertices {
		vertices[i].marshalInto(buf[i*stride:])
	}
	return buf
}

// MarshalIndices serializes 16-bit indices little-endian, zero-padded to a multiple of 4 bytes
// since queue writes must be 4-byte aligned.
//
// Parameters:
//   - indices: the index list to serialize
//
// Returns:
//   - []byte: the padded buffer
func MarshalIndices(indices []uint16) []byte {
	size := len(indices) * 2
	size = (size + 3) &^ 3
	buf := make([]byte, size)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}
