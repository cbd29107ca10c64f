package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexMarshal(t *testing.T) {
	v := Vertex{
		Position: [3]float32{1, 2, 3},
		Color:    [3]float32{0.5, 0.25, 1},
		Normal:   [3]float32{0, -1, 0},
	}
	assert.Equal(t, 36, v.Size())

	buf := v.Marshal()
	assert.Len(t, buf, 36)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])))
}

func TestMarshalVertices(t *testing.T) {
	g := CubeGeometry()
	buf := MarshalVertices(g.Vertices)
	assert.Len(t, buf, 8*36)
	assert.Equal(t, g.Vertices[3].Marshal(), buf[3*36:4*36])
	assert.Nil(t, MarshalVertices(nil))
}

func TestMarshalIndicesPadsToFourBytes(t *testing.T) {
	buf := MarshalIndices([]uint16{1, 2, 3})
	assert.Equal(t, []byte{1, 0, 2, 0, 3, 0, 0, 0}, buf)

	assert.Len(t, MarshalIndices([]uint16{1, 2}), 4)
	assert.Empty(t, MarshalIndices(nil))
}

func TestMeshTypeString(t *testing.T) {
	assert.Equal(t, "Triangle", MeshTypeTriangle.String())
	assert.Equal(t, "Sphere", MeshTypeSphere.String())
	assert.Equal(t, "MeshType(9)", MeshType(9).String())
	assert.Len(t, MeshTypes(), 4)
	for _, mt := range MeshTypes() {
		assert.True(t, mt.Valid(), mt.String())
	}
	assert.False(t, MeshType(9).Valid())
	assert.False(t, MeshType(-1).Valid())
}
