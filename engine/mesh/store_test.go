package mesh

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore(WithStoreLogger(log.New(&bytes.Buffer{}, "", 0)))

	assert.Equal(t, []MeshType{MeshTypeCube, MeshTypeTetrahedron, MeshTypeSphere}, s.Types())

	sphere, ok := s.Mesh(MeshTypeSphere)
	require.True(t, ok)
	assert.Equal(t, MeshTypeSphere, sphere.Type())
	assert.Len(t, sphere.Geometry().Vertices, SphereVertexCount(DefaultSphereDivisions))
	assert.Equal(t, DefaultInstanceCapacity, sphere.SolidInstances().Capacity())
	assert.Equal(t, DefaultInstanceCapacity, sphere.EdgeInstances().Capacity())

	_, ok = s.Mesh(MeshTypeTriangle)
	assert.False(t, ok)
}

func TestNewStoreSkipsTypesWithoutGeometry(t *testing.T) {
	var buf bytes.Buffer
	s := NewStore(
		WithMeshTypes(MeshTypeTriangle, MeshTypeCube),
		WithGenerationWorkers(1),
		WithStoreLogger(log.New(&buf, "", 0)),
	)

	assert.Equal(t, []MeshType{MeshTypeCube}, s.Types())
	assert.Contains(t, buf.String(), "[Mesh] Triangle has no geometry")
}

func TestNewStoreLogsGenerationFailure(t *testing.T) {
	var buf bytes.Buffer
	s := NewStore(
		WithMeshTypes(MeshTypeSphere),
		WithSphereDivisions(1),
		WithStoreLogger(log.New(&buf, "", 0)),
	)

	assert.Empty(t, s.Types())
	assert.Contains(t, buf.String(), "failed to generate Sphere")
}

func TestMeshBuffersGrowIndependently(t *testing.T) {
	s := NewStore(WithMeshTypes(MeshTypeCube), WithInstanceCapacity(4), WithStoreLogger(log.New(&bytes.Buffer{}, "", 0)))
	cube, ok := s.Mesh(MeshTypeCube)
	require.True(t, ok)

	cube.SolidInstances().Reserve(9)
	assert.Equal(t, 16, cube.SolidInstances().Capacity())
	assert.Equal(t, 4, cube.EdgeInstances().Capacity())
}
