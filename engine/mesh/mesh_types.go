package mesh

import (
	"errors"
	"fmt"
)

// DefaultInstanceCapacity is the starting capacity of every solid and edge instance buffer.
const DefaultInstanceCapacity = 100

// DefaultSphereDivisions is the number of latitude bands used for the sphere mesh when none is configured.
const DefaultSphereDivisions = 10

var (
	// ErrNoGeometry is returned when a MeshType has no registered generator.
	ErrNoGeometry = errors.New("mesh type has no geometry")

	// ErrInvalidDivisions is returned when a sphere is requested with fewer than two divisions.
	ErrInvalidDivisions = errors.New("sphere divisions must be at least 2")

	// ErrIndexOverflow is returned when generated geometry cannot be addressed with 16-bit indices.
	ErrIndexOverflow = errors.New("vertex count exceeds 16-bit index range")
)

// MeshType identifies a procedurally generated primitive.
// It is a key into the mesh store, not a geometry-holding value.
type MeshType int

const (
	// MeshTypeTriangle is declared but has no generator.
	MeshTypeTriangle MeshType = iota

	// MeshTypeCube is the 8-vertex cube spanning [-1, 1] on every axis.
	MeshTypeCube

	// MeshTypeTetrahedron is the 4-vertex tetrahedron centered on the origin.
	MeshTypeTetrahedron

	// MeshTypeSphere is the UV-sphere of unit radius.
	MeshTypeSphere
)

// MeshTypes returns every declared MeshType in declaration order.
//
// Returns:
//   - []MeshType: all mesh types, including those without geometry
func MeshTypes() []MeshType {
	return []MeshType{MeshTypeTriangle, MeshTypeCube, MeshTypeTetrahedron, MeshTypeSphere}
}

// Valid reports whether t is one of the declared mesh types.
func (t MeshType) Valid() bool {
	return t >= MeshTypeTriangle && t <= MeshTypeSphere
}

// String returns the display name of the mesh type.
func (t MeshType) String() string {
	switch t {
	case MeshTypeTriangle:
		return "Triangle"
	case MeshTypeCube:
		return "Cube"
	case MeshTypeTetrahedron:
		return "Tetrahedron"
	case MeshTypeSphere:
		return "Sphere"
	default:
		return fmt.Sprintf("MeshType(%d)", int(t))
	}
}

// Geometry is the static vertex, triangle and wireframe data of a single primitive.
// EdgeIndices reference the same vertex array as Indices.
// Geometry values returned by the generators are shared and must be treated as read-only.
type Geometry struct {
	// Vertices is the vertex array shared by every instance of the primitive.
	Vertices []Vertex

	// Indices is the triangle list for the solid pass.
	Indices []uint16

	// EdgeIndices is the line list for the outline pass.
	EdgeIndices []uint16
}
