package mesh

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/chewxy/math32"
)

var cubeGeometry = Geometry{
	Vertices: []Vertex{
		{Position: [3]float32{1, 1, 1}, Color: [3]float32{1, 0, 0}, Normal: [3]float32{0.577, 0.577, 0.577}},
		{Position: [3]float32{-1, 1, 1}, Color: [3]float32{0, 0, 1}, Normal: [3]float32{-0.577, 0.577, 0.577}},
		{Position: [3]float32{1, -1, 1}, Color: [3]float32{1, 0, 0}, Normal: [3]float32{0.577, -0.577, 0.577}},
		{Position: [3]float32{-1, -1, 1}, Color: [3]float32{0, 0, 1}, Normal: [3]float32{-0.577, -0.577, 0.577}},
		{Position: [3]float32{1, 1, -1}, Color: [3]float32{1, 0, 0}, Normal: [3]float32{0.577, 0.577, -0.577}},
		{Position: [3]float32{-1, 1, -1}, Color: [3]float32{0, 0, 1}, Normal: [3]float32{-0.577, 0.577, -0.577}},
		{Position: [3]float32{1, -1, -1}, Color: [3]float32{1, 0, 0}, Normal: [3]float32{0.577, -0.577, -0.577}},
		{Position: [3]float32{-1, -1, -1}, Color: [3]float32{0, 0, 1}, Normal: [3]float32{-0.577, -0.577, -0.577}},
	},
	Indices: []uint16{
		0, 1, 3, 0, 3, 2, // front
		5, 4, 6, 5, 6, 7, // back
		1, 5, 7, 1, 7, 3, // left
		4, 0, 2, 4, 2, 6, // right
		4, 5, 1, 4, 1, 0, // top
		7, 6, 2, 7, 2, 3, // bottom
	},
	EdgeIndices: []uint16{
		0, 1, 1, 3, 3, 2, 2, 0,
		4, 5, 5, 7, 7, 6, 6, 4,
		0, 4, 1, 5, 2, 6, 3, 7,
	},
}

var tetrahedronGeometry = buildTetrahedron()

// CubeGeometry returns the shared cube geometry spanning [-1, 1] on every axis.
//
// Returns:
//   - Geometry: 8 vertices, 12 triangles and 12 edges
func CubeGeometry() Geometry {
	return cubeGeometry
}

// TetrahedronGeometry returns the shared tetrahedron centered on the origin.
// Vertex normals are the normalized sum of the face normals of every incident triangle.
//
// Returns:
//   - Geometry: 4 vertices, 4 triangles and 6 edges
func TetrahedronGeometry() Geometry {
	return tetrahedronGeometry
}

func buildTetrahedron() Geometry {
	a := math32.Sqrt(8.0 / 9.0)
	b := -1 / (2 * math32.Sqrt(6))
	c := -math32.Sqrt(2.0 / 9.0)
	d := math32.Sqrt(2.0 / 3.0)
	e := math32.Sqrt(3.0 / 8.0)

	vertices := []Vertex{
		NewVertex([3]float32{0, a, b}),
		NewVertex([3]float32{d, c, b}),
		NewVertex([3]float32{-d, c, b}),
		NewVertex([3]float32{0, 0, e}),
	}
	indices := []uint16{
		0, 1, 2,
		0, 2, 3,
		2, 1, 3,
		1, 0, 3,
	}
	edges := []uint16{
		0, 1, 1, 2, 2, 0,
		0, 3, 1, 3, 2, 3,
	}

	accumulateNormals(vertices, indices)
	return Geometry{Vertices: vertices, Indices: indices, EdgeIndices: edges}
}

// accumulateNormals sets each vertex normal to the normalized sum of the unnormalized face normals
// of the triangles that reference it.
func accumulateNormals(vertices []Vertex, indices []uint16) {
	sums := make([][3]float32, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := indices[i], indices[i+1], indices[i+2]
		va := vertices[ia].Position
		vb := vertices[ib].Position
		vc := vertices[ic].Position
		n := common.Cross3(common.Sub3(vb, va), common.Sub3(vc, va))
		sums[ia] = common.Add3(sums[ia], n)
		sums[ib] = common.Add3(sums[ib], n)
		sums[ic] = common.Add3(sums[ic], n)
	}
	for i := range vertices {
		vertices[i].Normal = common.Normalize3(sums[i])
	}
}

// SphereVertexCount returns the number of vertices of a UV-sphere with the given divisions.
func SphereVertexCount(divisions int) int {
	return 2 + (divisions-1)*2*divisions
}

// SphereGeometry builds a unit UV-sphere with 2*divisions longitude samples and divisions latitude bands.
// Edges are enumerated directly (pole spokes, ring-to-ring verticals, then horizontal rings) rather
// than derived from the triangles, so no segment is duplicated or missing.
//
// Parameters:
//   - divisions: the number of latitude bands, at least 2
//
// Returns:
//   - Geometry: the sphere geometry
//   - error: ErrInvalidDivisions if divisions < 2, ErrIndexOverflow if the vertices exceed the uint16 range
func SphereGeometry(divisions int) (Geometry, error) {
	if divisions < 2 {
		return Geometry{}, fmt.Errorf("sphere with %d divisions: %w", divisions, ErrInvalidDivisions)
	}
	nVertices := SphereVertexCount(divisions)
	if nVertices > math.MaxUint16+1 {
		return Geometry{}, fmt.Errorf("sphere with %d divisions has %d vertices: %w", divisions, nVertices, ErrIndexOverflow)
	}

	longitude := 2 * divisions
	latitude := divisions

	vertices := make([]Vertex, 0, nVertices)
	indices := make([]uint16, 0, 6*longitude*(latitude-1))
	edges := make([]uint16, 0, 2*longitude*(2*latitude-1))

	north := newSphereVertex([3]float32{0, 1, 0})
	vertices = append(vertices, north)
	for i := 1; i < latitude; i++ {
		phi := float32(i) * math32.Pi / float32(latitude)
		r, y := math32.Sincos(phi)
		for j := range longitude {
			theta := float32(j) * 2 * math32.Pi / float32(longitude)
			sinT, cosT := math32.Sincos(theta)
			vertices = append(vertices, newSphereVertex([3]float32{r * cosT, y, r * sinT}))
		}
	}
	vertices = append(vertices, newSphereVertex([3]float32{0, -1, 0}))

	top := 0
	bottom := len(vertices) - 1
	ring := func(i int) int { return 1 + i*longitude }

	for j := range longitude {
		next := (j + 1) % longitude
		indices = append(indices, uint16(top), uint16(1+next), uint16(1+j))
	}
	for i := 0; i < latitude-2; i++ {
		row := ring(i)
		nextRow := row + longitude
		for j := range longitude {
			next := (j + 1) % longitude
			a := uint16(row + j)
			b := uint16(row + next)
			c := uint16(nextRow + j)
			d := uint16(nextRow + next)
			indices = append(indices, a, b, c, b, d, c)
		}
	}
	base := ring(latitude - 2)
	for j := range longitude {
		next := (j + 1) % longitude
		indices = append(indices, uint16(base+j), uint16(base+next), uint16(bottom))
	}

	for j := range longitude {
		edges = append(edges, uint16(top), uint16(1+j))
		for i := 0; i < latitude-2; i++ {
			current := ring(i)
			edges = append(edges, uint16(current+j), uint16(current+longitude+j))
		}
		edges = append(edges, uint16(base+j), uint16(bottom))
	}
	for i := 1; i < latitude; i++ {
		start := ring(i - 1)
		for j := range longitude {
			next := (j + 1) % longitude
			edges = append(edges, uint16(start+j), uint16(start+next))
		}
	}

	return Geometry{Vertices: vertices, Indices: indices, EdgeIndices: edges}, nil
}

func newSphereVertex(position [3]float32) Vertex {
	v := NewVertex(position)
	v.Normal = common.Normalize3(position)
	return v
}

// GenerateGeometry dispatches to the generator registered for t.
//
// Parameters:
//   - t: the mesh type to generate
//   - sphereDivisions: latitude bands used when t is MeshTypeSphere
//
// Returns:
//   - Geometry: the generated geometry
//   - error: ErrNoGeometry for MeshTypeTriangle or unknown types, or the sphere generator's error
func GenerateGeometry(t MeshType, sphereDivisions int) (Geometry, error) {
	switch t {
	case MeshTypeCube:
		return CubeGeometry(), nil
	case MeshTypeTetrahedron:
		return TetrahedronGeometry(), nil
	case MeshTypeSphere:
		return SphereGeometry(sphereDivisions)
	case MeshTypeTriangle:
		return Geometry{}, fmt.Errorf("%s: %w", t, ErrNoGeometry)
	default:
		return Geometry{}, fmt.Errorf("unknown mesh type %d: %w", int(t), ErrNoGeometry)
	}
}
