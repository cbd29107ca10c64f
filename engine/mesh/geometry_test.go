package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-prims/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereGeometryCounts(t *testing.T) {
	for _, d := range []int{2, 3, 4, 10, 32} {
		g, err := SphereGeometry(d)
		require.NoError(t, err, "divisions %d", d)

		lon, lat := 2*d, d
		assert.Len(t, g.Vertices, 2+(d-1)*2*d, "divisions %d", d)
		assert.Len(t, g.Indices, 6*2*d*(d-1), "divisions %d", d)
		assert.Len(t, g.EdgeIndices, 2*lon*(2*lat-1), "divisions %d", d)
		assert.Equal(t, SphereVertexCount(d), len(g.Vertices))

		for _, idx := range g.Indices {
			assert.Less(t, int(idx), len(g.Vertices))
		}
		for _, idx := range g.EdgeIndices {
			assert.Less(t, int(idx), len(g.Vertices))
		}
	}
}

func TestSphereGeometryVerticesOnUnitSphere(t *testing.T) {
	g, err := SphereGeometry(10)
	require.NoError(t, err)

	assert.Equal(t, [3]float32{0, 1, 0}, g.Vertices[0].Position)
	assert.Equal(t, [3]float32{0, -1, 0}, g.Vertices[len(g.Vertices)-1].Position)
	for i, v := range g.Vertices {
		assert.InDelta(t, 1, common.Length3(v.Position), 1e-5, "vertex %d", i)
		for k := range 3 {
			assert.InDelta(t, v.Position[k], v.Normal[k], 1e-5, "vertex %d", i)
		}
		assert.Equal(t, [3]float32{1, 1, 1}, v.Color)
	}
}

func TestSphereGeometryEdgesAreUnique(t *testing.T) {
	g, err := SphereGeometry(6)
	require.NoError(t, err)

	seen := make(map[[2]uint16]bool)
	for i := 0; i < len(g.EdgeIndices); i += 2 {
		a, b := g.EdgeIndices[i], g.EdgeIndices[i+1]
		if a > b {
			a, b = b, a
		}
		key := [2]uint16{a, b}
		assert.False(t, seen[key], "duplicate edge %v", key)
		assert.NotEqual(t, a, b)
		seen[key] = true
	}
}

func TestSphereGeometryRejectsDegenerateDivisions(t *testing.T) {
	for _, d := range []int{-1, 0, 1} {
		g, err := SphereGeometry(d)
		assert.ErrorIs(t, err, ErrInvalidDivisions)
		assert.Empty(t, g.Vertices)
		assert.Empty(t, g.Indices)
	}
}

func TestSphereGeometryRejectsIndexOverflow(t *testing.T) {
	_, err := SphereGeometry(200)
	assert.ErrorIs(t, err, ErrIndexOverflow)
}

func TestTetrahedronNormalsPointOutward(t *testing.T) {
	g := TetrahedronGeometry()
	require.Len(t, g.Vertices, 4)

	var centroid [3]float32
	for _, v := range g.Vertices {
		centroid = common.Add3(centroid, v.Position)
	}
	centroid = common.Scale3(centroid, 0.25)

	for i, v := range g.Vertices {
		outward := common.Sub3(v.Position, centroid)
		assert.Greater(t, common.Dot3(v.Normal, outward), float32(0), "vertex %d", i)
		assert.InDelta(t, 1, common.Length3(v.Normal), 1e-5, "vertex %d", i)
	}
}

func TestTetrahedronNormalsAverageIncidentFaces(t *testing.T) {
	g := TetrahedronGeometry()

	// every tetrahedron vertex is shared by exactly three faces
	for vi := range g.Vertices {
		var sum [3]float32
		count := 0
		for i := 0; i < len(g.Indices); i += 3 {
			a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
			if int(a) != vi && int(b) != vi && int(c) != vi {
				continue
			}
			va, vb, vc := g.Vertices[a].Position, g.Vertices[b].Position, g.Vertices[c].Position
			sum = common.Add3(sum, common.Cross3(common.Sub3(vb, va), common.Sub3(vc, va)))
			count++
		}
		assert.Equal(t, 3, count)
		expected := common.Normalize3(sum)
		for k := range 3 {
			assert.InDelta(t, expected[k], g.Vertices[vi].Normal[k], 1e-6)
		}
	}
}

func TestTetrahedronCenteredOnOrigin(t *testing.T) {
	var sum [3]float32
	for _, v := range TetrahedronGeometry().Vertices {
		sum = common.Add3(sum, v.Position)
	}
	for k := range 3 {
		assert.InDelta(t, 0, sum[k], 1e-5)
	}
}

func TestCubeGeometryTables(t *testing.T) {
	g := CubeGeometry()
	assert.Len(t, g.Vertices, 8)
	assert.Len(t, g.Indices, 36)
	assert.Len(t, g.EdgeIndices, 24)

	for i, v := range g.Vertices {
		for k := range 3 {
			assert.Equal(t, v.Position[k] > 0, v.Normal[k] > 0, "vertex %d axis %d", i, k)
		}
		if v.Position[0] > 0 {
			assert.Equal(t, [3]float32{1, 0, 0}, v.Color)
		} else {
			assert.Equal(t, [3]float32{0, 0, 1}, v.Color)
		}
	}

	// front face (+z) winds counter-clockwise seen from outside
	a, b, c := g.Vertices[0].Position, g.Vertices[1].Position, g.Vertices[3].Position
	n := common.Cross3(common.Sub3(b, a), common.Sub3(c, a))
	assert.Greater(t, n[2], float32(0))
}

func TestGenerateGeometry(t *testing.T) {
	tests := []struct {
		name     string
		meshType MeshType
		vertices int
		wantErr  error
	}{
		{"triangle has no geometry", MeshTypeTriangle, 0, ErrNoGeometry},
		{"cube", MeshTypeCube, 8, nil},
		{"tetrahedron", MeshTypeTetrahedron, 4, nil},
		{"sphere", MeshTypeSphere, SphereVertexCount(4), nil},
		{"unknown type", MeshType(42), 0, ErrNoGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := GenerateGeometry(tt.meshType, 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, g.Vertices, tt.vertices)
		})
	}
}
