package renderer

import (
	"bytes"
	"log"
	"testing"

	"github.com/Carmen-Shannon/oxy-prims/engine/command"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchGroupsInEnumOrder(t *testing.T) {
	store := mesh.NewStore(mesh.WithSphereDivisions(3))
	b := newBatcher(store, log.New(&bytes.Buffer{}, "", 0))

	red := command.NewDrawCommand(mesh.MeshTypeCube, command.WithColorU8(255, 0, 0, 255), command.WithScale(0.1))
	green := command.NewDrawCommand(mesh.MeshTypeCube, command.WithColorU8(0, 255, 0, 255))
	sphere := command.NewDrawCommand(mesh.MeshTypeSphere)
	tetra := command.NewDrawCommand(mesh.MeshTypeTetrahedron)

	batches := b.batch([]command.DrawCommand{sphere, red, tetra, green})
	require.Len(t, batches, 3)
	assert.Equal(t, mesh.MeshTypeCube, batches[0].Mesh.Type())
	assert.Equal(t, mesh.MeshTypeTetrahedron, batches[1].Mesh.Type())
	assert.Equal(t, mesh.MeshTypeSphere, batches[2].Mesh.Type())

	cubes := batches[0]
	require.Len(t, cubes.Solid, 2)
	assert.Equal(t, red.Instance, cubes.Solid[0])
	assert.Equal(t, green.Instance, cubes.Solid[1])

	require.Len(t, cubes.Outline, 2)
	assert.Equal(t, DefaultOutlineColor, cubes.Outline[0].Color)
	assert.InDelta(t, 0.1*DefaultOutlineScale, cubes.Outline[0].Model[0], 1e-7)
}

func TestBatchWarnsOnceForUnknownMeshType(t *testing.T) {
	logs := &bytes.Buffer{}
	b := newBatcher(mesh.NewStore(mesh.WithMeshTypes(mesh.MeshTypeCube)), log.New(logs, "", 0))

	cmds := []command.DrawCommand{
		command.NewDrawCommand(mesh.MeshType(42)),
		command.NewDrawCommand(mesh.MeshTypeCube),
		command.NewDrawCommand(mesh.MeshType(42)),
	}
	batches := b.batch(cmds)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Solid, 1)

	b.batch(cmds)
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("unknown mesh type 42")))
	assert.Len(t, b.grouped, 1)
}

func TestBatchReusesScratchBetweenFrames(t *testing.T) {
	store := mesh.NewStore(mesh.WithMeshTypes(mesh.MeshTypeCube))
	b := newBatcher(store, log.New(&bytes.Buffer{}, "", 0))

	first := b.batch([]command.DrawCommand{
		command.NewDrawCommand(mesh.MeshTypeCube),
		command.NewDrawCommand(mesh.MeshTypeCube),
	})
	require.Len(t, first, 1)
	assert.Len(t, first[0].Solid, 2)

	second := b.batch([]command.DrawCommand{command.NewDrawCommand(mesh.MeshTypeCube)})
	require.Len(t, second, 1)
	assert.Len(t, second[0].Solid, 1)
	assert.Len(t, second[0].Outline, 1)

	assert.Empty(t, b.batch(nil))
}

func TestBatchCustomOutlineStyle(t *testing.T) {
	r := newRenderer(BackendTypeWGPU,
		WithStore(mesh.NewStore(mesh.WithMeshTypes(mesh.MeshTypeCube))),
		WithOutlineStyle(1.5, [4]float32{0, 0, 0, 1}),
	)

	batches := r.batcher.batch([]command.DrawCommand{command.NewDrawCommand(mesh.MeshTypeCube)})
	require.Len(t, batches, 1)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, batches[0].Outline[0].Color)
	assert.InDelta(t, 1.5, batches[0].Outline[0].Model[0], 1e-7)
}
