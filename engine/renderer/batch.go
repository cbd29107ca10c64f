package renderer

import (
	"log"

	"github.com/Carmen-Shannon/oxy-prims/engine/command"
	"github.com/Carmen-Shannon/oxy-prims/engine/mesh"
)

const (
	// DefaultOutlineScale is the uniform model-space scale applied to outline instances.
	DefaultOutlineScale float32 = 1.005
)

// DefaultOutlineColor is the color every outline instance is drawn with.
var DefaultOutlineColor = [4]float32{1, 1, 1, 1}

// Batch is the per-mesh work for one frame: the solid instances in submission order and the
// outline instances derived from them.
type Batch struct {
	Mesh    mesh.Mesh
	Solid   []command.Instance
	Outline []command.Instance
}

// batcher groups a frame's draw commands by mesh type and prepares the store's capacity for them.
// It keeps per-type scratch slices and the set of types already warned about between frames.
type batcher struct {
	store  mesh.Store
	logger *log.Logger

	outlineEnabled bool
	outlineScale   float32
	outlineColor   [4]float32

	warned  map[mesh.MeshType]bool
	grouped map[mesh.MeshType][]command.Instance
	batches []Batch
}

func newBatcher(store mesh.Store, logger *log.Logger) *batcher {
	return &batcher{
		store:          store,
		logger:         logger,
		outlineEnabled: true,
		outlineScale:   DefaultOutlineScale,
		outlineColor:   DefaultOutlineColor,
		warned:         make(map[mesh.MeshType]bool),
		grouped:        make(map[mesh.MeshType][]command.Instance),
	}
}

func (b *batcher) warnOnce(t mesh.MeshType, format string, args ...any) {
	if b.warned[t] {
		return
	}
	b.warned[t] = true
	b.logger.Printf(format, args...)
}

// batch walks mesh types in enum order and returns one Batch per type that has both commands and
// a registered mesh. A type with commands but no mesh, or a value outside the declared types, is
// logged once for the batcher's lifetime and skipped. Both instance buffers of every batched mesh are reserved before the batch is returned.
// The returned slices are reused by the next call.
func (b *batcher) batch(cmds []command.DrawCommand) []Batch {
	for t, instances := range b.grouped {
		b.grouped[t] = instances[:0]
	}
	for i := range cmds {
		t := cmds[i].MeshType
		if !t.Valid() {
			b.warnOnce(t, "[Renderer] dropping draw commands with unknown mesh type %d", int(t))
			continue
		}
		b.grouped[t] = append(b.grouped[t], cmds[i].Instance)
	}

	// reuse last frame's outline storage
	var outlines [][]command.Instance
	for i := range b.batches {
		outlines = append(outlines, b.batches[i].Outline[:0])
	}
	b.batches = b.batches[:0]

	for _, t := range mesh.MeshTypes() {
		solid := b.grouped[t]
		if len(solid) == 0 {
			continue
		}
		m, ok := b.store.Mesh(t)
		if !ok {
			b.warnOnce(t, "[Renderer] %s mesh rendering has not been implemented yet", t)
			continue
		}

		m.SolidInstances().Reserve(len(solid))
		m.EdgeInstances().Reserve(len(solid))

		var outline []command.Instance
		if n := len(b.batches); n < len(outlines) {
			outline = outlines[n]
		}
		if b.outlineEnabled {
			for i := range solid {
				outline = append(outline, solid[i].Outline(b.outlineScale, b.outlineColor))
			}
		}

		b.batches = append(b.batches, Batch{
			Mesh:    m,
			Solid:   solid,
			Outline: outline,
		})
	}

	return b.batches
}
