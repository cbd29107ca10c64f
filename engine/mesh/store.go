package mesh

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// store is the implementation of the Store interface.
type store struct {
	meshes            map[MeshType]Mesh
	meshTypes         []MeshType
	sphereDivisions   int
	instanceCapacity  int
	generationWorkers int
	logger            *log.Logger
}

// Store defines the interface for the per-type mesh registry built once at startup.
// A type whose geometry could not be generated is absent from the store.
type Store interface {
	// Mesh retrieves the mesh registered for a primitive type.
	//
	// Parameters:
	//   - t: the mesh type to look up
	//
	// Returns:
	//   - Mesh: the mesh, or nil if none is registered
	//   - bool: true if a mesh is registered for t
	Mesh(t MeshType) (Mesh, bool)

	// Types returns the registered mesh types in declaration order.
	//
	// Returns:
	//   - []MeshType: the registered types
	Types() []MeshType
}

var _ Store = &store{}

// NewStore generates the geometry for every configured mesh type and registers a Mesh for each.
// Generation is fanned out over a worker pool and joined before NewStore returns, so the store is
// complete and immutable in shape by the time the first frame is built.
// Types without geometry are logged and left unregistered.
//
// Parameters:
//   - options: functional options to configure the store
//
// Returns:
//   - Store: the populated store
func NewStore(options ...StoreBuilderOption) Store {
	s := &store{
		meshes:            make(map[MeshType]Mesh),
		meshTypes:         []MeshType{MeshTypeCube, MeshTypeTetrahedron, MeshTypeSphere},
		sphereDivisions:   DefaultSphereDivisions,
		instanceCapacity:  DefaultInstanceCapacity,
		generationWorkers: 2,
		logger:            log.Default(),
	}

	for _, option := range options {
		option(s)
	}

	s.generate()
	return s
}

func (s *store) generate() {
	type result struct {
		meshType MeshType
		geometry Geometry
		err      error
	}

	results := make([]result, len(s.meshTypes))
	pool := worker.NewDynamicWorkerPool(max(s.generationWorkers, 1), 256, 1*time.Second)

	var wg sync.WaitGroup
	for i, t := range s.meshTypes {
		wg.Add(1)
		idx, mt := i, t
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				g, err := GenerateGeometry(mt, s.sphereDivisions)
				results[idx] = result{meshType: mt, geometry: g, err: err}
				return nil, err
			},
		})
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			if errors.Is(r.err, ErrNoGeometry) {
				s.logger.Printf("[Mesh] %s has no geometry, skipping", r.meshType)
			} else {
				s.logger.Printf("[Mesh] failed to generate %s: %v", r.meshType, r.err)
			}
			continue
		}
		if _, exists := s.meshes[r.meshType]; exists {
			continue
		}
		s.meshes[r.meshType] = NewMesh(r.meshType, r.geometry, WithCapacity(s.instanceCapacity))
	}
}

func (s *store) Mesh(t MeshType) (Mesh, bool) {
	m, ok := s.meshes[t]
	return m, ok
}

func (s *store) Types() []MeshType {
	types := make([]MeshType, 0, len(s.meshes))
	for _, t := range MeshTypes() {
		if _, ok := s.meshes[t]; ok {
			types = append(types, t)
		}
	}
	return types
}
