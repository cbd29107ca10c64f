package mesh

// mesh is the implementation of the Mesh interface.
type mesh struct {
	meshType       MeshType
	geometry       Geometry
	solidInstances *InstanceBuffer
	edgeInstances  *InstanceBuffer
}

// Mesh defines the interface for one primitive type's static geometry and its instance buffers.
// A Mesh is created once at startup; its geometry is never regenerated and its capacities only grow.
type Mesh interface {
	// Type returns the primitive type this mesh was generated for.
	//
	// Returns:
	//   - MeshType: the mesh type
	Type() MeshType

	// Geometry returns the shared vertex, index and edge-index arrays.
	//
	// Returns:
	//   - Geometry: the geometry, read-only
	Geometry() Geometry

	// SolidInstances returns the instance buffer used by the solid pass.
	//
	// Returns:
	//   - *InstanceBuffer: the solid instance buffer
	SolidInstances() *InstanceBuffer

	// EdgeInstances returns the instance buffer used by the outline pass.
	// It grows independently of SolidInstances.
	//
	// Returns:
	//   - *InstanceBuffer: the edge instance buffer
	EdgeInstances() *InstanceBuffer
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh for the given type and geometry.
//
// Parameters:
//   - t: the primitive type
//   - geometry: the generated geometry
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(t MeshType, geometry Geometry, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		meshType: t,
		geometry: geometry,
	}
	capacity := DefaultInstanceCapacity
	for _, option := range options {
		option(m)
	}
	if m.solidInstances == nil {
		m.solidInstances = NewInstanceBuffer(capacity)
	}
	if m.edgeInstances == nil {
		m.edgeInstances = NewInstanceBuffer(capacity)
	}
	return m
}

func (m *mesh) Type() MeshType {
	return m.meshType
}

func (m *mesh) Geometry() Geometry {
	return m.geometry
}

func (m *mesh) SolidInstances() *InstanceBuffer {
	return m.solidInstances
}

func (m *mesh) EdgeInstances() *InstanceBuffer {
	return m.edgeInstances
}
