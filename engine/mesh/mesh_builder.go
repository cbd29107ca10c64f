package mesh

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithCapacity is an option builder that sets the starting capacity of both instance buffers.
//
// Parameters:
//   - capacity: the initial instance capacity of the solid and edge buffers
//
// Returns:
//   - MeshBuilderOption: a function that applies the capacity option to a mesh
func WithCapacity(capacity int) MeshBuilderOption {
	return func(m *mesh) {
		m.solidInstances = NewInstanceBuffer(capacity)
		m.edgeInstances = NewInstanceBuffer(capacity)
	}
}
