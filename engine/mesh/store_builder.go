package mesh

import "log"

// StoreBuilderOption is a functional option for configuring a Store via NewStore.
type StoreBuilderOption func(*store)

// WithMeshTypes is an option builder that sets which mesh types the store generates.
//
// Parameters:
//   - types: the mesh types to generate at startup
//
// Returns:
//   - StoreBuilderOption: a function that applies the mesh types option to a store
func WithMeshTypes(types ...MeshType) StoreBuilderOption {
	return func(s *store) {
		s.meshTypes = types
	}
}

// WithSphereDivisions is an option builder that sets the latitude band count of the sphere mesh.
//
// Parameters:
//   - divisions: the number of latitude bands, at least 2
//
// Returns:
//   - StoreBuilderOption: a function that applies the sphere divisions option to a store
func WithSphereDivisions(divisions int) StoreBuilderOption {
	return func(s *store) {
		s.sphereDivisions = divisions
	}
}

// WithInstanceCapacity is an option builder that sets the starting capacity of every instance buffer.
//
// Parameters:
//   - capacity: the initial instance capacity
//
// Returns:
//   - StoreBuilderOption: a function that applies the instance capacity option to a store
func WithInstanceCapacity(capacity int) StoreBuilderOption {
	return func(s *store) {
		s.instanceCapacity = capacity
	}
}

// WithGenerationWorkers is an option builder that sets how many workers generate geometry at startup.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - StoreBuilderOption: a function that applies the generation workers option to a store
func WithGenerationWorkers(workers int) StoreBuilderOption {
	return func(s *store) {
		s.generationWorkers = workers
	}
}

// WithStoreLogger is an option builder that sets the logger used for generation diagnostics.
//
// Parameters:
//   - logger: the logger to write to
//
// Returns:
//   - StoreBuilderOption: a function that applies the logger option to a store
func WithStoreLogger(logger *log.Logger) StoreBuilderOption {
	return func(s *store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
