package mesh

// InstanceBuffer tracks the capacity of one growable per-type instance buffer.
// Contents are rewritten wholesale every frame, so growing never migrates data.
// The zero value is not usable; create one with NewInstanceBuffer.
type InstanceBuffer struct {
	capacity int
}

// NewInstanceBuffer creates an InstanceBuffer with the given starting capacity.
// A non-positive capacity is normalized to 1 so doubling always makes progress.
//
// Parameters:
//   - capacity: the initial number of instances the buffer can hold
//
// Returns:
//   - *InstanceBuffer: the instance buffer
func NewInstanceBuffer(capacity int) *InstanceBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &InstanceBuffer{capacity: capacity}
}

// Capacity returns the number of instances the buffer can currently hold.
func (b *InstanceBuffer) Capacity() int {
	return b.capacity
}

// Reserve grows the capacity to hold at least n instances by repeated doubling.
// The resulting capacity is the smallest capacity*2^k that is >= n. Capacity never shrinks.
// Any GPU allocation sized from the previous capacity is stale once Reserve reports growth.
//
// Parameters:
//   - n: the number of instances about to be written
//
// Returns:
//   - bool: true if the capacity grew
func (b *InstanceBuffer) Reserve(n int) bool {
	if n <= b.capacity {
		return false
	}
	for b.capacity < n {
		b.capacity *= 2
	}
	return true
}
