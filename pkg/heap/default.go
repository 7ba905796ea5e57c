//go:build go1.22

package heap

// defaultHeap is a package-wide Heap retained for API compatibility with
// callers that want malloc/free-style free functions instead of threading a
// *Heap through their code. It uses the zero-value [ExplicitList]/[BestFit]
// configuration.
var defaultHeap = New()

// Allocate allocates size bytes from the default [Heap]. See [Heap.Allocate].
func Allocate(size int) Addr { return defaultHeap.Allocate(size) }

// ZeroAllocate allocates count*elemSize zeroed bytes from the default
// [Heap]. See [Heap.ZeroAllocate].
func ZeroAllocate(count, elemSize int) Addr { return defaultHeap.ZeroAllocate(count, elemSize) }

// Reallocate resizes payload using the default [Heap]. See
// [Heap.Reallocate].
func Reallocate(payload Addr, newSize int) Addr { return defaultHeap.Reallocate(payload, newSize) }

// Free releases payload back to the default [Heap]. See [Heap.Free].
func Free(payload Addr) { defaultHeap.Free(payload) }

// Reset resets the default [Heap]. See [Heap.Reset].
func Reset() { defaultHeap.Reset() }

// Default returns the package-wide default Heap, for callers that want
// direct access (e.g. for [pkg/heap/stats]) without constructing their own.
func Default() *Heap { return defaultHeap }
