//go:build go1.22

package heap

// FitPolicy selects how an [Index] chooses among candidate free blocks.
type FitPolicy int

const (
	// BestFit scans every free block, preferring an exact match and
	// otherwise the smallest block that is still big enough. It is the
	// zero value and therefore the default for a [Heap] constructed
	// without an explicit [WithPolicy].
	BestFit FitPolicy = iota

	// FirstFit returns the first free block in traversal order that is big
	// enough.
	FirstFit

	// NextFit is like FirstFit, but traversal resumes from the block after
	// the last successful match, wrapping once.
	NextFit
)

// Shape selects the free-block registry realisation a [Heap] uses.
type Shape int

const (
	// ExplicitList realises the registry as a single singly-linked free
	// list; links live in the free payload.
	ExplicitList Shape = iota

	// Segregated realises the registry as five singly-linked size-class
	// buckets (TINY/SMALL/MID/BIG/HUGE).
	Segregated
)

// Index tracks free blocks so the allocator can reuse them instead of
// growing the arena. Exactly one Index shape is in effect per [Heap],
// chosen at construction time, never per call.
type Index interface {
	// Insert places a free block into the registry.
	Insert(b Block)

	// Remove unlinks a free block from the registry. b must currently be
	// registered.
	Remove(b Block)

	// Find returns a free block whose size is at least size bytes,
	// according to the index's fit policy, or the zero Block if none
	// qualifies.
	Find(size int) Block

	// Clear drops every entry, as on [Arena.Reset].
	Clear()
}
