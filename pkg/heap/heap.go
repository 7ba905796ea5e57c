//go:build go1.22

package heap

import "github.com/go-heap/heapalloc/internal/debug"

// Heap is the public allocator: it chooses a fit from its [Index],
// optionally splits, coalesces on free, and extends its [Arena] when no fit
// exists.
//
// A Heap is not safe for concurrent use by multiple goroutines; callers
// that need that must serialise every call to a Heap's methods themselves,
// per spec's process-wide shared-state model.
type Heap struct {
	arena    *Arena
	index    Index
	tail     Block
	shape    Shape
	policy   FitPolicy
	coalesce bool
}

// Option configures a [Heap] at construction time.
type Option func(*Heap)

// WithShape selects the free-block registry realisation.
func WithShape(s Shape) Option {
	return func(h *Heap) { h.shape = s }
}

// WithPolicy selects the fit policy used by an [ExplicitList] index. It has
// no effect when combined with [WithShape]([Segregated]), which always
// applies best-fit within the starting bucket.
func WithPolicy(p FitPolicy) Option {
	return func(h *Heap) { h.policy = p }
}

// WithBreak supplies the [Break] primitive the Heap's [Arena] grows through.
func WithBreak(dev Break) Option {
	return func(h *Heap) { h.arena = NewArena(dev) }
}

// WithCoalescing enables or disables forward coalescing on free. It is
// enabled by default.
func WithCoalescing(enabled bool) Option {
	return func(h *Heap) { h.coalesce = enabled }
}

// New returns a ready-to-use Heap. Its Arena initialises lazily on first
// allocation unless [WithBreak] supplies one.
func New(opts ...Option) *Heap {
	h := &Heap{coalesce: true}

	for _, opt := range opts {
		opt(h)
	}

	if h.arena == nil {
		h.arena = NewArena(nil)
	}

	h.index = newIndex(h.shape, h.policy)

	return h
}

func newIndex(shape Shape, policy FitPolicy) Index {
	if shape == Segregated {
		return NewBuckets()
	}

	return NewFreeList(policy)
}

// Allocate rounds size up to word alignment and returns a payload of at
// least that many bytes, reusing a free block if one fits or else growing
// the arena. It returns a zero Addr for non-positive size or on
// out-of-memory.
func (h *Heap) Allocate(size int) Addr {
	if size <= 0 {
		return 0
	}

	aligned := Align(size)

	if b := h.index.Find(aligned); b.Valid() {
		h.index.Remove(b)
		h.maybeSplit(b, aligned)
		b.SetUsed(true)

		return b.Payload()
	}

	b, err := h.growBlock(aligned)
	if err != nil {
		debug.Log(nil, "allocate", "oom requesting %d bytes", aligned)

		return 0
	}

	return b.Payload()
}

// growBlock extends the arena by exactly enough to host a new used block of
// the given aligned size, updating the terminal flag of both the new block
// and whatever used to be terminal.
func (h *Heap) growBlock(size int) (Block, error) {
	prevLast := h.lastBlock()

	at, err := h.arena.Grow(headerSize + size)
	if err != nil {
		return Block{}, err
	}

	b := BlockAt(at)
	b.SetSize(size)
	b.SetUsed(true)
	b.SetLast(true)

	if prevLast.Valid() {
		prevLast.SetLast(false)
	}

	h.tail = b

	return b, nil
}

// lastBlock returns the current terminal block, or the zero Block if the
// arena is still empty.
func (h *Heap) lastBlock() Block {
	return h.tail
}

// maybeSplit splits b if its remainder would be big enough to host another
// header plus at least one word of payload, inserting the new tail block
// back into the index.
func (h *Heap) maybeSplit(b Block, size int) {
	remaining := b.Size() - size - headerSize
	if remaining < WordSize {
		return
	}

	tail := BlockAt(b.addr.Add(headerSize + size))
	tail.SetSize(remaining)
	tail.SetUsed(false)

	if b.IsLast() {
		tail.SetLast(true)
		b.SetLast(false)

		h.tail = tail
	} else {
		tail.SetLast(false)
	}

	b.SetSize(size)

	h.index.Insert(tail)
}

// Free returns payload to the allocator. A null payload is a no-op.
//
// If coalescing is enabled (the default) and the address-order successor of
// payload's block is free, the two are merged into one block before the
// insert, so the freed block never has a free address-order successor once
// Free returns. This Heap does not maintain a backward address-order chain,
// so coalescing never looks at the previous-by-address neighbour: freeing a
// block whose predecessor is already free leaves the two as separate,
// adjacent free blocks.
func (h *Heap) Free(payload Addr) {
	if !payload.Valid() {
		return
	}

	b := BlockOf(payload)

	if h.coalesce {
		b = h.coalesceForward(b)
	}

	b.SetUsed(false)
	h.index.Insert(b)
}

func (h *Heap) coalesceForward(b Block) Block {
	next := b.NextByAddress()
	if !next.Valid() {
		return b
	}

	nb := BlockAt(next)
	if nb.Used() {
		return b
	}

	h.index.Remove(nb)

	b.SetSize(b.Size() + headerSize + nb.Size())

	if nb.IsLast() {
		b.SetLast(true)

		h.tail = b
	} else {
		b.SetLast(false)
	}

	return b
}

// Reallocate resizes the allocation at payload to newSize bytes. A null payload
// behaves like Allocate. If the current block is already big enough, the
// same payload is returned (the extra space becomes internal
// fragmentation, untracked). Otherwise a new block is allocated, the
// smaller of the old and new sizes is copied over, the old block is freed,
// and the new payload is returned. Returns a zero Addr on failure; the old
// allocation is left intact in that case.
func (h *Heap) Reallocate(payload Addr, newSize int) Addr {
	if !payload.Valid() {
		return h.Allocate(newSize)
	}

	if newSize <= 0 {
		return 0
	}

	old := BlockOf(payload)
	aligned := Align(newSize)

	if old.Size() >= aligned {
		return payload
	}

	next := h.Allocate(newSize)
	if !next.Valid() {
		return 0
	}

	n := old.Size()
	if aligned < n {
		n = aligned
	}

	copyBytes(next, payload, n)
	h.Free(payload)

	return next
}

// ZeroAllocate allocates count*elemSize bytes and zeroes them before
// returning, mirroring calloc. It returns a zero Addr if the product
// overflows or if the underlying allocation fails.
func (h *Heap) ZeroAllocate(count, elemSize int) Addr {
	if count < 0 || elemSize < 0 {
		return 0
	}

	if count == 0 || elemSize == 0 {
		return h.Allocate(0)
	}

	if count > 1<<16 && elemSize > 1<<16 {
		const maxInt = int(^uint(0) >> 1)
		if maxInt/count < elemSize {
			return 0
		}
	}

	size := count * elemSize

	p := h.Allocate(size)
	if !p.Valid() {
		return 0
	}

	zero(p, Align(size))

	return p
}

// Reset restores the arena's break to its initial value and drops every
// free-list entry. Any payload handed out before Reset is invalid
// afterwards; the engine does not detect use-after-reset.
func (h *Heap) Reset() {
	h.arena.Reset()
	h.index.Clear()
	h.tail = Block{}
}

// Arena returns the Heap's underlying [Arena], primarily for
// [pkg/heap/stats].
func (h *Heap) Arena() *Arena { return h.arena }
