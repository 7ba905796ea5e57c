//go:build go1.22

package heap

import (
	"errors"

	"github.com/go-heap/heapalloc/internal/debug"
)

// ErrOutOfMemory is returned by [Break.Grow] when the break cannot be
// advanced any further. Public allocator operations never return it
// directly; they translate it into a nil return, per spec.md's error model.
var ErrOutOfMemory = errors.New("heap: out of memory")

// Break is the OS collaborator spec.md describes: a primitive for growing
// and resetting a contiguous region of process memory. query_current() maps
// to [Break.Current] and set() maps to [Break.Grow]/[Break.Reset].
type Break interface {
	// Current returns the current break address.
	Current() Addr

	// Grow advances the break by n bytes and returns the address at which
	// the newly available region begins. It fails with [ErrOutOfMemory] if
	// the region cannot grow that far; the break is left unchanged on
	// failure.
	Grow(n int) (Addr, error)

	// Reset restores the break to its initial value.
	Reset()
}

// reservedBreak is the default [Break]: it reserves a fixed-capacity backing
// array up front and treats the logical length as the break.
//
// A real sbrk(2) grows a virtual memory region without relocating existing
// pages; a Go slice whose backing array is reallocated on growth would
// invalidate every previously handed-out Addr. Reserving the full capacity
// once and only ever growing the logical length is the portable way to get
// that same address stability inside the Go memory model.
type reservedBreak struct {
	buf  []byte // keeps the backing array alive and pins its address
	base Addr
	len  int
}

// NewBreak returns a [Break] backed by a fixed-capacity region of the given
// size. Growth past capacity fails with [ErrOutOfMemory].
func NewBreak(capacity int) Break {
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	b := &reservedBreak{buf: make([]byte, capacity)}
	b.base = addrOf(ptrOfSlice(b.buf))

	return b
}

const defaultCapacity = 64 << 20 // 64 MiB

func (b *reservedBreak) Current() Addr {
	return b.base.Add(b.len)
}

func (b *reservedBreak) Grow(n int) (Addr, error) {
	if n < 0 || b.len+n > len(b.buf) {
		debug.Log(nil, "grow", "refused: len=%d n=%d cap=%d", b.len, n, len(b.buf))

		return 0, ErrOutOfMemory
	}

	at := b.base.Add(b.len)
	b.len += n

	debug.Log(nil, "grow", "%v + %d -> len=%d", at, n, b.len)

	return at, nil
}

func (b *reservedBreak) Reset() {
	b.len = 0
}
