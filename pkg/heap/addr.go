//go:build go1.22

package heap

import "unsafe"

// Addr is the address of a byte within an [Arena]'s backing region.
//
// Addr is a uintptr rather than a *byte so that a zero Addr can stand in for
// a null pointer without reserving a sentinel value, matching the
// query_current()/set() contract spec.md describes for the break primitive.
// Converting an Addr back to unsafe.Pointer is only valid while the Arena
// that produced it keeps its backing buffer alive; the engine never lets an
// Addr outlive its Arena's buffer because the buffer is never reallocated
// once reserved (see [Arena]).
type Addr uintptr

// Valid reports whether a is non-null.
func (a Addr) Valid() bool { return a != 0 }

// Add returns a offset by n bytes.
func (a Addr) Add(n int) Addr { return a + Addr(n) }

// Sub returns the distance in bytes from b to a.
func (a Addr) Sub(b Addr) int { return int(a - b) }

func (a Addr) ptr() unsafe.Pointer { return unsafe.Pointer(a) } //nolint:govet

// Ptr exposes a as an unsafe.Pointer for callers that need to read or write
// the bytes at a payload address directly, such as pkg/heap/stats or callers
// copying application data into an allocation.
func (a Addr) Ptr() unsafe.Pointer { return a.ptr() }

func addrOf(p unsafe.Pointer) Addr { return Addr(uintptr(p)) }

// ptrOfSlice returns a pointer to buf's first byte. buf must be non-empty.
func ptrOfSlice(buf []byte) unsafe.Pointer { return unsafe.Pointer(&buf[0]) }

func loadU64(a Addr) uint64  { return *(*uint64)(a.ptr()) }
func storeU64(a Addr, v uint64) { *(*uint64)(a.ptr()) = v }

func loadAddr(a Addr) Addr  { return Addr(loadU64(a)) }
func storeAddr(a Addr, v Addr) { storeU64(a, uint64(v)) }

// zero clears n bytes starting at a.
func zero(a Addr, n int) {
	b := unsafe.Slice((*byte)(a.ptr()), n)
	clear(b)
}

// copyBytes copies n bytes from src to dst. The ranges must not overlap in a
// way that corrupts the copy (callers only ever copy between distinct
// blocks).
func copyBytes(dst, src Addr, n int) {
	d := unsafe.Slice((*byte)(dst.ptr()), n)
	s := unsafe.Slice((*byte)(src.ptr()), n)
	copy(d, s)
}
