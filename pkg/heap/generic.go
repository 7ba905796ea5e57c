//go:build go1.22

package heap

import "unsafe"

// NewValue allocates a value of type T on h and initialises it to value.
//
// T must not contain any Go pointers: the payload memory is managed outside
// the garbage collector's view, so a pointer stored there would not keep
// its target alive, and the collector has no way to trace it.
func NewValue[T any](h *Heap, value T) *T {
	p := h.Allocate(int(unsafe.Sizeof(value)))
	if !p.Valid() {
		return nil
	}

	tp := (*T)(p.ptr())
	*tp = value

	return tp
}

// Delete releases a value of type T previously allocated from h with [NewValue]
// back to h's free-block registry.
func Delete[T any](h *Heap, p *T) {
	if p == nil {
		return
	}

	h.Free(addrOf(unsafe.Pointer(p)))
}
