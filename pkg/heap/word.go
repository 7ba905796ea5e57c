//go:build go1.22

// Package heap implements a byte-granular dynamic memory allocator on top of
// a simulated program-break primitive.
//
// The engine is organised into four collaborators: [Break] grows and resets
// a contiguous memory region, [Arena] owns that region, block headers carry
// size/used/terminal bits packed into a single word, and [Index] tracks free
// blocks for reuse. [Heap] ties these together behind the classic
// allocate/free/reallocate/zero-allocate surface.
package heap

import "unsafe"

// WordSize is the platform's natural pointer-sized unit. All sizes and
// addresses the engine hands out are multiples of WordSize.
const WordSize = int(unsafe.Sizeof(uint64(0)))

// headerSize is the size in bytes of a block's header. The header is a
// single bit-packed word: low bits carry flags, the rest carries the size.
const headerSize = WordSize

// HeaderSize exports headerSize for collaborators outside the package, such
// as pkg/heap/stats, that need to account for header overhead without
// reaching into block internals.
const HeaderSize = headerSize

// Align rounds n up to the next multiple of WordSize. Align(0) is 0.
func Align(n int) int {
	if n <= 0 {
		return 0
	}

	return (n + WordSize - 1) &^ (WordSize - 1)
}
