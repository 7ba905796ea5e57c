//go:build go1.22

// Package stats computes read-only occupancy snapshots over a
// [github.com/go-heap/heapalloc/pkg/heap.Heap], by walking its arena in
// address order.
package stats

import "github.com/go-heap/heapalloc/pkg/heap"

// Snapshot summarises a Heap's arena at a point in time.
type Snapshot struct {
	Blocks      int // total number of blocks, used and free
	UsedBlocks  int
	FreeBlocks  int
	UsedBytes   int // sum of used blocks' payload sizes
	FreeBytes   int // sum of free blocks' payload sizes
	HeaderBytes int // sum of every block's header
	ArenaBytes  int // current break minus initial break
}

// Take walks h's arena from its first block to its terminal block and
// summarises what it finds. It never mutates h.
//
// For every Heap, UsedBytes+FreeBytes+HeaderBytes == ArenaBytes: block spans
// tile the arena with no gaps.
func Take(h *heap.Heap) Snapshot {
	var s Snapshot

	a := h.Arena()
	s.ArenaBytes = a.Size()

	if s.ArenaBytes == 0 {
		return s
	}

	for addr := a.Initial(); ; {
		b := heap.BlockAt(addr)

		s.Blocks++
		s.HeaderBytes += heap.HeaderSize

		if b.Used() {
			s.UsedBlocks++
			s.UsedBytes += b.Size()
		} else {
			s.FreeBlocks++
			s.FreeBytes += b.Size()
		}

		next := b.NextByAddress()
		if !next.Valid() {
			break
		}

		addr = next
	}

	return s
}
