//go:build go1.22

package stats_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/go-heap/heapalloc/pkg/heap"
	"github.com/go-heap/heapalloc/pkg/heap/stats"
)

func TestTakeOnEmptyHeap(t *testing.T) {
	Convey("Given a Heap that has never allocated anything", t, func() {
		h := heap.New(heap.WithBreak(heap.NewBreak(4096)))

		Convey("Then its snapshot is all zeroes", func() {
			s := stats.Take(h)

			So(s, ShouldResemble, stats.Snapshot{})
		})
	})
}

func TestTakeTilesTheArena(t *testing.T) {
	Convey("Given a Heap with a mix of used and free blocks", t, func() {
		h := heap.New(heap.WithBreak(heap.NewBreak(4096)))

		a := h.Allocate(64)
		b := h.Allocate(8)
		_ = h.Allocate(16)
		h.Free(a)
		h.Free(b)

		Convey("Then every block is accounted for and spans tile the arena", func() {
			s := stats.Take(h)

			So(s.Blocks, ShouldEqual, s.UsedBlocks+s.FreeBlocks)
			So(s.UsedBytes+s.FreeBytes+s.HeaderBytes, ShouldEqual, s.ArenaBytes)
			So(s.ArenaBytes, ShouldEqual, h.Arena().Size())
		})

		Convey("Then freed blocks are reflected as free bytes", func() {
			s := stats.Take(h)

			So(s.FreeBlocks, ShouldBeGreaterThanOrEqualTo, 1)
			So(s.UsedBlocks, ShouldEqual, 1)
		})
	})
}

func TestTakeAfterSplitAndCoalesce(t *testing.T) {
	Convey("Given a heap that has split a block and then coalesced it back", t, func() {
		h := heap.New(heap.WithBreak(heap.NewBreak(4096)))

		first := h.Allocate(64)
		anchor := h.Allocate(8)
		h.Free(first)

		p := h.Allocate(32) // reuses first's block, splitting off a free tail
		h.Free(p)           // merges back with the tail (forward coalescing)

		Convey("Then the arena is still exactly tiled", func() {
			s := stats.Take(h)

			So(s.UsedBytes+s.FreeBytes+s.HeaderBytes, ShouldEqual, s.ArenaBytes)
			So(anchor.Valid(), ShouldBeTrue)
		})
	})
}
