//go:build go1.22

package heap_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/go-heap/heapalloc/pkg/heap"
)

func growFree(t *testing.T, a *heap.Arena, size int) heap.Block {
	t.Helper()

	at, err := a.Grow(heap.HeaderSize + size)
	So(err, ShouldBeNil)

	b := heap.BlockAt(at)
	b.SetSize(size)

	return b
}

func TestBucketsClassBoundaries(t *testing.T) {
	Convey("Given a segregated Buckets index", t, func() {
		a := heap.NewArena(heap.NewBreak(4096))
		x := heap.NewBuckets()

		tiny := growFree(t, a, heap.WordSize)       // 1 word
		small := growFree(t, a, 16*heap.WordSize)   // 16 words
		mid := growFree(t, a, 32*heap.WordSize)     // 32 words
		big := growFree(t, a, 64*heap.WordSize)     // 64 words
		huge := growFree(t, a, 128*heap.WordSize)   // 128 words

		for _, b := range []heap.Block{tiny, small, mid, big, huge} {
			x.Insert(b)
		}

		Convey("Then each size lands in its own class and is found by exact match", func() {
			So(x.Find(heap.WordSize).Addr(), ShouldEqual, tiny.Addr())
			So(x.Find(16*heap.WordSize).Addr(), ShouldEqual, small.Addr())
			So(x.Find(32*heap.WordSize).Addr(), ShouldEqual, mid.Addr())
			So(x.Find(64*heap.WordSize).Addr(), ShouldEqual, big.Addr())
			So(x.Find(128*heap.WordSize).Addr(), ShouldEqual, huge.Addr())
		})

		Convey("Then a request landing in TINY but too big for it falls forward to SMALL", func() {
			// 15 words classifies as TINY, but the only TINY block is 1 word
			// and can't satisfy it, so the search falls forward to SMALL.
			found := x.Find(15 * heap.WordSize)
			So(found.Addr(), ShouldEqual, small.Addr())
		})

		Convey("Then removing a block drops it from its bucket", func() {
			x.Remove(mid)

			found := x.Find(32 * heap.WordSize)
			So(found.Addr(), ShouldEqual, big.Addr())
		})

		Convey("Then Clear empties every bucket", func() {
			x.Clear()

			So(x.Find(heap.WordSize).Valid(), ShouldBeFalse)
			So(x.Find(128*heap.WordSize).Valid(), ShouldBeFalse)
		})
	})
}

func TestBucketsFallsForwardOnMiss(t *testing.T) {
	Convey("Given only a HUGE block available", t, func() {
		a := heap.NewArena(heap.NewBreak(4096))
		x := heap.NewBuckets()

		huge := growFree(t, a, 200*heap.WordSize)
		x.Insert(huge)

		Convey("When a small request has no same-class candidate", func() {
			found := x.Find(2 * heap.WordSize)

			Convey("Then the search falls forward to the next non-empty bucket", func() {
				So(found.Addr(), ShouldEqual, huge.Addr())
			})
		})
	})
}

func TestBucketsBestFitWithinBucket(t *testing.T) {
	Convey("Given two MID blocks of different sizes", t, func() {
		a := heap.NewArena(heap.NewBreak(4096))
		x := heap.NewBuckets()

		small := growFree(t, a, 40*heap.WordSize)
		large := growFree(t, a, 50*heap.WordSize)

		x.Insert(large)
		x.Insert(small)

		Convey("When a request fits both, the smaller qualifying block wins", func() {
			found := x.Find(35 * heap.WordSize)
			So(found.Addr(), ShouldEqual, small.Addr())
		})
	})
}
