//go:build go1.22

package heap_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/go-heap/heapalloc/pkg/heap"
)

func TestBlockHeader(t *testing.T) {
	Convey("Given a block carved out of a grown arena", t, func() {
		a := heap.NewArena(heap.NewBreak(256))
		at, err := a.Grow(heap.HeaderSize + 64)
		So(err, ShouldBeNil)

		b := heap.BlockAt(at)
		b.SetSize(64)

		Convey("Then size round-trips", func() {
			So(b.Size(), ShouldEqual, 64)
		})

		Convey("Then used defaults to false and round-trips", func() {
			So(b.Used(), ShouldBeFalse)

			b.SetUsed(true)
			So(b.Used(), ShouldBeTrue)

			b.SetUsed(false)
			So(b.Used(), ShouldBeFalse)
		})

		Convey("Then last defaults to false and round-trips", func() {
			So(b.IsLast(), ShouldBeFalse)

			b.SetLast(true)
			So(b.IsLast(), ShouldBeTrue)
			So(b.NextByAddress(), ShouldEqual, heap.Addr(0))
		})

		Convey("Then payload is word-aligned and inverts through BlockOf", func() {
			p := b.Payload()
			So(int(p)%heap.WordSize, ShouldEqual, 0)
			So(heap.BlockOf(p).Addr(), ShouldEqual, b.Addr())
		})

		Convey("Then setting size does not disturb the flags", func() {
			b.SetUsed(true)
			b.SetLast(true)
			b.SetSize(128)

			So(b.Size(), ShouldEqual, 128)
			So(b.Used(), ShouldBeTrue)
			So(b.IsLast(), ShouldBeTrue)
		})

		Convey("Then a non-last block's next-by-address is computable from size", func() {
			b.SetLast(false)
			So(b.NextByAddress(), ShouldEqual, b.Addr().Add(heap.HeaderSize+64))
		})
	})
}
