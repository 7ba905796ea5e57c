//go:build go1.22

package heap

// Block is a contiguous span of memory with a bit-packed header prefix and a
// word-aligned payload suffix:
//
//	[ header (1 word) | payload ... ]
//
// The header's low 3 bits are free because a word-aligned size always has
// them clear: bit 0 is the used flag, bit 1 is the terminal (is-last) flag,
// bit 2 is reserved and always zero. The remaining bits hold the payload
// size in bytes.
//
// Block is a thin value wrapping the header's address; all methods are pure
// functions of that address and the bytes it addresses.
type Block struct {
	addr Addr
}

const (
	flagUsed     = 1 << 0
	flagLast     = 1 << 1
	flagMask     = flagUsed | flagLast | (1 << 2)
)

// BlockAt wraps the block whose header starts at addr.
func BlockAt(addr Addr) Block { return Block{addr} }

// Addr returns the address of this block's header.
func (b Block) Addr() Addr { return b.addr }

// Valid reports whether b refers to a real block.
func (b Block) Valid() bool { return b.addr.Valid() }

func (b Block) header() uint64 { return loadU64(b.addr) }

func (b Block) setHeader(h uint64) { storeU64(b.addr, h) }

// Size returns the payload size in bytes.
func (b Block) Size() int { return int(b.header() &^ uint64(flagMask)) }

// SetSize sets the payload size in bytes. n must already be word-aligned.
func (b Block) SetSize(n int) {
	b.setHeader(uint64(n) | (b.header() & uint64(flagMask)))
}

// Used reports whether the block is currently handed out to a caller.
func (b Block) Used() bool { return b.header()&flagUsed != 0 }

// SetUsed marks the block used or free.
//
// Transitioning to used also clears the stale free-list link word left in
// the payload from a previous time this block was free, so later inspection
// of those bytes (e.g. by a test) never observes a leftover link value.
func (b Block) SetUsed(used bool) {
	h := b.header()
	if used {
		h |= flagUsed
	} else {
		h &^= flagUsed
	}
	b.setHeader(h)

	if used {
		b.clearLinks()
	}
}

// IsLast reports whether this is the highest-addressed block in the arena.
func (b Block) IsLast() bool { return b.header()&flagLast != 0 }

// SetLast sets or clears the terminal flag.
func (b Block) SetLast(last bool) {
	h := b.header()
	if last {
		h |= flagLast
	} else {
		h &^= flagLast
	}
	b.setHeader(h)
}

// Payload returns the address immediately after the header.
func (b Block) Payload() Addr { return b.addr.Add(headerSize) }

// BlockOf returns the block owning a payload address previously returned by
// [Heap.Allocate]. Callers never see the header directly; this is the
// inverse of [Block.Payload].
func BlockOf(payload Addr) Block { return Block{payload.Add(-headerSize)} }

// NextByAddress returns the address-order successor of b, or the zero Addr
// if b [Block.IsLast].
func (b Block) NextByAddress() Addr {
	if b.IsLast() {
		return 0
	}

	return b.addr.Add(headerSize + b.Size())
}

// clearLinks zeros the link word a free-list implementation may have stored
// in this block's payload while it was free. Every Index shape in this
// package (both the singly-linked explicit list and the segregated buckets)
// threads its chain through a single next-pointer word, so one word is
// always enough: the minimum payload Align ever produces is one full word,
// so this never reaches past the block's own payload into its neighbour.
func (b Block) clearLinks() {
	zero(b.Payload(), WordSize)
}

// linkNext/setLinkNext give free-list implementations a place to store an
// intrusive next-pointer: it physically aliases the first word of an
// otherwise-unused free payload (spec's "Intrusive links in free payload"
// design). Callers must only use this while the block is free.
func (b Block) linkNext() Addr     { return loadAddr(b.Payload()) }
func (b Block) setLinkNext(a Addr) { storeAddr(b.Payload(), a) }
