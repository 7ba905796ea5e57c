//go:build go1.22

package heap

// FreeList is an [Index] realised as a single singly-linked free list.
//
// Links are threaded through the free payload (spec's "Intrusive links in
// free payload" design): a free block's first word holds the address of the
// next free block. It is overwritten by caller data once the block is
// handed out again, and re-established on [FreeList.Insert]. Insertion is
// at the head and is O(1); removal requires an O(n) scan of the list to
// find b's predecessor, since there is no backward link (the same trade-off
// spec.md §3 describes for the segregated-bucket shape).
type FreeList struct {
	policy FitPolicy
	head   Block
	cursor Block // NextFit resume point; zero means "start at head"
}

// NewFreeList returns an empty FreeList using the given fit policy.
func NewFreeList(policy FitPolicy) *FreeList {
	return &FreeList{policy: policy}
}

// Insert places b at the head of the list.
func (l *FreeList) Insert(b Block) {
	b.setLinkNext(l.head.addr)
	l.head = b
}

// Remove unlinks b from the list.
func (l *FreeList) Remove(b Block) {
	if l.head.addr == b.addr {
		l.head = BlockAt(b.linkNext())
	} else {
		for cur := l.head; cur.Valid(); cur = BlockAt(cur.linkNext()) {
			next := BlockAt(cur.linkNext())
			if next.addr == b.addr {
				cur.setLinkNext(b.linkNext())

				break
			}
		}
	}

	if l.cursor.addr == b.addr {
		l.cursor = BlockAt(b.linkNext())
	}
}

// Find returns a block per the configured [FitPolicy].
func (l *FreeList) Find(size int) Block {
	switch l.policy {
	case BestFit:
		return l.findBestFit(size)
	case NextFit:
		return l.findNextFit(size)
	default:
		return l.findFirstFit(size)
	}
}

func (l *FreeList) findFirstFit(size int) Block {
	for b := l.head; b.Valid(); b = BlockAt(b.linkNext()) {
		if b.Size() >= size {
			return b
		}
	}

	return Block{}
}

func (l *FreeList) findNextFit(size int) Block {
	start := l.cursor
	if !start.Valid() {
		start = l.head
	}
	if !start.Valid() {
		return Block{}
	}

	b := start
	for {
		if b.Size() >= size {
			l.cursor = b
			return b
		}

		next := BlockAt(b.linkNext())
		if !next.Valid() {
			next = l.head
		}

		if next.addr == start.addr {
			return Block{}
		}

		b = next
	}
}

func (l *FreeList) findBestFit(size int) Block {
	var best Block

	for b := l.head; b.Valid(); b = BlockAt(b.linkNext()) {
		s := b.Size()
		if s == size {
			return b
		}

		if s > size && (!best.Valid() || s < best.Size()) {
			best = b
		}
	}

	return best
}

// Clear empties the list.
func (l *FreeList) Clear() {
	l.head = Block{}
	l.cursor = Block{}
}
