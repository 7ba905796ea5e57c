//go:build go1.22

package heap

import "github.com/go-heap/heapalloc/internal/debug"

// Arena owns the contiguous heap region managed by the engine. It grows the
// region via a [Break] and records the initial break so that [Arena.Reset]
// can restore it.
//
// A zero Arena lazily initialises its [Break] to a default-capacity
// [reservedBreak] on first growth.
type Arena struct {
	dev     Break
	initial Addr
	hasInit bool
}

// NewArena returns an Arena backed by the given [Break]. A nil dev causes
// the Arena to lazily create a default-capacity break on first use.
func NewArena(dev Break) *Arena {
	return &Arena{dev: dev}
}

func (a *Arena) device() Break {
	if a.dev == nil {
		a.dev = NewBreak(defaultCapacity)
	}

	return a.dev
}

// Grow advances the break by n bytes and returns the address at which the
// new region begins. It fails with [ErrOutOfMemory] if the underlying break
// primitive refuses growth; the break is left unchanged on failure.
func (a *Arena) Grow(n int) (Addr, error) {
	dev := a.device()

	if !a.hasInit {
		a.initial = dev.Current()
		a.hasInit = true
	}

	at, err := dev.Grow(n)
	if err != nil {
		return 0, err
	}

	debug.Log(nil, "arena.grow", "%v + %d", at, n)

	return at, nil
}

// Reset restores the break to the initial recorded value. After Reset, all
// outstanding payload pointers handed out by this Arena become invalid; the
// engine does not detect use-after-reset.
func (a *Arena) Reset() {
	if !a.hasInit {
		return
	}

	a.device().Reset()
	a.hasInit = false
}

// Initial returns the break address captured on first growth, or zero if
// the Arena has never grown.
func (a *Arena) Initial() Addr { return a.initial }

// Current returns the current break address.
func (a *Arena) Current() Addr { return a.device().Current() }

// Size returns the number of bytes between the initial and current break —
// the sum of every block's header and payload in the arena.
func (a *Arena) Size() int {
	if !a.hasInit {
		return 0
	}

	return a.Current().Sub(a.initial)
}
