package search

import (
	"math"
	"sync"
	"sync/atomic"
)

// incumbent is the best complete assignment found so far, shared by all
// workers. The cost is published through an atomic so the hot pruning path
// never takes the lock; the lock serializes improvements.
//
// An offer replaces the incumbent only when its cost is strictly lower, or
// equal with a lexicographically smaller assignment signature. Together
// with strictly-greater pruning this makes the final incumbent the minimum
// of all feasible leaves under a total order, independent of how workers
// interleave.
type incumbent struct {
	mu sync.Mutex

	found    atomic.Bool
	costBits atomic.Uint64

	cost   float64
	sig    []uint64
	assign []bool
}

func newIncumbent() *incumbent {
	return &incumbent{}
}

// bound returns the current best cost and whether one exists.
func (b *incumbent) bound() (float64, bool) {
	if !b.found.Load() {
		return 0, false
	}
	return math.Float64frombits(b.costBits.Load()), true
}

// offer proposes a complete assignment; it reports whether the incumbent
// improved.
func (b *incumbent) offer(cost float64, val []int8) bool {
	sig := packSignature(val)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.found.Load() {
		if cost > b.cost || (cost == b.cost && !signatureLess(sig, b.sig)) {
			return false
		}
	}
	b.cost = cost
	b.sig = sig
	b.assign = make([]bool, len(val))
	for i, v := range val {
		b.assign[i] = v == boundTrue
	}
	b.costBits.Store(math.Float64bits(cost))
	b.found.Store(true)
	return true
}

// snapshot returns a copy of the incumbent assignment, or nil when none
// has been found.
func (b *incumbent) snapshot() (float64, []bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.found.Load() {
		return 0, nil
	}
	out := make([]bool, len(b.assign))
	copy(out, b.assign)
	return b.cost, out
}

// packSignature encodes an assignment as big-endian bit words so that
// word-wise comparison matches lexicographic comparison in variable order,
// with false ordered before true.
func packSignature(val []int8) []uint64 {
	sig := make([]uint64, (len(val)+63)/64)
	for i, v := range val {
		if v == boundTrue {
			sig[i/64] |= 1 << (63 - uint(i%64))
		}
	}
	return sig
}

func signatureLess(a, b []uint64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
