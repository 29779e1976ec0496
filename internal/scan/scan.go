// Package scan implements C4, the Blelloch-style exclusive max-scan: given a
// shared vector and a prefix length n, it rewrites the first n elements in
// place so that element i holds the max of the original elements strictly
// before it (identity -math.MaxFloat32 at i=0). It is used both directly, in
// the tree regime, and as the inner length-P scan the block driver (C5)
// calls on its per-rank block maxima.
//
// The up-sweep/down-sweep/rank-activity-predicate structure below follows
// spec.md §4.4 literally, including its handling of n not a power of two
// (padding is logical: out-of-range reads are treated as identity) and the
// identity-injection step at the tree root, which spec.md §9 notes variant
// #2 of the original source got wrong by omitting the down-sweep's
// out-of-range guard — this implementation keeps the padded region entirely
// internal so no such guard is ever needed.
package scan

import (
	"fmt"
	"math"
	"sync"

	"github.com/xstupi00/line-of-sight/internal/atomicfloat"
	"github.com/xstupi00/line-of-sight/internal/bsp"
)

// Identity is the scan's neutral element. It must be this concrete value
// (not an abstract sentinel, not 0, not NaN) per spec.md §9: max(Identity, x)
// must equal x for every x the kernel ever produces.
const Identity float32 = -math.MaxFloat32

// Run performs an in-place exclusive max-scan over m[0:n], leaving the rest
// of m untouched. The "ranks" spec.md describes (active when r mod 2^d==0)
// are realized here as goroutines local to this call, one per pair-index in
// the conceptual next-power-of-two padding; this keeps Run self-contained
// regardless of how many physical worker ranks the orchestrator is using for
// the surrounding phase, which spec.md §9 explicitly permits ("the
// rank-activity predicate... is simpler than maintaining an explicit set").
func Run(m *atomicfloat.Vector, n int) error {
	if n <= 0 {
		return fmt.Errorf("scan: n must be > 0, got %d", n)
	}
	if n > m.Len() {
		return fmt.Errorf("scan: n (%d) exceeds vector length (%d)", n, m.Len())
	}

	nhat := nextPow2(n)
	buf := make([]float32, nhat)
	for i := 0; i < nhat; i++ {
		if i < n {
			buf[i] = m.Get(i)
		} else {
			buf[i] = Identity
		}
	}

	if nhat == 1 {
		// Up-sweep and down-sweep are both empty (no pairs to combine), but
		// identity injection still runs: M[0] is always the scan's identity.
		buf[0] = Identity
	} else {
		numRanks := nhat / 2
		numLevels := log2(nhat)
		barrier := bsp.NewBarrier(numRanks)

		var wg sync.WaitGroup
		wg.Add(numRanks)
		for r := 0; r < numRanks; r++ {
			r := r
			go func() {
				defer wg.Done()
				runRank(buf, r, numLevels, barrier)
			}()
		}
		wg.Wait()
	}

	for i := 0; i < n; i++ {
		m.Set(i, buf[i])
	}
	return nil
}

// runRank is the body one virtual rank executes: it knows its own pair index
// r and the total number of up/down-sweep levels, and participates in every
// iteration's barrier regardless of whether its activity predicate (r mod
// 2^d == 0) holds for that iteration.
func runRank(buf []float32, r int, numLevels int, barrier *bsp.Barrier) {
	for d := 0; d < numLevels; d++ {
		if r%(1<<uint(d)) == 0 {
			target := r*2 + (1 << uint(d+1)) - 1
			source := r*2 + (1 << uint(d)) - 1
			buf[target] = fmax(buf[source], buf[target])
		}
		barrier.Wait()
	}

	if r == 0 {
		buf[len(buf)-1] = Identity
	}
	barrier.Wait()

	for d := numLevels - 1; d >= 0; d-- {
		if r%(1<<uint(d)) == 0 {
			target := r*2 + (1 << uint(d+1)) - 1
			source := r*2 + (1 << uint(d)) - 1
			tmp := buf[source]
			buf[source] = buf[target]
			buf[target] = fmax(tmp, buf[target])
		}
		barrier.Wait()
	}
}

func fmax(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// nextPow2 computes ceil_pow2(n) for n >= 1: the smallest power of two >= n.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// log2 returns ceil(log2(n)) for a power-of-two n >= 1 (0 for n==1).
func log2(n int) int {
	l := 0
	for (1 << uint(l)) < n {
		l++
	}
	return l
}
