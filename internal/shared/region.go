// Package shared implements C2, the shared region manager: the three
// co-indexed N-element arrays (A angles, M prefix-max workspace, R
// visibility) that every rank may read and exactly one rank may write per
// index. In a single address space this reduces to plain slice allocation,
// but Acquire/Release are kept as explicit steps — mirroring spec.md §4.2's
// lifecycle language — so the contract (owner-per-index writes, barrier-
// published reads) stays visible at the call site rather than being an
// implicit property of a bare slice.
package shared

import "github.com/xstupi00/line-of-sight/internal/atomicfloat"

// Region holds the angle, prefix-max, and visibility arrays for N points.
// A and M are lock-free atomic float32 vectors (concurrent cross-rank reads
// during the scan phases require this); R is a plain bool slice because,
// per spec.md I3, every index of R is written exactly once, after the scan
// phase has already published M via a barrier.
type Region struct {
	N int
	A *atomicfloat.Vector
	M *atomicfloat.Vector
	R []bool
}

// Acquire allocates a Region for n points. A and M are left undefined until
// the angle kernel seeds them (C3); R is zero-valued (false).
func Acquire(n int) *Region {
	return &Region{
		N: n,
		A: atomicfloat.NewVector(n, 0),
		M: atomicfloat.NewVector(n, 0),
		R: make([]bool, n),
	}
}

// Release drops the region's backing storage. It exists to pair with
// Acquire per spec.md §4.2's lifecycle, even though in-process garbage
// collection means this is not strictly required for correctness.
func (reg *Region) Release() {
	reg.A = nil
	reg.M = nil
	reg.R = nil
}
