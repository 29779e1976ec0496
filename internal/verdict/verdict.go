// Package verdict implements C6: deciding visibility for each point in a
// rank's block once the angle array and its exclusive max-prefix are both
// published. R[0], the observer, is never written here — it is the
// emitter's responsibility to render it, per spec.md §4.6.
package verdict

import "github.com/xstupi00/line-of-sight/internal/shared"

// Compute sets R[i] = A[i] > M[i] (strict; ties are not visible) for every i
// in [start, end) of reg, skipping i==0 if it falls in the range.
func Compute(reg *shared.Region, start, end int) {
	for i := start; i < end; i++ {
		if i == 0 {
			continue
		}
		reg.R[i] = reg.A.Get(i) > reg.M.Get(i)
	}
}
