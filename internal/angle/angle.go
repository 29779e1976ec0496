// Package angle implements C3, the angle kernel: for each point in a rank's
// block it computes the apparent elevation angle from the observer and seeds
// the prefix-max workspace with it.
package angle

import (
	"math"

	"github.com/xstupi00/line-of-sight/internal/shared"
)

// Identity is the scan's neutral element, spec.md's -FLT_MAX. It must never
// collide with a value atan can actually produce (atan's range is the open
// interval (-pi/2, pi/2), so any sufficiently negative sentinel works; this
// module uses the full negative range of float32 to match the original's
// literal -FLT_MAX exactly).
const Identity float32 = -math.MaxFloat32

// Compute fills A[i] and M[i] for i in [start, end) of reg, given the
// altitude sequence h (h[0] is the observer). It is the work one rank does
// in phase C3; the caller is responsible for calling this only for the
// indices the partition assigned to it and for closing the phase with a
// barrier before any reader relies on the result.
func Compute(reg *shared.Region, h []int, start, end int) {
	for i := start; i < end; i++ {
		if i == 0 {
			reg.A.Set(0, Identity)
			reg.M.Set(0, Identity)
			continue
		}
		delta := h[i] - h[0]
		// Division happens in float32, matching the single-precision semantics
		// spec.md requires; math.Atan itself only comes in float64, so the
		// quotient is promoted just for the call and the result truncated back.
		quotient := float32(delta) / float32(i)
		a := float32(math.Atan(float64(quotient)))
		reg.A.Set(i, a)
		reg.M.Set(i, a)
	}
}
