// Package blockscan implements C5, the block scan driver used when there
// are fewer worker ranks than the tree scan's one-active-rank-per-pair
// assumption requires (P < ceil(N/2)). Each rank reduces its own block to a
// single maximum, those P maxima are exclusive-max-scanned with C4, and each
// rank then runs a cheap sequential exclusive scan over its own block seeded
// by the result.
package blockscan

import (
	"fmt"

	"github.com/xstupi00/line-of-sight/internal/atomicfloat"
	"github.com/xstupi00/line-of-sight/internal/partition"
	"github.com/xstupi00/line-of-sight/internal/scan"
)

// LocalMax computes sub_max[r] = max(a[i] : i in [start, end)), the first
// step of C5 that every rank runs over its own block before the barrier
// that precedes the length-P tree scan.
func LocalMax(a *atomicfloat.Vector, start, end int) (float32, error) {
	if end <= start {
		return 0, fmt.Errorf("blockscan: empty block [%d,%d)", start, end)
	}
	m := a.Get(start)
	for i := start + 1; i < end; i++ {
		if v := a.Get(i); v > m {
			m = v
		}
	}
	return m, nil
}

// ScanSubMax runs the length-P tree scan (C4) over the per-rank block
// maxima, turning sub_max into an exclusive max-prefix of block maxima: the
// offset each rank seeds its own local sequential scan with.
func ScanSubMax(subMax *atomicfloat.Vector) error {
	return scan.Run(subMax, subMax.Len())
}

// LocalExclusiveScan rewrites m's block [start,end) in place into an
// exclusive max-prefix, seeded by offset (the exclusive max-prefix of all
// earlier blocks, i.e. subMax[r] after ScanSubMax). It uses the two-variable
// prev/cur shuffle of spec.md §4.5 so that no cell is overwritten before it
// has been read.
func LocalExclusiveScan(m *atomicfloat.Vector, start, end int, offset float32) error {
	if end <= start {
		return fmt.Errorf("blockscan: empty block [%d,%d)", start, end)
	}

	prev := m.Get(start)
	m.Set(start, offset)
	for i := start + 1; i < end; i++ {
		cur := maxf(prev, m.Get(i-1))
		prev = m.Get(i)
		m.Set(i, cur)
	}
	return nil
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Run executes the full C5 algorithm over the shared M vector for the given
// partition: local reduce, length-P tree scan of the block maxima, then each
// rank's local sequential exclusive scan. It is a sequential driver — used
// directly by tests, and by the orchestrator's single designated rank for
// the block regime's scan phase, with the other ranks simply waiting at the
// surrounding phase barrier (see the scan-phase comment in orchestrator.Run).
func Run(m *atomicfloat.Vector, part partition.Partition) error {
	p := part.P()
	subMax := atomicfloat.NewVector(p, 0)

	for r := 0; r < p; r++ {
		v, err := LocalMax(m, part.Start[r], part.End(r))
		if err != nil {
			return err
		}
		subMax.Set(r, v)
	}

	if err := ScanSubMax(subMax); err != nil {
		return err
	}

	for r := 0; r < p; r++ {
		if err := LocalExclusiveScan(m, part.Start[r], part.End(r), subMax.Get(r)); err != nil {
			return err
		}
	}
	return nil
}
