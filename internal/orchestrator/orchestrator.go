// Package orchestrator implements C7: it runs the phase sequence of
// spec.md §4.7 over P rank goroutines supervised by an errgroup.Group, in
// the same first-error-cancels-everyone style the teacher's
// server/fastview/client.go uses for its websocket read/write goroutines.
// Every phase closes with a barrier; on any rank's error, the barrier is
// aborted and the group's context is cancelled so every other rank observes
// the failure at its next barrier wait, realizing spec.md §7's "every error
// is fatal to the whole job, reported via the next barrier."
package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/xstupi00/line-of-sight/internal/angle"
	"github.com/xstupi00/line-of-sight/internal/blockscan"
	"github.com/xstupi00/line-of-sight/internal/bsp"
	"github.com/xstupi00/line-of-sight/internal/partition"
	"github.com/xstupi00/line-of-sight/internal/scan"
	"github.com/xstupi00/line-of-sight/internal/shared"
	"github.com/xstupi00/line-of-sight/internal/verdict"
)

// Snapshot is a point-in-time view of the shared arrays, published after a
// phase barrier closes, for the optional live progress server. It is purely
// observational: nothing downstream of Snapshot feeds back into the scan.
type Snapshot struct {
	Phase string
	A     []float32
	M     []float32
	R     []bool
}

// Result is the orchestrator's output: the visibility vector and its
// length, ready for the emitter.
type Result struct {
	N int
	R []bool
}

// Run executes phases 1-6 of spec.md §4.7 over p rank goroutines: N
// broadcast, partition, angle kernel, regime-selected scan, verdict kernel.
// progress may be nil; if non-nil, rank 0 publishes a Snapshot after every
// barrier-closed phase, dropping the send rather than blocking if no one is
// receiving.
func Run(ctx context.Context, h []int, p int, progress chan<- Snapshot) (Result, error) {
	if len(h) < 2 {
		return Result{}, fmt.Errorf("orchestrator: need at least 2 altitudes, got %d", len(h))
	}
	if p <= 0 {
		return Result{}, fmt.Errorf("orchestrator: p must be > 0, got %d", p)
	}

	n := len(h)
	group, groupCtx := errgroup.WithContext(ctx)

	broadcastN := bsp.BroadcastInt(groupCtx.Done(), n, p)
	part, err := partition.New(n, p)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: partition: %w", err)
	}

	reg := shared.Acquire(n)
	defer reg.Release()

	treeRegime := p >= ceilDiv(n, 2)

	phaseBarrier := bsp.NewBarrier(p)

	for r := 0; r < p; r++ {
		r := r
		group.Go(func() error {
			select {
			case _, ok := <-broadcastN[r]:
				if !ok {
					err := fmt.Errorf("rank %d: N broadcast aborted", r)
					phaseBarrier.Abort(err)
					return err
				}
			case <-groupCtx.Done():
				phaseBarrier.Abort(groupCtx.Err())
				return groupCtx.Err()
			}

			start, end := part.Start[r], part.End(r)
			angle.Compute(reg, h, start, end)
			if err := phaseBarrier.Wait(); err != nil {
				return fmt.Errorf("rank %d: %w", r, err)
			}
			if r == 0 {
				publish(progress, "angle", reg)
			}

			if treeRegime {
				// C4 runs directly on M; exactly one rank drives it since
				// scan.Run already fans its own internal work out across
				// goroutines (see scan.go's doc comment). Every other rank
				// simply waits at the same phase barrier, which is the
				// rank-activity predicate of spec.md §4.4 collapsed onto a
				// single physical driver — an accepted simplification per
				// spec.md §9 ("either is acceptable as long as the
				// per-iteration barrier is honoured").
				if r == 0 {
					if err := scan.Run(reg.M, n); err != nil {
						phaseBarrier.Abort(err)
						return fmt.Errorf("rank %d: tree scan: %w", r, err)
					}
				}
			} else {
				if r == 0 {
					if err := blockscan.Run(reg.M, part); err != nil {
						phaseBarrier.Abort(err)
						return fmt.Errorf("rank %d: block scan: %w", r, err)
					}
				}
			}
			if err := phaseBarrier.Wait(); err != nil {
				return fmt.Errorf("rank %d: %w", r, err)
			}
			if r == 0 {
				publish(progress, "scan", reg)
			}

			verdict.Compute(reg, start, end)
			if err := phaseBarrier.Wait(); err != nil {
				return fmt.Errorf("rank %d: %w", r, err)
			}
			if r == 0 {
				publish(progress, "verdict", reg)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	return Result{N: n, R: reg.R}, nil
}

// publish sends a snapshot to progress without blocking the scan if no
// consumer is reading; only meaningful when progress != nil.
func publish(progress chan<- Snapshot, phase string, reg *shared.Region) {
	if progress == nil {
		return
	}
	snap := Snapshot{
		Phase: phase,
		A:     reg.A.Snapshot(),
		M:     reg.M.Snapshot(),
		R:     append([]bool(nil), reg.R...),
	}
	select {
	case progress <- snap:
	default:
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
