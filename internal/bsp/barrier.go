// Package bsp provides the bulk-synchronous-parallel primitives the core
// algorithm is built on: a reusable cyclic barrier realizing spec.md's
// injected barrier() call, and a broadcast helper realizing broadcast_int().
// Ranks are goroutines rather than OS processes; the barrier is therefore an
// in-process rendezvous rather than a collective network operation, but it
// provides the same release/acquire publishing guarantee the spec requires.
package bsp

import (
	"sync"

	channerics "github.com/niceyeti/channerics/channels"
)

// Barrier is a cyclic rendezvous point for a fixed number of parties. Wait
// blocks the calling goroutine until every party has called Wait, then
// releases all of them and resets for the next phase. It is the BSP barrier
// spec.md §5 requires to close every phase.
//
// A Barrier also carries an abort flag: any party may call Abort to make
// every other party's next Wait return the abort error instead of blocking
// forever, realizing spec.md §7's "every error is fatal to the whole job"
// disposition without needing a supervisor goroutine.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	gen     uint64
	aborted error
}

// NewBarrier returns a barrier for the given number of parties. parties must
// be >= 1.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// ErrAborted is returned by Wait once any party has called Abort.
type ErrAborted struct {
	Cause error
}

func (e *ErrAborted) Error() string {
	if e.Cause != nil {
		return "bsp: barrier aborted: " + e.Cause.Error()
	}
	return "bsp: barrier aborted"
}

func (e *ErrAborted) Unwrap() error { return e.Cause }

// Wait blocks until all parties have called Wait for the current generation,
// then releases them all. It returns a non-nil error if any party called
// Abort before or during the wait.
func (b *Barrier) Wait() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.aborted != nil {
		return b.aborted
	}

	gen := b.gen
	b.waiting++
	if b.waiting == b.parties {
		// Last party to arrive releases the generation and resets.
		b.waiting = 0
		b.gen++
		b.cond.Broadcast()
		return nil
	}

	for gen == b.gen && b.aborted == nil {
		b.cond.Wait()
	}
	return b.aborted
}

// Abort marks the barrier as failed; every party blocked in or subsequently
// calling Wait observes cause (wrapped in ErrAborted) instead of proceeding.
func (b *Barrier) Abort(cause error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.aborted == nil {
		b.aborted = &ErrAborted{Cause: cause}
	}
	b.cond.Broadcast()
}

// BroadcastInt fans a single value, sent once by root, out to n receiver
// channels — the Go realization of spec.md §6's broadcast_int(value, root).
// done cancels the fan-out early (e.g. on orchestrator context cancellation).
func BroadcastInt(done <-chan struct{}, value int, n int) []<-chan int {
	src := make(chan int, 1)
	src <- value
	close(src)
	return channerics.Broadcast(done, src, n)
}
