package bsp

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBarrierReleasesAllParties(t *testing.T) {
	Convey("Given a barrier with several parties", t, func(c C) {
		n := 8
		rounds := 5
		b := NewBarrier(n)

		var counter int64
		wg := sync.WaitGroup{}
		wg.Add(n)
		for r := 0; r < n; r++ {
			go func() {
				defer wg.Done()
				for round := 0; round < rounds; round++ {
					atomic.AddInt64(&counter, 1)
					c.So(b.Wait(), ShouldBeNil)
					// By the time Wait returns, every party incremented for this round.
					c.So(atomic.LoadInt64(&counter), ShouldBeGreaterThanOrEqualTo, int64(round+1)*int64(n))
				}
			}()
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("barrier rounds did not complete: possible deadlock")
		}
	})
}

func TestBarrierAbortReleasesWaiters(t *testing.T) {
	Convey("Given parties blocked in Wait", t, func() {
		b := NewBarrier(3)
		errs := make(chan error, 2)

		for i := 0; i < 2; i++ {
			go func() { errs <- b.Wait() }()
		}
		time.Sleep(20 * time.Millisecond)

		cause := errFake{}
		b.Abort(cause)

		for i := 0; i < 2; i++ {
			err := <-errs
			So(err, ShouldNotBeNil)
		}

		Convey("a late Wait also observes the abort", func() {
			So(b.Wait(), ShouldNotBeNil)
		})
	})
}

type errFake struct{}

func (errFake) Error() string { return "fake cause" }

func TestBroadcastIntFansOutToEveryReceiver(t *testing.T) {
	Convey("Given a value broadcast to several ranks", t, func() {
		done := make(chan struct{})
		defer close(done)

		n := 4
		chans := BroadcastInt(done, 42, n)
		So(len(chans), ShouldEqual, n)

		for _, ch := range chans {
			select {
			case v := <-ch:
				So(v, ShouldEqual, 42)
			case <-time.After(time.Second):
				t.Fatal("rank did not receive broadcast value")
			}
		}
	})
}
