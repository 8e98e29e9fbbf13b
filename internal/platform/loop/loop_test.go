package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func runLoop(t *testing.T) (*Loop, func()) {
	t.Helper()
	l := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(done)
	}()
	return l, func() {
		cancel()
		<-done
	}
}

func TestCallRunsOnLoopAndReturnsError(t *testing.T) {
	t.Parallel()
	l, stop := runLoop(t)
	defer stop()

	want := errors.New("boom")
	if err := l.Call(context.Background(), func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestHandlersRunOneAtATime(t *testing.T) {
	t.Parallel()
	l, stop := runLoop(t)
	defer stop()

	var inFlight, maxInFlight int32
	results := make(chan struct{}, 20)
	for i := 0; i < 20; i++ {
		l.Post(func() {
			n := atomic.AddInt32(&inFlight, 1)
			if n > atomic.LoadInt32(&maxInFlight) {
				atomic.StoreInt32(&maxInFlight, n)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			results <- struct{}{}
		})
	}
	for i := 0; i < 20; i++ {
		<-results
	}
	if maxInFlight != 1 {
		t.Fatalf("expected serialized handlers, saw %d concurrent", maxInFlight)
	}
}

func TestStoppedTimerDropsQueuedTick(t *testing.T) {
	t.Parallel()
	l := New(4)
	var fired int32
	timer := l.After(time.Millisecond, func() { atomic.AddInt32(&fired, 1) })

	// Let the tick reach the queue while the loop is not yet draining it.
	time.Sleep(20 * time.Millisecond)
	timer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(done)
	}()
	if err := l.Call(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("call: %v", err)
	}
	cancel()
	<-done
	if fired != 0 {
		t.Fatalf("expected stale tick to be dropped, fired %d", fired)
	}
}

func TestEveryRepeatsUntilStopped(t *testing.T) {
	t.Parallel()
	l, stop := runLoop(t)
	defer stop()

	ticks := make(chan struct{}, 10)
	var timer *Timer
	count := 0
	err := l.Call(context.Background(), func() error {
		timer = l.Every(2*time.Millisecond, func() {
			count++
			if count == 3 {
				timer.Stop()
			}
			ticks <- struct{}{}
		})
		return nil
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for tick %d", i+1)
		}
	}
	time.Sleep(20 * time.Millisecond)
	var final int
	_ = l.Call(context.Background(), func() error { final = count; return nil })
	if final != 3 {
		t.Fatalf("expected exactly 3 ticks, got %d", final)
	}
	if l.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", l.Pending())
	}
}

func TestCloseCancelsTimersAndRejectsWork(t *testing.T) {
	t.Parallel()
	l := New(4)
	l.After(time.Hour, func() {})
	l.Every(time.Hour, func() {})
	if l.Pending() != 2 {
		t.Fatalf("expected 2 pending timers, got %d", l.Pending())
	}
	l.Close()
	l.Close()
	if l.Pending() != 0 {
		t.Fatalf("expected timers cleared on close")
	}
	if l.Post(func() {}) {
		t.Fatalf("post after close must fail")
	}
	if err := l.Call(context.Background(), func() error { return nil }); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if tm := l.After(time.Millisecond, func() {}); tm == nil {
		t.Fatalf("after on closed loop should return a stopped timer")
	}
}
