// Package loop runs every timer callback and queued action on one goroutine,
// one handler at a time.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrClosed = errors.New("loop closed")

type Loop struct {
	queue chan func()

	mu     sync.Mutex
	timers map[*Timer]struct{}
	closed bool
	done   chan struct{}
}

func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		timers: map[*Timer]struct{}{},
		done:   make(chan struct{}),
	}
}

// Run drains the queue until ctx is cancelled or Close is called. All timers
// are stopped before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post enqueues fn. It reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call runs fn on the loop and waits for its result.
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if !l.Post(func() { result <- fn() }) {
		return ErrClosed
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

// After schedules a one-shot callback.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	t := &Timer{loop: l}
	if !l.track(t) {
		t.stopped.Store(true)
		return t
	}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Swap(true) {
				return
			}
			l.untrack(t)
			fn()
		})
	})
	t.mu.Unlock()
	return t
}

// Every schedules fn at a fixed interval until the timer is stopped.
func (l *Loop) Every(d time.Duration, fn func()) *Timer {
	t := &Timer{loop: l}
	if !l.track(t) {
		t.stopped.Store(true)
		return t
	}
	var arm func()
	arm = func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.stopped.Load() {
			return
		}
		t.timer = time.AfterFunc(d, func() {
			l.Post(func() {
				if t.stopped.Load() {
					return
				}
				fn()
				arm()
			})
		})
	}
	arm()
	return t
}

// Close stops every pending timer and releases Run. It is safe to call more
// than once.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	timers := make([]*Timer, 0, len(l.timers))
	for t := range l.timers {
		timers = append(timers, t)
	}
	l.timers = map[*Timer]struct{}{}
	close(l.done)
	l.mu.Unlock()

	for _, t := range timers {
		t.halt()
	}
}

// Pending returns the number of live timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *Loop) track(t *Timer) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.timers[t] = struct{}{}
	return true
}

func (l *Loop) untrack(t *Timer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

// Timer is a cancellable callback registration. A tick that was already
// queued when Stop ran is dropped when it reaches the front of the queue.
type Timer struct {
	loop    *Loop
	stopped atomic.Bool
	mu      sync.Mutex
	timer   *time.Timer
}

func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.halt()
	if t.loop != nil {
		t.loop.untrack(t)
	}
}

func (t *Timer) halt() {
	t.stopped.Store(true)
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.mu.Unlock()
}
