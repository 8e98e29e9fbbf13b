package out

import (
	"sync"
	"time"

	trackerout "quill/internal/modules/tracker/port/out"
	"quill/internal/platform/loop"
)

// LoopScheduler runs poll ticks on the dispatcher loop. At most one poll
// timer is armed at a time.
type LoopScheduler struct {
	loop *loop.Loop

	mu    sync.Mutex
	timer *loop.Timer
}

func NewLoopScheduler(l *loop.Loop) *LoopScheduler {
	return &LoopScheduler{loop: l}
}

var _ trackerout.PollScheduler = (*LoopScheduler)(nil)

func (s *LoopScheduler) Start(interval time.Duration, tick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.loop.Every(interval, tick)
}

func (s *LoopScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *LoopScheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// NopScheduler is used by one-shot CLI commands, where polling happens on
// explicit `session poll` calls instead of a timer.
type NopScheduler struct{}

func (NopScheduler) Start(time.Duration, func()) {}
func (NopScheduler) Stop()                       {}
