package out

import (
	"time"

	reminderout "quill/internal/modules/reminder/port/out"
	"quill/internal/platform/loop"
)

// LoopTimers runs reminder callbacks on the dispatcher loop.
type LoopTimers struct {
	loop *loop.Loop
}

func NewLoopTimers(l *loop.Loop) reminderout.Timers {
	return LoopTimers{loop: l}
}

func (t LoopTimers) After(d time.Duration, fn func()) reminderout.Timer {
	return t.loop.After(d, fn)
}
