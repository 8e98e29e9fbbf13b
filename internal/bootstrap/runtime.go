package bootstrap

import (
	"context"
	"errors"
	"fmt"

	trackerinadapter "quill/internal/modules/tracker/adapter/in"
	"quill/internal/platform/loop"
)

// Runtime is a started App: the loop goroutine, the vault watcher, the
// reminder schedule and the periodic planner nudge.
type Runtime struct {
	app    *App
	ctx    context.Context
	cancel context.CancelFunc
	loopCh chan error
	watch  chan error
	nudge  *loop.Timer
}

// Start runs the loop and arms the live timers. Call Stop to tear down.
func (a *App) Start(ctx context.Context) (*Runtime, error) {
	runCtx, cancel := context.WithCancel(context.Background())
	rt := &Runtime{
		app:    a,
		ctx:    runCtx,
		cancel: cancel,
		loopCh: make(chan error, 1),
		watch:  make(chan error, 1),
	}
	go func() { rt.loopCh <- a.Loop.Run(runCtx) }()

	err := a.Loop.Call(ctx, func() error {
		if status, err := a.Tracker.Recover(runCtx); err != nil {
			a.Logger.Warn("recover active session", "error", err)
		} else if status.State != "idle" {
			a.Logger.Info("resumed tracking", "state", status.State)
		}
		if err := a.Reminders.Start(runCtx); err != nil {
			return fmt.Errorf("start reminders: %w", err)
		}
		rt.nudge = a.Loop.Every(a.Config.NudgeInterval, func() {
			if _, err := a.Planner.ShowNudge(runCtx); err != nil {
				a.Logger.Warn("planner nudge", "error", err)
			}
		})
		return nil
	})
	if err != nil {
		cancel()
		<-rt.loopCh
		return nil, err
	}

	watcher := trackerinadapter.NewVaultWatcher(a.Config.VaultPath, a.Tracker, a.Loop.Post, a.Logger.Named("watcher"))
	go func() { rt.watch <- watcher.Run(runCtx) }()
	a.Logger.Debug("runtime started", "vault", a.Config.VaultPath, "poll", a.Config.PollInterval)
	return rt, nil
}

// Do runs fn on the loop so it never interleaves with a poll or a reminder.
func (r *Runtime) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.app.Loop.Call(ctx, func() error { return fn(r.ctx) })
}

// Stop cancels timers on the loop and waits for the background goroutines.
// The active session stays on disk and is recovered by the next Start.
func (r *Runtime) Stop(ctx context.Context) error {
	err := r.app.Loop.Call(ctx, func() error {
		r.nudge.Stop()
		r.app.Reminders.Stop()
		r.app.Tracker.Shutdown()
		return nil
	})
	if errors.Is(err, loop.ErrClosed) {
		err = nil
	}
	r.cancel()
	loopErr := <-r.loopCh
	watchErr := <-r.watch
	if err != nil {
		return err
	}
	if loopErr != nil && !errors.Is(loopErr, context.Canceled) {
		return loopErr
	}
	if watchErr != nil {
		r.app.Logger.Warn("vault watcher stopped", "error", watchErr)
	}
	return nil
}

// RunHeadless keeps the live timers running until ctx is cancelled.
func (a *App) RunHeadless(ctx context.Context) error {
	rt, err := a.Start(ctx)
	if err != nil {
		return err
	}
	<-ctx.Done()
	return rt.Stop(context.Background())
}
