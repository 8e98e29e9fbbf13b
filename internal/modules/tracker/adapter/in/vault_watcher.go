package in

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	hclog "github.com/hashicorp/go-hclog"

	trackerin "quill/internal/modules/tracker/port/in"
)

const watchThrottle = 150 * time.Millisecond

// VaultWatcher turns note writes into immediate polls so progress updates
// without waiting for the next tick. Polls are posted to the dispatcher
// through post and only run when a changed file is tracked.
type VaultWatcher struct {
	vaultPath string
	usecase   trackerin.Usecase
	post      func(func()) bool
	logger    hclog.Logger

	// ready, when set, runs once every existing directory is watched.
	ready func()
}

func NewVaultWatcher(vaultPath string, usecase trackerin.Usecase, post func(func()) bool, logger hclog.Logger) *VaultWatcher {
	return &VaultWatcher{vaultPath: vaultPath, usecase: usecase, post: post, logger: logger}
}

// Run watches until ctx is cancelled.
func (w *VaultWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := collectDirs(w.vaultPath)
	if err != nil {
		return fmt.Errorf("enumerate vault directories: %w", err)
	}
	watched := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = struct{}{}
	}
	if w.ready != nil {
		w.ready()
	}

	throttle := newPathThrottle(watchThrottle)
	defer throttle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("vault watcher error", "error", err)
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() && !hidden(w.vaultPath, evt.Name) {
					dir := filepath.Clean(evt.Name)
					if _, found := watched[dir]; !found {
						if err := watcher.Add(dir); err != nil {
							w.logger.Warn("watch new directory", "dir", dir, "error", err)
						} else {
							watched[dir] = struct{}{}
						}
					}
					continue
				}
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(evt.Name), ".md") {
				continue
			}
			throttle.Enqueue(evt.Name, w.dispatch)
		}
	}
}

func (w *VaultWatcher) dispatch(changed map[string]struct{}) {
	w.post(func() {
		ctx := context.Background()
		status, err := w.usecase.Status(ctx)
		if err != nil || status.State != "ongoing" {
			return
		}
		for _, file := range status.Files {
			if _, ok := changed[w.absolute(file)]; ok {
				if _, err := w.usecase.Poll(ctx); err != nil {
					w.logger.Warn("poll after write", "error", err)
				}
				return
			}
		}
	})
}

func (w *VaultWatcher) absolute(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(w.vaultPath, filepath.FromSlash(path))
}

// collectDirs returns the vault root and every non-hidden directory below it.
func collectDirs(base string) ([]string, error) {
	dirs := []string{filepath.Clean(base)}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() || path == base {
			return nil
		}
		if hidden(base, path) {
			return filepath.SkipDir
		}
		dirs = append(dirs, filepath.Clean(path))
		return nil
	})
	return dirs, err
}

func hidden(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}

// pathThrottle coalesces bursts of writes into one dispatch per delay.
type pathThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newPathThrottle(delay time.Duration) *pathThrottle {
	return &pathThrottle{delay: delay, pending: map[string]struct{}{}}
}

func (t *pathThrottle) Enqueue(path string, flush func(map[string]struct{})) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[filepath.Clean(path)] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.mu.Lock()
			pending := t.pending
			t.pending = map[string]struct{}{}
			t.timer = nil
			t.mu.Unlock()
			flush(pending)
		})
	}
}

func (t *pathThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
