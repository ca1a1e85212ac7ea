//go:build linux || darwin

package metsysd

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// WatchFile emits an event each time path is written, created or replaced.
// The parent directory is watched so that atomic rename-over saves are seen.
// The channel is closed after cleanup or when ctx is done.
func WatchFile(ctx context.Context, path string, debounce time.Duration) (<-chan WatchEvent, WatchCleanupFunc, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, &OpError{Op: OpUnknown, Path: path, Err: err}
	}
	dir := filepath.Dir(abs)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &OpError{Op: OpUnknown, Path: dir, Err: err}
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, &OpError{Op: OpUnknown, Path: dir, Err: err}
	}

	ch := make(chan WatchEvent, 10)
	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	var (
		mu        sync.Mutex
		debouncer *time.Timer
	)

	send := func(ev WatchEvent) {
		if sctx.IsStopping() {
			return
		}
		select {
		case ch <- ev:
		case <-sctx.Stopping():
		}
	}

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	sctx.Go(func(sctx *stopper.Context) error {
		sctx.Defer(func() {
			mu.Lock()
			if debouncer != nil {
				debouncer.Stop()
			}
			mu.Unlock()
		})

		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				mu.Lock()
				if debouncer != nil {
					debouncer.Stop()
				}
				debouncer = time.AfterFunc(debounce, func() {
					// Tracked by the stopper so the channel is not closed mid-send.
					sctx.Go(func(*stopper.Context) error {
						send(WatchEvent{Path: abs})
						return nil
					})
				})
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					send(WatchEvent{Path: abs, Err: err})
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}
