package metsysd

import "time"

// DefaultWatchDebounce coalesces the burst of events an editor save produces
const DefaultWatchDebounce = 100 * time.Millisecond

// WatchEvent reports a settled change of the watched file, or a watcher error
type WatchEvent struct {
	Path string
	Err  error
}

// WatchCleanupFunc stops a watch and waits for its goroutines to exit
type WatchCleanupFunc func() error
