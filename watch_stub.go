//go:build !linux && !darwin

package metsysd

import (
	"context"
	"errors"
	"time"
)

// WatchFile is not supported on this platform
func WatchFile(_ context.Context, path string, _ time.Duration) (<-chan WatchEvent, WatchCleanupFunc, error) {
	return nil, nil, &OpError{Op: OpUnknown, Path: path, Err: errors.New("file watching not supported on this platform")}
}
