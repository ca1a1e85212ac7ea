package metsysd

import (
	"context"
	"io"
	"os/exec"
	"sync"
)

// Reloader asks the service manager to re-read unit files.
//
// Spawn starts the reload and returns immediately. The returned process is
// reaped in the background; callers that need the outcome call Wait.
type Reloader interface {
	Spawn(ctx context.Context, scope Scope) (*ReloadProcess, error)
}

// SystemctlReloader runs `systemctl [--user] daemon-reload`
type SystemctlReloader struct {
	// SystemctlPath is the path to the systemctl binary
	SystemctlPath string
	// Stdout and Stderr receive the child's output; nil discards it
	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemctlReloader creates a reloader for the given systemctl binary
func NewSystemctlReloader(systemctlPath string) *SystemctlReloader {
	if systemctlPath == "" {
		systemctlPath = DefaultSystemctlPath
	}
	return &SystemctlReloader{SystemctlPath: systemctlPath}
}

// ReloadArgs returns the systemctl arguments for a daemon reload in scope
func ReloadArgs(scope Scope) []string {
	if scope == ScopeUser {
		return []string{"--user", "daemon-reload"}
	}
	return []string{"daemon-reload"}
}

// Spawn starts systemctl without waiting for it. The process is not bound to
// ctx: cancelling ctx after Spawn returns does not stop the reload.
func (r *SystemctlReloader) Spawn(ctx context.Context, scope Scope) (*ReloadProcess, error) {
	args := ReloadArgs(scope)
	if err := ctx.Err(); err != nil {
		return nil, &OpError{Op: OpReload, Path: r.SystemctlPath, Kind: ErrReloadSpawn, Err: err}
	}

	cmd := exec.Command(r.SystemctlPath, args...) //nolint:gosec // path is operator supplied
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return nil, &OpError{Op: OpReload, Path: r.SystemctlPath, Kind: ErrReloadSpawn, Err: err}
	}

	p := &ReloadProcess{
		args: append([]string{r.SystemctlPath}, args...),
		pid:  cmd.Process.Pid,
		done: make(chan struct{}),
	}
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	}()

	return p, nil
}

// ReloadProcess is a spawned reload whose completion is not observed unless
// Wait is called
type ReloadProcess struct {
	args []string
	pid  int
	done chan struct{}

	mu  sync.Mutex
	err error
}

// Args returns the full command line of the reload
func (p *ReloadProcess) Args() []string {
	return append([]string(nil), p.args...)
}

// Pid returns the process id of the reload
func (p *ReloadProcess) Pid() int {
	return p.pid
}

// Done is closed once the reload process has exited
func (p *ReloadProcess) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the reload exits or ctx is done. It returns the exit
// error of systemctl, or ctx.Err() if ctx ends first.
func (p *ReloadProcess) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
