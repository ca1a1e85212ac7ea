package metsysd

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestOpError(t *testing.T) {
	err := &OpError{
		Op:   OpCreate,
		Path: "/srv/units",
		Kind: ErrFileCreate,
		Err:  fs.ErrPermission,
		Hint: createHint,
	}

	if !errors.Is(err, ErrFileCreate) {
		t.Error("errors.Is(err, ErrFileCreate) = false")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is(err, fs.ErrPermission) = false")
	}
	if errors.Is(err, ErrReloadSpawn) {
		t.Error("errors.Is(err, ErrReloadSpawn) = true")
	}

	msg := err.Error()
	for _, want := range []string{"create", "/srv/units", "permission denied", "--install-dir"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	var opErr *OpError
	if !errors.As(wrap(err), &opErr) || opErr.Op != OpCreate {
		t.Errorf("errors.As failed through wrapping")
	}
	if HintOf(wrap(err)) != createHint {
		t.Errorf("HintOf = %q", HintOf(wrap(err)))
	}
	if HintOf(errors.New("plain")) != "" {
		t.Error("HintOf plain error should be empty")
	}
}

func TestOperationString(t *testing.T) {
	tests := map[Operation]string{
		OpUnknown:     "unknown",
		OpResolve:     "resolve",
		OpMkdir:       "mkdir",
		OpCreate:      "create",
		OpReload:      "reload",
		Operation(99): "unknown",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("Operation(%d).String() = %q, want %q", int(op), got, want)
		}
	}
}

func wrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "outer: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
