package config

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
)

// AcquireSingleInstance takes a non-blocking exclusive lock on
// tiny.lock next to the executable. ok is false when another process
// already holds it; callers should then exit 0, matching the
// documented "already running" quirk rather than treating it as an
// error.
func AcquireSingleInstance() (lock *flock.Flock, ok bool, err error) {
	path, err := LockPath()
	if err != nil {
		return nil, false, err
	}
	lock = flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire single-instance lock: %w", err)
	}
	return lock, locked, nil
}

// InstallSignalHandler returns a context cancelled on SIGINT, the
// cooperative shutdown signal the tick orchestrator polls between
// ticks.
func InstallSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT)
}
