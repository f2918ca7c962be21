// Package dolphin gives bounded access to the emulated memory of a
// running Dolphin process, either through its shared memory segment or
// through cross-process reads and writes.
package dolphin

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrPermission indicates the target process or its memory cannot be
	// opened by the current user.
	ErrPermission = errors.New("dolphin: permission denied")

	// ErrProcessNotFound indicates there is no process with the given id.
	ErrProcessNotFound = errors.New("dolphin: process not found")

	// ErrMemoryNotFound indicates the process does not expose the
	// emulated memory regions we expect (not Dolphin, or no game running).
	ErrMemoryNotFound = errors.New("dolphin: emulated memory not found")

	// ErrMemoryUninitialized indicates the shared segment exists but is
	// too small to hold MEM1.
	ErrMemoryUninitialized = errors.New("dolphin: emulated memory is not initialized")

	// ErrUnsupported indicates the backend is not available on this
	// platform.
	ErrUnsupported = errors.New("dolphin: backend not supported on this platform")
)

// OpenError reports why a backend could not be opened for a process.
type OpenError struct {
	PID     int    // target process
	Backend string // backend that failed, e.g. "shm"
	Err     error  // underlying error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("dolphin: cannot open %s backend for pid %d: %v", e.Backend, e.PID, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
