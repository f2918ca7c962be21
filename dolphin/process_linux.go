//go:build linux

package dolphin

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/skdltmxn/smsinspect/internal/procfs"
)

// vmIO uses process_vm_readv(2) and process_vm_writev(2).
type vmIO struct {
	pid int
}

func (v vmIO) ReadAt(p []byte, addr uintptr) error {
	local := []unix.Iovec{{Base: &p[0]}}
	local[0].SetLen(len(p))
	remote := []unix.RemoteIovec{{Base: addr, Len: len(p)}}

	n, err := unix.ProcessVMReadv(v.pid, local, remote, 0)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("short read at %#x: %d of %d bytes", addr, n, len(p))
	}
	return nil
}

func (v vmIO) WriteAt(p []byte, addr uintptr) error {
	local := []unix.Iovec{{Base: &p[0]}}
	local[0].SetLen(len(p))
	remote := []unix.RemoteIovec{{Base: addr, Len: len(p)}}

	n, err := unix.ProcessVMWritev(v.pid, local, remote, 0)
	if err != nil {
		return err
	}
	if n != len(p) {
		return fmt.Errorf("short write at %#x: %d of %d bytes", addr, n, len(p))
	}
	return nil
}

func (v vmIO) Close() error { return nil }

// OpenProcessMemory locates the emulated memory of the Dolphin process
// pid through its memory map.
func OpenProcessMemory(pid int) (*ProcessMemory, error) {
	maps, err := procfs.ReadMaps(pid)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			err = fmt.Errorf("%w: %v", ErrProcessNotFound, err)
		case errors.Is(err, fs.ErrPermission):
			err = fmt.Errorf("%w: %v", ErrPermission, err)
		}
		return nil, &OpenError{PID: pid, Backend: "process", Err: err}
	}

	pm, ok := newProcessMemory(vmIO{pid: pid}, maps)
	if !ok {
		return nil, &OpenError{PID: pid, Backend: "process", Err: ErrMemoryNotFound}
	}

	// probe once so a missing ptrace permission shows up now rather than
	// as every later read failing
	probe := make([]byte, 4)
	if err := pm.io.ReadAt(probe, pm.mem1); err != nil {
		switch {
		case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
			err = fmt.Errorf("%w: %v", ErrPermission, err)
		case errors.Is(err, unix.ESRCH):
			err = fmt.Errorf("%w: %v", ErrProcessNotFound, err)
		}
		return nil, &OpenError{PID: pid, Backend: "process", Err: err}
	}
	return pm, nil
}
