//go:build linux

package dolphin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// SharedMemoryPath returns where Dolphin creates its segment for pid.
func SharedMemoryPath(pid int) string {
	return fmt.Sprintf("/dev/shm/dolphin-emu.%d", pid)
}

// OpenSharedMemory maps the shared memory segment of the Dolphin process
// pid.
func OpenSharedMemory(pid int) (*SharedMemory, error) {
	f, err := os.OpenFile(SharedMemoryPath(pid), os.O_RDWR, 0)
	if err != nil {
		return nil, &OpenError{PID: pid, Backend: "shm", Err: classifyOpenErr(err)}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &OpenError{PID: pid, Backend: "shm", Err: err}
	}
	if stat.Size() < int64(MEM1Size) {
		return nil, &OpenError{PID: pid, Backend: "shm", Err: ErrMemoryUninitialized}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(stat.Size()), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, &OpenError{PID: pid, Backend: "shm", Err: fmt.Errorf("mmap: %w", err)}
	}

	shm, err := NewSharedMemory(data, func() error { return unix.Munmap(data) })
	if err != nil {
		unix.Munmap(data)
		return nil, &OpenError{PID: pid, Backend: "shm", Err: err}
	}
	return shm, nil
}

func classifyOpenErr(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermission, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrMemoryNotFound, err)
	default:
		return err
	}
}
