//go:build !linux

package dolphin

// OpenProcessMemory is only implemented on Linux.
func OpenProcessMemory(pid int) (*ProcessMemory, error) {
	return nil, &OpenError{PID: pid, Backend: "process", Err: ErrUnsupported}
}
