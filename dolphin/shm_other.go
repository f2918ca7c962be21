//go:build !linux

package dolphin

// OpenSharedMemory is only implemented on Linux.
func OpenSharedMemory(pid int) (*SharedMemory, error) {
	return nil, &OpenError{PID: pid, Backend: "shm", Err: ErrUnsupported}
}
