package dolphin

import (
	"errors"
)

// Opener is one way of attaching to a Dolphin process.
type Opener struct {
	Name string
	Open func(pid int) (Backend, error)
}

// SharedMemoryOpener maps the emulator's shared memory segment.
var SharedMemoryOpener = Opener{
	Name: "shm",
	Open: func(pid int) (Backend, error) {
		s, err := OpenSharedMemory(pid)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
}

// ProcessOpener reads the emulator's memory with cross-process calls.
var ProcessOpener = Opener{
	Name: "process",
	Open: func(pid int) (Backend, error) {
		p, err := OpenProcessMemory(pid)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
}

// DefaultOpeners is the order Open tries backends in.
var DefaultOpeners = []Opener{SharedMemoryOpener, ProcessOpener}

// OpenerByName returns the opener for a backend kind.
func OpenerByName(name string) (Opener, bool) {
	for _, o := range DefaultOpeners {
		if o.Name == name {
			return o, true
		}
	}
	return Opener{}, false
}

// Open attaches to pid with the first opener that succeeds. When openers
// is empty DefaultOpeners is used. If every opener fails the returned
// error joins all of their errors.
func Open(pid int, openers ...Opener) (*Memory, error) {
	if len(openers) == 0 {
		openers = DefaultOpeners
	}

	var errs []error
	for _, o := range openers {
		b, err := o.Open(pid)
		if err == nil {
			return NewMemory(b, pid), nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}
