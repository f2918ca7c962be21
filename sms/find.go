package sms

import (
	"errors"

	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/internal/procfs"
	"github.com/skdltmxn/smsinspect/vtable"
)

// Finder locates a running game among the emulator processes.
type Finder struct {
	// List returns candidate processes. Defaults to procfs.ListDolphin.
	List func() ([]procfs.Process, error)

	// Open attaches to a process. Defaults to dolphin.Open with the
	// default backends.
	Open func(pid int) (*dolphin.Memory, error)

	// Classes returns the class name table for a release. May be nil.
	Classes func(v Version) (*vtable.Table, error)
}

// Find attaches to pid, which must be running the game.
func (f *Finder) Find(pid int) (*Game, error) {
	m, err := f.open(pid)
	if err != nil {
		return nil, err
	}
	g, err := f.game(m)
	if err != nil {
		m.Close()
		if errors.Is(err, ErrNoGameRunning) {
			return nil, err
		}
		var unknown *UnknownGameError
		if errors.As(err, &unknown) {
			return nil, errors.Join(ErrSMSNotRunning, err)
		}
		return nil, err
	}
	return g, nil
}

// FindOne attaches to the first emulator process running the game. If
// none is, the error tells how far the search got: ErrDolphinNotRunning,
// ErrNoGameRunning or ErrSMSNotRunning.
func (f *Finder) FindOne() (*Game, error) {
	list := f.List
	if list == nil {
		list = procfs.ListDolphin
	}
	procs, err := list()
	if err != nil {
		return nil, err
	}

	dolphinRunning, gameRunning := false, false
	for _, p := range procs {
		m, err := f.open(p.PID)
		if err != nil {
			dolphinRunning = true
			continue
		}
		g, err := f.game(m)
		if err == nil {
			return g, nil
		}
		m.Close()

		var unknown *UnknownGameError
		switch {
		case errors.Is(err, ErrNoGameRunning):
			dolphinRunning = true
		case errors.As(err, &unknown):
			gameRunning = true
		default:
			return nil, err
		}
	}

	switch {
	case gameRunning:
		return nil, ErrSMSNotRunning
	case dolphinRunning:
		return nil, ErrNoGameRunning
	default:
		return nil, ErrDolphinNotRunning
	}
}

func (f *Finder) open(pid int) (*dolphin.Memory, error) {
	if f.Open != nil {
		return f.Open(pid)
	}
	return dolphin.Open(pid)
}

func (f *Finder) game(m *dolphin.Memory) (*Game, error) {
	g, err := NewGame(m, nil)
	if err != nil {
		return nil, err
	}
	if f.Classes != nil {
		g.classes, err = f.Classes(g.version)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// VTableDir returns a Classes function loading <dir>/<version>.json.
func VTableDir(dir string) func(Version) (*vtable.Table, error) {
	return func(v Version) (*vtable.Table, error) {
		return vtable.LoadBuild(dir, v.String())
	}
}
