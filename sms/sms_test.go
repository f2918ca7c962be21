package sms

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/internal/procfs"
	"github.com/skdltmxn/smsinspect/vtable"
)

type fakeGame struct {
	data []byte
	mem  *dolphin.Memory
}

func newFakeGame(t *testing.T, id string) *fakeGame {
	t.Helper()
	data := make([]byte, dolphin.MEM1Size)
	copy(data, id)
	shm, err := dolphin.NewSharedMemory(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	return &fakeGame{data: data, mem: dolphin.NewMemory(shm, 100)}
}

func (f *fakeGame) put32(a addr.Addr, v uint32) {
	binary.BigEndian.PutUint32(f.data[a-dolphin.MEM1Start:], v)
}

func (f *fakeGame) putString(a addr.Addr, s string) {
	copy(f.data[a-dolphin.MEM1Start:], s+"\x00")
}

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		id   string
		want Version
	}{
		{"GMSJ01\x00\x00", GMSJ01},
		{"GMSE01\x00\x30", GMSE01},
		{"GMSP01\x00\x00", GMSP01},
		{"GMSJ01\x00\x01", GMSJ0A},
	}
	for _, tt := range tests {
		g := newFakeGame(t, tt.id)
		v, err := DetectVersion(g.mem)
		if err != nil || v != tt.want {
			t.Errorf("DetectVersion(%q) = %v, %v; want %v", tt.id, v, err, tt.want)
		}
	}

	g := newFakeGame(t, "GALE01\x00\x00")
	_, err := DetectVersion(g.mem)
	var unknown *UnknownGameError
	if !errors.As(err, &unknown) || string(unknown.ID[:6]) != "GALE01" {
		t.Errorf("err = %v, want UnknownGameError", err)
	}
}

func TestParseVersion(t *testing.T) {
	for _, v := range []Version{GMSJ01, GMSE01, GMSP01, GMSJ0A} {
		got, ok := ParseVersion(v.String())
		if !ok || got != v {
			t.Errorf("ParseVersion(%q) = %v, %v", v, got, ok)
		}
	}
	if _, ok := ParseVersion("GMSX01"); ok {
		t.Error("ParseVersion accepted an unknown release")
	}
}

func TestManagers(t *testing.T) {
	f := newFakeGame(t, "GMSJ01\x00\x00")
	f.put32(GMSJ01.ManagerRoot(), 0x80500000)
	f.put32(0x80500014, 2)
	f.put32(0x80500018, 0x80500100)

	// conductor nodes: next, prev, obj
	f.put32(0x80500100, 0x80500200)
	f.put32(0x80500108, 0x80600000)
	f.put32(0x80500200, 0)
	f.put32(0x80500208, 0x80600100)

	// first manager: known class, named, two children
	f.put32(0x80600000, 0x803D0000)
	f.put32(0x80600004, 0x80700000)
	f.putString(0x80700000, "Enemy Manager")
	f.put32(0x80600014, 2)
	f.put32(0x80600018, 0x80610000)
	f.put32(0x80610000, 0x80620000)
	f.put32(0x80610004, 0x80620100)
	f.put32(0x80620000, 0x803D1000)
	f.put32(0x80620004, 0x80700100)
	f.putString(0x80700100, "Goomba 1")
	f.put32(0x80620100, 0x803D1000)

	// second manager: unknown class, no name
	f.put32(0x80600100, 0x803E0000)

	classes := vtable.New(map[addr.Addr]string{
		0x803D0000: "TEnemyManager",
		0x803D1000: "TEnemy",
	})
	g, err := NewGame(f.mem, classes)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	managers, ok := g.Managers()
	if !ok {
		t.Fatal("Managers failed")
	}
	want := []Manager{
		{Object: Object{Addr: 0x80600000, Class: "TEnemyManager", ClassOK: true, Name: "Enemy Manager", NameOK: true}, Children: 2},
		{Object: Object{Addr: 0x80600100, Class: "(803E0000)", ClassOK: true}, Children: 0},
	}
	if diff := cmp.Diff(want, managers); diff != "" {
		t.Errorf("Managers mismatch (-want +got):\n%s", diff)
	}

	objs, ok := g.Managees(0x80600000)
	if !ok {
		t.Fatal("Managees failed")
	}
	wantObjs := []Object{
		{Addr: 0x80620000, Class: "TEnemy", ClassOK: true, Name: "Goomba 1", NameOK: true},
		{Addr: 0x80620100, Class: "TEnemy", ClassOK: true},
	}
	if diff := cmp.Diff(wantObjs, objs); diff != "" {
		t.Errorf("Managees mismatch (-want +got):\n%s", diff)
	}

	if _, ok := g.Managees(0x10); ok {
		t.Error("Managees of an unmapped manager succeeded")
	}
}

func TestManagersBrokenList(t *testing.T) {
	f := newFakeGame(t, "GMSE01\x00\x30")
	f.put32(GMSE01.ManagerRoot(), 0x80500000)
	f.put32(0x80500014, 1)
	f.put32(0x80500018, 0x00000010) // node outside of memory

	g, err := NewGame(f.mem, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Managers(); ok {
		t.Error("Managers over a broken list succeeded")
	}
}

func TestFindOne(t *testing.T) {
	games := map[int]string{
		1: "GALE01\x00\x00",
		2: "GMSP01\x00\x00",
	}
	f := &Finder{
		List: func() ([]procfs.Process, error) {
			return []procfs.Process{{PID: 1}, {PID: 2}}, nil
		},
		Open: func(pid int) (*dolphin.Memory, error) {
			return newFakeGame(t, games[pid]).mem, nil
		},
	}

	g, err := f.FindOne()
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if g.Version() != GMSP01 {
		t.Errorf("Version = %v", g.Version())
	}
}

func TestFindOneErrors(t *testing.T) {
	openErr := errors.New("no memory")
	tests := []struct {
		name  string
		procs []procfs.Process
		open  func(int) (*dolphin.Memory, error)
		want  error
	}{
		{"no processes", nil, nil, ErrDolphinNotRunning},
		{
			"cannot open", []procfs.Process{{PID: 1}},
			func(int) (*dolphin.Memory, error) { return nil, openErr },
			ErrNoGameRunning,
		},
		{
			"other game", []procfs.Process{{PID: 1}},
			func(int) (*dolphin.Memory, error) { return newFakeGame(t, "GALE01\x00\x00").mem, nil },
			ErrSMSNotRunning,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Finder{
				List: func() ([]procfs.Process, error) { return tt.procs, nil },
				Open: tt.open,
			}
			if _, err := f.FindOne(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
