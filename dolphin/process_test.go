package dolphin

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skdltmxn/smsinspect/internal/procfs"
)

// fakeIO is a sparse remote address space.
type fakeIO struct {
	mem    map[uintptr]byte
	reads  int
	closed bool
}

func newFakeIO() *fakeIO {
	return &fakeIO{mem: make(map[uintptr]byte)}
}

func (f *fakeIO) ReadAt(p []byte, addr uintptr) error {
	f.reads++
	for i := range p {
		p[i] = f.mem[addr+uintptr(i)]
	}
	return nil
}

func (f *fakeIO) WriteAt(p []byte, addr uintptr) error {
	for i, b := range p {
		f.mem[addr+uintptr(i)] = b
	}
	return nil
}

func (f *fakeIO) Close() error {
	f.closed = true
	return nil
}

var testMaps = []procfs.Mapping{
	{Start: 0x555500000000, End: 0x555500100000, Perms: "r-xp", Path: "/usr/bin/dolphin-emu"},
	{Start: 0x7f0000000000, End: 0x7f0002000000, Perms: "rw-p"},
	{Start: 0x7f1000000000, End: 0x7f1002000000, Perms: "rw-s", Path: "/dev/shm/dolphin-emu.42 (deleted)"},
	{Start: 0x7f1010000000, End: 0x7f1014000000, Perms: "rw-s", Path: "/dev/shm/dolphin-emu.42 (deleted)"},
}

func TestFindRegions(t *testing.T) {
	mem1, mem2, hasMEM2, ok := findRegions(testMaps)
	if !ok {
		t.Fatal("findRegions failed")
	}
	if mem1 != 0x7f1000000000 || mem2 != 0x7f1010000000 || !hasMEM2 {
		t.Errorf("findRegions = %#x, %#x, %v", mem1, mem2, hasMEM2)
	}

	_, _, hasMEM2, ok = findRegions(testMaps[:3])
	if !ok || hasMEM2 {
		t.Errorf("without MEM2 mapping: ok %v, hasMEM2 %v", ok, hasMEM2)
	}

	if _, _, _, ok := findRegions(testMaps[:2]); ok {
		t.Error("private mapping accepted as MEM1")
	}
}

func TestProcessMemory(t *testing.T) {
	rio := newFakeIO()
	pm, ok := newProcessMemory(rio, testMaps)
	if !ok {
		t.Fatal("newProcessMemory failed")
	}
	m := NewMemory(pm, 42)

	rio.WriteAt([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 0x7f1000000010)
	rio.WriteAt([]byte{0x12, 0x34}, 0x7f1010000020)

	got, ok := m.ReadBytes(0x80000010, 4)
	if !ok {
		t.Fatal("MEM1 read failed")
	}
	if diff := cmp.Diff([]byte{0xDE, 0xAD, 0xBE, 0xEF}, got); diff != "" {
		t.Errorf("MEM1 read mismatch (-want +got):\n%s", diff)
	}

	got, ok = m.ReadBytes(0x90000020, 2)
	if !ok {
		t.Fatal("MEM2 read failed")
	}
	if diff := cmp.Diff([]byte{0x12, 0x34}, got); diff != "" {
		t.Errorf("MEM2 read mismatch (-want +got):\n%s", diff)
	}

	if !m.WriteBytes(0x93FFFFFE, []byte{0xAA, 0xBB}) {
		t.Fatal("write at end of MEM2 failed")
	}
	if rio.mem[0x7f1013FFFFFE] != 0xAA || rio.mem[0x7f1013FFFFFF] != 0xBB {
		t.Error("write landed in the wrong place")
	}

	before := rio.reads
	if m.View(0x93FFFFFE, 4, func([]byte) {}) {
		t.Error("read crossing the end of MEM2 succeeded")
	}
	if rio.reads != before {
		t.Error("out of bounds read reached the remote process")
	}

	if m.Kind() != "process" || !m.HasMEM2() {
		t.Errorf("Kind %q HasMEM2 %v", m.Kind(), m.HasMEM2())
	}
	m.Close()
	if !rio.closed {
		t.Error("Close did not close the remote handle")
	}
}

func TestProcessMemoryWithoutMEM2(t *testing.T) {
	pm, ok := newProcessMemory(newFakeIO(), testMaps[:3])
	if !ok {
		t.Fatal("newProcessMemory failed")
	}
	m := NewMemory(pm, 42)
	if m.View(0x90000000, 4, func([]byte) {}) {
		t.Error("MEM2 read succeeded without MEM2")
	}
}

func TestOpenTriesInOrder(t *testing.T) {
	errFirst := errors.New("first")
	var tried []string

	failing := Opener{Name: "a", Open: func(int) (Backend, error) {
		tried = append(tried, "a")
		return nil, errFirst
	}}
	working := Opener{Name: "b", Open: func(int) (Backend, error) {
		tried = append(tried, "b")
		pm, _ := newProcessMemory(newFakeIO(), testMaps)
		return pm, nil
	}}
	never := Opener{Name: "c", Open: func(int) (Backend, error) {
		tried = append(tried, "c")
		return nil, errFirst
	}}

	m, err := Open(7, failing, working, never)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if m.PID() != 7 || m.Kind() != "process" {
		t.Errorf("PID %d Kind %q", m.PID(), m.Kind())
	}
	if diff := cmp.Diff([]string{"a", "b"}, tried); diff != "" {
		t.Errorf("openers tried (-want +got):\n%s", diff)
	}

	errSecond := &OpenError{PID: 7, Backend: "c", Err: ErrPermission}
	_, err = Open(7, failing, Opener{Name: "c", Open: func(int) (Backend, error) { return nil, errSecond }})
	if !errors.Is(err, errFirst) || !errors.Is(err, ErrPermission) {
		t.Errorf("joined error %v lost a cause", err)
	}
}

func TestStream(t *testing.T) {
	m, data := newTestMemory(t)
	copy(data[len(data)-4:], []byte{1, 2, 3, 4})

	s := m.NewStream(MEM1End.Sub(4))
	buf := make([]byte, 8)
	n, err := s.Read(buf)
	if n != 4 || err == nil {
		t.Errorf("Read = %d, %v; want 4 and EOF", n, err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, buf[:n]); diff != "" {
		t.Errorf("Read mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Seek(int64(MEM1Start), io.SeekStart); err != nil {
		t.Fatal(err)
	}
	pos, err := s.Seek(-2, io.SeekEnd)
	if err != nil || pos != int64(MEM1End)-2 {
		t.Errorf("Seek = %#x, %v", pos, err)
	}
}
