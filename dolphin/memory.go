package dolphin

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/internal/bigendian"
)

// MaxStringLength caps how far ReadString scans for a terminator.
const MaxStringLength = 256

// Backend is implemented by the two ways of reaching emulated memory.
//
// The unchecked methods require that [m.Offset, m.Offset+size) lies inside
// m.Region; Memory establishes this before calling them. They still fail
// when the backend does not expose the region at all (MEM2 on older
// builds).
type Backend interface {
	// Kind names the backend ("shm" or "process").
	Kind() string

	// HasMEM2 reports whether the MEM2 region is reachable.
	HasMEM2() bool

	// Close releases the mapping or process handle.
	Close() error

	readUnchecked(m MemAddr, size uint32) ([]byte, bool)
	writeUnchecked(m MemAddr, p []byte) bool
}

// Memory is an opened view of one emulator process. It is owned by a
// single session and must be closed when the session ends.
type Memory struct {
	backend Backend
	pid     int

	closeOnce sync.Once
	closeErr  error
}

// NewMemory wraps an opened backend.
func NewMemory(b Backend, pid int) *Memory {
	return &Memory{backend: b, pid: pid}
}

// PID returns the id of the inspected process.
func (m *Memory) PID() int {
	return m.pid
}

// Kind returns the backend kind.
func (m *Memory) Kind() string {
	return m.backend.Kind()
}

// HasMEM2 reports whether the MEM2 region is reachable.
func (m *Memory) HasMEM2() bool {
	return m.backend.HasMEM2()
}

// Close releases the backend. It is safe to call more than once.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		m.closeErr = m.backend.Close()
	})
	return m.closeErr
}

// View passes the size bytes at a to fn. It returns false without
// calling fn when a is unmapped or the range crosses the end of its
// region. fn must not retain the slice.
func (m *Memory) View(a addr.Addr, size uint32, fn func([]byte)) bool {
	ma, ok := Translate(a)
	if !ok || ma.Space() < size {
		return false
	}
	b, ok := m.backend.readUnchecked(ma, size)
	if !ok {
		return false
	}
	fn(b)
	return true
}

// ViewTruncated is like View but clamps the range to the end of the
// region instead of failing. fn receives min(max, space) bytes.
func (m *Memory) ViewTruncated(a addr.Addr, max uint32, fn func([]byte)) bool {
	ma, ok := Translate(a)
	if !ok {
		return false
	}
	size := min(max, ma.Space())
	b, ok := m.backend.readUnchecked(ma, size)
	if !ok {
		return false
	}
	fn(b)
	return true
}

// WriteBytes copies p to a. It returns false when p does not fit.
func (m *Memory) WriteBytes(a addr.Addr, p []byte) bool {
	ma, ok := Translate(a)
	if !ok || uint64(ma.Space()) < uint64(len(p)) {
		return false
	}
	return m.backend.writeUnchecked(ma, p)
}

// ReadBytes returns a copy of the n bytes at a.
func (m *Memory) ReadBytes(a addr.Addr, n uint32) ([]byte, bool) {
	var out []byte
	ok := m.View(a, n, func(b []byte) {
		out = make([]byte, n)
		copy(out, b)
	})
	return out, ok
}

// Read decodes one value of the codec's kind at a.
func Read[T any](m *Memory, a addr.Addr, c bigendian.Codec[T]) (T, bool) {
	var v T
	ok := m.View(a, c.Size, func(b []byte) {
		v = c.Decode(b)
	})
	return v, ok
}

// ReadAddr reads the pointer stored at a.
func (m *Memory) ReadAddr(a addr.Addr) (addr.Addr, bool) {
	v, ok := Read(m, a, bigendian.U32)
	return addr.Addr(v), ok
}

// ReadString reads a null terminated Shift-JIS string at a, scanning at
// most MaxStringLength bytes or up to the end of the region. Invalid
// byte sequences fail the read.
func (m *Memory) ReadString(a addr.Addr) (string, bool) {
	var s string
	var valid bool
	ok := m.ViewTruncated(a, MaxStringLength, func(b []byte) {
		n := 0
		for n < len(b) && b[n] != 0 {
			n++
		}
		s, valid = decodeShiftJIS(b[:n])
	})
	return s, ok && valid
}

func decodeShiftJIS(b []byte) (string, bool) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	// the decoder substitutes U+FFFD for malformed input, which Shift-JIS
	// itself cannot encode
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// DumpHex renders the size bytes at a as uppercase hex pairs.
func (m *Memory) DumpHex(a addr.Addr, size uint32) (string, bool) {
	var sb strings.Builder
	ok := m.View(a, size, func(b []byte) {
		sb.Grow(len(b) * 2)
		for _, x := range b {
			fmt.Fprintf(&sb, "%02X", x)
		}
	})
	return sb.String(), ok
}

// ResolveOffsets walks an offset chain starting at base.
func (m *Memory) ResolveOffsets(base addr.Addr, o addr.Offsets) (addr.Addr, bool) {
	return o.Resolve(base, m.ReadAddr)
}

// ResolvePath follows the request form [base, off1, off2, ...]: for each
// hop read the pointer at the current address and add the hop.
func (m *Memory) ResolvePath(base addr.Addr, hops ...uint32) (addr.Addr, bool) {
	a := base
	for _, off := range hops {
		p, ok := m.ReadAddr(a)
		if !ok {
			return 0, false
		}
		a = p.Add(off)
	}
	return a, true
}
