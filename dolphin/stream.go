package dolphin

import (
	"fmt"
	"io"

	"github.com/skdltmxn/smsinspect/addr"
)

// Stream reads emulated memory sequentially. Offsets are logical
// addresses; reads never cross the end of the region they start in.
// It implements io.Reader, io.Seeker, and io.ReaderAt.
type Stream struct {
	mem *Memory
	pos addr.Addr
}

// NewStream returns a Stream positioned at start.
func (m *Memory) NewStream(start addr.Addr) *Stream {
	return &Stream{mem: m, pos: start}
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (n int, err error) {
	n, err = s.ReadAt(p, int64(s.pos))
	s.pos = s.pos.Add(uint32(n))
	return n, err
}

// ReadAt implements io.ReaderAt. A read that reaches the end of a
// region returns the bytes up to it and io.EOF.
func (s *Stream) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off > 0xFFFFFFFF {
		return 0, fmt.Errorf("dolphin: offset out of range: %d", off)
	}

	a := addr.Addr(off)
	ma, ok := Translate(a)
	if !ok {
		return 0, io.EOF
	}

	want := uint32(min(len(p), int(ma.Space())))
	ok = s.mem.View(a, want, func(b []byte) {
		n = copy(p, b)
	})
	if !ok {
		return 0, io.EOF
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Seek implements io.Seeker. io.SeekEnd is relative to the end of the
// region holding the current position.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(s.pos)
	case io.SeekEnd:
		ma, ok := Translate(s.pos)
		if !ok {
			return 0, fmt.Errorf("dolphin: seek from end outside of mapped memory")
		}
		base = int64(ma.Region.Start()) + int64(ma.Region.Size())
	default:
		return 0, fmt.Errorf("dolphin: invalid whence: %d", whence)
	}

	next := base + offset
	if next < 0 || next > 0xFFFFFFFF {
		return 0, fmt.Errorf("dolphin: seek position out of range: %d", next)
	}
	s.pos = addr.Addr(next)
	return next, nil
}
