package dolphin

import "fmt"

// MEM2Offset is where MEM2 starts inside the shared memory segment.
const MEM2Offset uint32 = 0x4040000

// SharedMemory reaches emulated memory through the segment Dolphin
// shares with other processes. Accesses are plain slice operations on
// the local mapping.
type SharedMemory struct {
	data    []byte
	hasMEM2 bool
	unmap   func() error
}

// NewSharedMemory wraps an already mapped segment. unmap, which may be
// nil, is called on Close.
func NewSharedMemory(data []byte, unmap func() error) (*SharedMemory, error) {
	if uint64(len(data)) < uint64(MEM1Size) {
		return nil, fmt.Errorf("%w: segment is %d bytes", ErrMemoryUninitialized, len(data))
	}
	return &SharedMemory{
		data:    data,
		hasMEM2: uint64(len(data)) >= uint64(MEM2Offset)+uint64(MEM2Size),
		unmap:   unmap,
	}, nil
}

// Kind implements Backend.
func (s *SharedMemory) Kind() string { return "shm" }

// HasMEM2 implements Backend.
func (s *SharedMemory) HasMEM2() bool { return s.hasMEM2 }

// Close implements Backend.
func (s *SharedMemory) Close() error {
	s.data = nil
	if s.unmap != nil {
		return s.unmap()
	}
	return nil
}

// Size returns the size of the mapped segment.
func (s *SharedMemory) Size() int {
	return len(s.data)
}

func (s *SharedMemory) offset(m MemAddr) (uint32, bool) {
	switch m.Region {
	case RegionMEM1:
		return m.Offset, s.data != nil
	case RegionMEM2:
		return MEM2Offset + m.Offset, s.hasMEM2 && s.data != nil
	default:
		return 0, false
	}
}

func (s *SharedMemory) readUnchecked(m MemAddr, size uint32) ([]byte, bool) {
	off, ok := s.offset(m)
	if !ok {
		return nil, false
	}
	return s.data[off : off+size : off+size], true
}

func (s *SharedMemory) writeUnchecked(m MemAddr, p []byte) bool {
	off, ok := s.offset(m)
	if !ok {
		return false
	}
	copy(s.data[off:], p)
	return true
}
