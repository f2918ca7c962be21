package dolphin

import (
	"github.com/skdltmxn/smsinspect/internal/procfs"
)

// Sizes and placement of the emulated memory mappings inside the
// emulator's own address space.
const (
	processMEM1Size uint64 = 0x2000000
	processMEM2Size uint64 = 0x4000000
	processMEM2Gap  uint64 = 0x10000000
)

// remoteIO moves bytes between this process and another one.
type remoteIO interface {
	ReadAt(p []byte, addr uintptr) error
	WriteAt(p []byte, addr uintptr) error
	Close() error
}

// ProcessMemory reaches emulated memory with cross-process reads and
// writes. Every access is one system call into a fresh buffer.
type ProcessMemory struct {
	io      remoteIO
	mem1    uintptr
	mem2    uintptr
	hasMEM2 bool
}

// findRegions locates the host addresses of MEM1 and MEM2 in a process
// memory map. MEM1 is the first shared mapping of exactly the MEM1 size;
// MEM2, when present, is a shared mapping of the MEM2 size at a fixed
// distance after it.
func findRegions(maps []procfs.Mapping) (mem1, mem2 uint64, hasMEM2, ok bool) {
	for _, m := range maps {
		if m.Shared() && m.Size() == processMEM1Size {
			mem1, ok = m.Start, true
			break
		}
	}
	if !ok {
		return 0, 0, false, false
	}

	want := mem1 + processMEM2Gap
	for _, m := range maps {
		if m.Start == want && m.Shared() && m.Size() == processMEM2Size {
			return mem1, want, true, true
		}
	}
	return mem1, 0, false, true
}

func newProcessMemory(rio remoteIO, maps []procfs.Mapping) (*ProcessMemory, bool) {
	mem1, mem2, hasMEM2, ok := findRegions(maps)
	if !ok {
		return nil, false
	}
	return &ProcessMemory{
		io:      rio,
		mem1:    uintptr(mem1),
		mem2:    uintptr(mem2),
		hasMEM2: hasMEM2,
	}, true
}

// Kind implements Backend.
func (p *ProcessMemory) Kind() string { return "process" }

// HasMEM2 implements Backend.
func (p *ProcessMemory) HasMEM2() bool { return p.hasMEM2 }

// Close implements Backend.
func (p *ProcessMemory) Close() error {
	return p.io.Close()
}

func (p *ProcessMemory) hostAddr(m MemAddr) (uintptr, bool) {
	switch m.Region {
	case RegionMEM1:
		return p.mem1 + uintptr(m.Offset), true
	case RegionMEM2:
		return p.mem2 + uintptr(m.Offset), p.hasMEM2
	default:
		return 0, false
	}
}

func (p *ProcessMemory) readUnchecked(m MemAddr, size uint32) ([]byte, bool) {
	host, ok := p.hostAddr(m)
	if !ok {
		return nil, false
	}
	buf := make([]byte, size)
	if size == 0 {
		return buf, true
	}
	if err := p.io.ReadAt(buf, host); err != nil {
		return nil, false
	}
	return buf, true
}

func (p *ProcessMemory) writeUnchecked(m MemAddr, b []byte) bool {
	host, ok := p.hostAddr(m)
	if !ok {
		return false
	}
	if len(b) == 0 {
		return true
	}
	return p.io.WriteAt(b, host) == nil
}
