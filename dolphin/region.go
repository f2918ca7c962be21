package dolphin

import (
	"fmt"

	"github.com/skdltmxn/smsinspect/addr"
)

// Logical windows of the emulated address space.
const (
	MEM1Start addr.Addr = 0x80000000
	MEM1End   addr.Addr = 0x81800000
	MEM1Size  uint32    = uint32(MEM1End - MEM1Start)

	MEM2Start addr.Addr = 0x90000000
	MEM2End   addr.Addr = 0x94000000
	MEM2Size  uint32    = uint32(MEM2End - MEM2Start)
)

// Region identifies one of the emulated memory windows.
type Region uint8

const (
	RegionMEM1 Region = iota + 1
	RegionMEM2
)

func (r Region) String() string {
	switch r {
	case RegionMEM1:
		return "MEM1"
	case RegionMEM2:
		return "MEM2"
	default:
		return "unknown"
	}
}

// Size returns the size of the region in bytes.
func (r Region) Size() uint32 {
	switch r {
	case RegionMEM1:
		return MEM1Size
	case RegionMEM2:
		return MEM2Size
	default:
		return 0
	}
}

// Start returns the first logical address of the region.
func (r Region) Start() addr.Addr {
	switch r {
	case RegionMEM1:
		return MEM1Start
	case RegionMEM2:
		return MEM2Start
	default:
		return 0
	}
}

// MemAddr is a logical address translated into its region.
type MemAddr struct {
	Region Region
	Offset uint32
}

// Translate maps a logical address into its region. ok is false when
// the address is outside both regions.
func Translate(a addr.Addr) (MemAddr, bool) {
	switch {
	case MEM1Start <= a && a < MEM1End:
		return MemAddr{Region: RegionMEM1, Offset: uint32(a - MEM1Start)}, true
	case MEM2Start <= a && a < MEM2End:
		return MemAddr{Region: RegionMEM2, Offset: uint32(a - MEM2Start)}, true
	default:
		return MemAddr{}, false
	}
}

// Space returns the number of bytes from m to the end of its region.
func (m MemAddr) Space() uint32 {
	return m.Region.Size() - m.Offset
}

// Addr returns the logical address m was translated from.
func (m MemAddr) Addr() addr.Addr {
	return m.Region.Start().Add(m.Offset)
}

func (m MemAddr) String() string {
	return fmt.Sprintf("%s+%X", m.Region, m.Offset)
}
