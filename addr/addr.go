// Package addr provides the 32-bit logical addresses of the emulated
// console and the offset chains used to reach fields through pointers.
package addr

import "fmt"

// Addr is a logical address in the emulated 32-bit address space.
// Arithmetic wraps modulo 2^32.
type Addr uint32

// Add returns a + off.
func (a Addr) Add(off uint32) Addr {
	return a + Addr(off)
}

// Offset returns a displaced by a signed amount.
func (a Addr) Offset(by int32) Addr {
	return a + Addr(uint32(by))
}

// Sub returns a - off.
func (a Addr) Sub(off uint32) Addr {
	return a - Addr(off)
}

// Diff returns the signed distance a - b.
func (a Addr) Diff(b Addr) int {
	return int(int32(uint32(a) - uint32(b)))
}

// Less reports whether a orders before b.
func (a Addr) Less(b Addr) bool {
	return a < b
}

// IsNull reports whether a is the null pointer.
func (a Addr) IsNull() bool {
	return a == 0
}

func (a Addr) String() string {
	return fmt.Sprintf("%08X", uint32(a))
}
