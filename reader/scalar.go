package reader

import (
	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/internal/bigendian"
)

var u32Codec = bigendian.U32

func readScalar[T any](m Memory, a addr.Addr, c bigendian.Codec[T]) (T, bool) {
	var v T
	ok := m.View(a, c.Size, func(b []byte) {
		v = c.Decode(b)
	})
	return v, ok
}

// Scalar decodes one fixed-width value and formats it. Scalars are
// shared by pointer so that readers stay comparable.
type Scalar[T any] struct {
	Codec  bigendian.Codec[T]
	Format func(T) Value
}

func (s *Scalar[T]) Read(t Target, a addr.Addr) (Value, bool) {
	v, ok := readScalar(t, a, s.Codec)
	if !ok {
		return Value{}, false
	}
	return s.Format(v), true
}

// Built-in integer readers.
var (
	U8  Reader = &Scalar[uint8]{bigendian.U8, formatUint[uint8]}
	U16 Reader = &Scalar[uint16]{bigendian.U16, formatUint[uint16]}
	U32 Reader = &Scalar[uint32]{bigendian.U32, formatUint[uint32]}
	S8  Reader = &Scalar[int8]{bigendian.S8, formatInt[int8]}
	S16 Reader = &Scalar[int16]{bigendian.S16, formatInt[int16]}
	S32 Reader = &Scalar[int32]{bigendian.S32, formatInt[int32]}
)

// Address reads a pointer and shows it as eight hex digits. It is the
// reader for pointer types and for types nothing else knows about.
var Address Reader = &Scalar[uint32]{bigendian.U32, func(v uint32) Value {
	return number(addr.Addr(v).String(), float64(v))
}}
