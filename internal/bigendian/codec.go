// Package bigendian decodes the fixed-width, most-significant-byte-first
// values stored in the emulated console's memory.
package bigendian

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
)

// Codec describes one fixed-width value kind: how many bytes it occupies
// and how to decode them. Decode may assume len(b) >= Size.
type Codec[T any] struct {
	Size   uint32
	Decode func(b []byte) T
}

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi, Lo uint64
}

// Big returns v as a big.Int.
func (v Uint128) Big() *big.Int {
	n := new(big.Int).SetUint64(v.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(v.Lo))
}

func (v Uint128) String() string {
	return v.Big().String()
}

// Int128 is a signed two's complement 128-bit integer.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Big returns v as a big.Int.
func (v Int128) Big() *big.Int {
	n := new(big.Int).SetInt64(v.Hi)
	n.Lsh(n, 64)
	return n.Add(n, new(big.Int).SetUint64(v.Lo))
}

func (v Int128) String() string {
	return v.Big().String()
}

var (
	U8  = Codec[uint8]{Size: 1, Decode: func(b []byte) uint8 { return b[0] }}
	U16 = Codec[uint16]{Size: 2, Decode: binary.BigEndian.Uint16}
	U32 = Codec[uint32]{Size: 4, Decode: binary.BigEndian.Uint32}
	U64 = Codec[uint64]{Size: 8, Decode: binary.BigEndian.Uint64}

	S8  = Codec[int8]{Size: 1, Decode: func(b []byte) int8 { return int8(b[0]) }}
	S16 = Codec[int16]{Size: 2, Decode: func(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) }}
	S32 = Codec[int32]{Size: 4, Decode: func(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) }}
	S64 = Codec[int64]{Size: 8, Decode: func(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }}

	U128 = Codec[Uint128]{Size: 16, Decode: func(b []byte) Uint128 {
		return Uint128{Hi: binary.BigEndian.Uint64(b), Lo: binary.BigEndian.Uint64(b[8:])}
	}}
	S128 = Codec[Int128]{Size: 16, Decode: func(b []byte) Int128 {
		return Int128{Hi: int64(binary.BigEndian.Uint64(b)), Lo: binary.BigEndian.Uint64(b[8:])}
	}}

	F32 = Codec[float32]{Size: 4, Decode: func(b []byte) float32 {
		return math.Float32frombits(binary.BigEndian.Uint32(b))
	}}
	F64 = Codec[float64]{Size: 8, Decode: func(b []byte) float64 {
		return math.Float64frombits(binary.BigEndian.Uint64(b))
	}}
)

// Array returns a codec copying n raw bytes.
func Array(n uint32) Codec[[]byte] {
	return Codec[[]byte]{Size: n, Decode: func(b []byte) []byte {
		v := make([]byte, n)
		copy(v, b[:n])
		return v
	}}
}

// DecodeChecked decodes b with c, failing instead of panicking when b is
// shorter than the codec's width.
func DecodeChecked[T any](c Codec[T], b []byte) (T, error) {
	if uint32(len(b)) < c.Size {
		var zero T
		return zero, fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEOF, c.Size, len(b))
	}
	return c.Decode(b), nil
}
