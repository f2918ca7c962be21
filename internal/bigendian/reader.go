package bigendian

import (
	"errors"
	"math"
)

// Errors returned by Reader
var (
	ErrUnexpectedEOF  = errors.New("bigendian: unexpected end of data")
	ErrNegativeOffset = errors.New("bigendian: negative offset")
)

// Reader decodes consecutive fields of a record copied out of target
// memory. All multi-byte values are read in big-endian order.
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates a Reader from a byte slice.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, offset: 0}
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.offset
}

// SetOffset sets the read position.
func (r *Reader) SetOffset(offset int) error {
	if offset < 0 {
		return ErrNegativeOffset
	}
	r.offset = offset
	return nil
}

// Remaining returns the number of bytes remaining.
func (r *Reader) Remaining() int {
	if r.offset >= len(r.data) {
		return 0
	}
	return len(r.data) - r.offset
}

// Skip advances the read position by n bytes.
func (r *Reader) Skip(n int) error {
	if r.offset+n > len(r.data) {
		return ErrUnexpectedEOF
	}
	r.offset += n
	return nil
}

func read[T any](r *Reader, c Codec[T]) (T, error) {
	if r.offset+int(c.Size) > len(r.data) {
		var zero T
		return zero, ErrUnexpectedEOF
	}
	v := c.Decode(r.data[r.offset:])
	r.offset += int(c.Size)
	return v, nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) { return read(r, U8) }

// ReadU16 reads an unsigned 16-bit integer.
func (r *Reader) ReadU16() (uint16, error) { return read(r, U16) }

// ReadU32 reads an unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) { return read(r, U32) }

// ReadU64 reads an unsigned 64-bit integer.
func (r *Reader) ReadU64() (uint64, error) { return read(r, U64) }

// ReadI16 reads a signed 16-bit integer.
func (r *Reader) ReadI16() (int16, error) { return read(r, S16) }

// ReadI32 reads a signed 32-bit integer.
func (r *Reader) ReadI32() (int32, error) { return read(r, S32) }

// ReadFloat32 reads a 32-bit float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadBytes reads n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if r.offset+n > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	v := make([]byte, n)
	copy(v, r.data[r.offset:r.offset+n])
	r.offset += n
	return v, nil
}
