package bigendian

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCodecs(t *testing.T) {
	b := []byte{0x80, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}

	if got := U8.Decode(b); got != 0x80 {
		t.Errorf("U8 = %#x", got)
	}
	if got := S8.Decode(b); got != -128 {
		t.Errorf("S8 = %d", got)
	}
	if got := U16.Decode(b); got != 0x8001 {
		t.Errorf("U16 = %#x", got)
	}
	if got := S16.Decode(b); got != -32767 {
		t.Errorf("S16 = %d", got)
	}
	if got := U32.Decode(b); got != 0x80010203 {
		t.Errorf("U32 = %#x", got)
	}
	if got := S32.Decode(b[8:]); got != -1 {
		t.Errorf("S32 = %d", got)
	}
	if got := U64.Decode(b); got != 0x8001020304050607 {
		t.Errorf("U64 = %#x", got)
	}
	if got := S64.Decode(b[8:]); got != -2 {
		t.Errorf("S64 = %d", got)
	}
	if got := S128.Decode(append(make([]byte, 0), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFD)).String(); got != "-3" {
		t.Errorf("S128 = %s", got)
	}
	if got := U128.Decode(b).Hi; got != 0x8001020304050607 {
		t.Errorf("U128.Hi = %#x", got)
	}
	if got := F32.Decode([]byte{0x3F, 0x80, 0x00, 0x00}); got != 1.0 {
		t.Errorf("F32 = %v", got)
	}
	if got := F64.Decode([]byte{0x40, 0x00, 0, 0, 0, 0, 0, 0}); got != 2.0 {
		t.Errorf("F64 = %v", got)
	}
	if diff := cmp.Diff([]byte{0x80, 0x01, 0x02}, Array(3).Decode(b)); diff != "" {
		t.Errorf("Array mismatch:\n%s", diff)
	}
}

func TestDecodeChecked(t *testing.T) {
	if _, err := DecodeChecked(U32, []byte{1, 2}); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("short buffer error = %v", err)
	}
	v, err := DecodeChecked(U16, []byte{1, 2, 3})
	if err != nil || v != 0x0102 {
		t.Errorf("DecodeChecked = %#x, %v", v, err)
	}
}

func TestReader(t *testing.T) {
	r := NewReader([]byte{0x80, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x02, 0xAB})

	next, err := r.ReadU32()
	if err != nil || next != 0x80001000 {
		t.Fatalf("ReadU32 = %#x, %v", next, err)
	}
	n, err := r.ReadI32()
	if err != nil || n != 2 {
		t.Fatalf("ReadI32 = %d, %v", n, err)
	}
	if r.Remaining() != 1 {
		t.Fatalf("Remaining = %d", r.Remaining())
	}
	if _, err := r.ReadU16(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("ReadU16 past end: %v", err)
	}
	if v, err := r.ReadU8(); err != nil || v != 0xAB {
		t.Fatalf("ReadU8 = %#x, %v", v, err)
	}
}
