package reader

import (
	"testing"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/vtable"
)

func newTestTarget(t *testing.T) (Target, []byte) {
	t.Helper()
	data := make([]byte, dolphin.MEM1Size)
	shm, err := dolphin.NewSharedMemory(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	classes := vtable.New(map[addr.Addr]string{0x803D0000: "TMario"})
	return NewTarget(dolphin.NewMemory(shm, 1), classes), data
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		x    float32
		want string
	}{
		{0, "0.0"},
		{3, "3.0"},
		{-3, "-3.0"},
		{1.5, "1.5"},
		{0.0001, "0.0001"},
		{12345678, "12345678.0"},
		{1e8, "1e8"},
		{1e10, "1e10"},
		{1e-6, "1e-6"},
		{-2.5e-6, "-2.5e-6"},
		{3.4028235e38, "3.4028235e38"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.x); got != tt.want {
			t.Errorf("FormatFloat(%g) = %q, want %q", tt.x, got, tt.want)
		}
	}
}

func TestScalarReaders(t *testing.T) {
	target, data := newTestTarget(t)
	copy(data[0x100:], []byte{0xFF, 0xFE, 0x80, 0x00, 0x00, 0x01, 0x3F, 0x80, 0x00, 0x00})

	tests := []struct {
		name string
		r    Reader
		a    addr.Addr
		want string
	}{
		{"u8", U8, 0x80000100, "255"},
		{"s8", S8, 0x80000100, "-1"},
		{"u16", U16, 0x80000100, "65534"},
		{"s16", S16, 0x80000100, "-2"},
		{"u32", U32, 0x80000102, "2147483649"},
		{"s32", S32, 0x80000102, "-2147483647"},
		{"float", Float, 0x80000106, "1.0"},
		{"addr", Address, 0x80000102, "80000001"},
		{"hex1", Hex{1}, 0x80000100, "FF"},
		{"hex4", Hex{4}, 0x80000100, "FFFE8000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := tt.r.Read(target, tt.a)
			if !ok {
				t.Fatal("read failed")
			}
			if v.String() != tt.want {
				t.Errorf("got %q, want %q", v, tt.want)
			}
		})
	}

	v, _ := U16.Read(target, 0x80000100)
	if !v.Numeric || v.Num != 65534 {
		t.Errorf("u16 numeric value = %v, %v", v.Num, v.Numeric)
	}

	if _, ok := U32.Read(target, dolphin.MEM1End.Sub(2)); ok {
		t.Error("read across the end of MEM1 succeeded")
	}
	if _, ok := Float.Read(target, 0x1000); ok {
		t.Error("read of an unmapped address succeeded")
	}
}

func TestStringReader(t *testing.T) {
	target, data := newTestTarget(t)
	copy(data[0x10:], []byte{0x80, 0x00, 0x02, 0x00})
	copy(data[0x200:], "TMario\x00")
	copy(data[0x20:], []byte{0x00, 0x00, 0x00, 0x00})

	v, ok := String.Read(target, 0x80000010)
	if !ok || v.String() != "TMario" {
		t.Errorf("String = %q, %v", v, ok)
	}
	if _, ok := String.Read(target, 0x80000020); ok {
		t.Error("null string pointer read succeeded")
	}
}

func TestClassNameReader(t *testing.T) {
	target, data := newTestTarget(t)
	// field -> object at 0x80000300 -> vtable 0x803D0000
	copy(data[0x30:], []byte{0x80, 0x00, 0x03, 0x00})
	copy(data[0x300:], []byte{0x80, 0x3D, 0x00, 0x00})
	// field -> object at 0x80000400 -> unknown vtable
	copy(data[0x40:], []byte{0x80, 0x00, 0x04, 0x00})
	copy(data[0x400:], []byte{0x80, 0x3E, 0x12, 0x34})

	if v, ok := ClassName.Read(target, 0x80000030); !ok || v.String() != "TMario" {
		t.Errorf("ClassName = %q, %v", v, ok)
	}
	if v, ok := ClassName.Read(target, 0x80000040); !ok || v.String() != "(803E1234)" {
		t.Errorf("ClassName unknown = %q, %v", v, ok)
	}
}

func TestDisasm(t *testing.T) {
	target, data := newTestTarget(t)
	copy(data[0x500:], []byte{0x60, 0x00, 0x00, 0x00})

	v, ok := Disasm.Read(target, 0x80000500)
	if !ok || v.String() != "nop" {
		t.Errorf("Disasm = %q, %v", v, ok)
	}
	if _, ok := Disasm.Read(target, 0x10); ok {
		t.Error("disassembly of an unmapped address succeeded")
	}
}
