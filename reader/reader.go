// Package reader turns the bytes at an address into display values.
//
// Readers are stateless apart from their construction parameters and
// can be shared between goroutines.
package reader

import (
	"encoding/json"
	"strconv"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/vtable"
)

// Memory is the bounded access readers need.
type Memory interface {
	View(a addr.Addr, size uint32, fn func([]byte)) bool
	ReadString(a addr.Addr) (string, bool)
}

// Target is the memory of one game together with its class names.
type Target interface {
	Memory
	// ClassName names the class whose virtual table is at vt.
	ClassName(vt addr.Addr) string
}

type target struct {
	*dolphin.Memory
	classes *vtable.Table
}

func (t target) ClassName(vt addr.Addr) string {
	return t.classes.Name(vt)
}

// NewTarget pairs opened memory with a class name table. classes may be
// nil.
func NewTarget(m *dolphin.Memory, classes *vtable.Table) Target {
	return target{Memory: m, classes: classes}
}

// Value is a decoded field.
type Value struct {
	Text    string
	Num     float64
	Numeric bool
}

// Text returns a value that only has a textual form.
func Text(s string) Value {
	return Value{Text: s}
}

func number(s string, n float64) Value {
	return Value{Text: s, Num: n, Numeric: true}
}

func (v Value) String() string {
	return v.Text
}

// MarshalJSON encodes the textual form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Text)
}

// Reader decodes the field at a.
type Reader interface {
	Read(t Target, a addr.Addr) (Value, bool)
}

// ReadAddr reads the pointer stored at a.
func ReadAddr(m Memory, a addr.Addr) (addr.Addr, bool) {
	v, ok := readScalar(m, a, u32Codec)
	return addr.Addr(v), ok
}

func formatUint[T ~uint8 | ~uint16 | ~uint32](v T) Value {
	return number(strconv.FormatUint(uint64(v), 10), float64(v))
}

func formatInt[T ~int8 | ~int16 | ~int32](v T) Value {
	return number(strconv.FormatInt(int64(v), 10), float64(v))
}
