package reader

import (
	"strings"

	"github.com/skdltmxn/smsinspect/addr"
)

// String follows the pointer at the field and reads the Shift-JIS string
// it points to.
var String Reader = stringReader{}

type stringReader struct{}

func (stringReader) Read(t Target, a addr.Addr) (Value, bool) {
	p, ok := ReadAddr(t, a)
	if !ok {
		return Value{}, false
	}
	s, ok := t.ReadString(p)
	if !ok {
		return Value{}, false
	}
	return Text(s), true
}

// Hex dumps Width raw bytes as uppercase hex pairs.
type Hex struct {
	Width uint32
}

func (h Hex) Read(t Target, a addr.Addr) (Value, bool) {
	var sb strings.Builder
	ok := t.View(a, h.Width, func(b []byte) {
		const digits = "0123456789ABCDEF"
		sb.Grow(2 * len(b))
		for _, x := range b {
			sb.WriteByte(digits[x>>4])
			sb.WriteByte(digits[x&0xF])
		}
	})
	if !ok {
		return Value{}, false
	}
	return Text(sb.String()), true
}

// ClassName follows the object pointer at the field, reads the virtual
// table pointer from the object header and names its class.
var ClassName Reader = classNameReader{}

type classNameReader struct{}

func (classNameReader) Read(t Target, a addr.Addr) (Value, bool) {
	obj, ok := ReadAddr(t, a)
	if !ok {
		return Value{}, false
	}
	vt, ok := ReadAddr(t, obj)
	if !ok {
		return Value{}, false
	}
	return Text(t.ClassName(vt)), true
}
