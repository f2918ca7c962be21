package reader

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/arch/ppc64/ppc64asm"

	"github.com/skdltmxn/smsinspect/addr"
)

// Disassemble renders the instruction word w located at pc. Words that
// do not decode, such as paired single instructions, render as a .long
// directive.
func Disassemble(w uint32, pc addr.Addr) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], w)
	inst, err := ppc64asm.Decode(b[:], binary.BigEndian)
	if err != nil || inst.Op == 0 {
		return fmt.Sprintf(".long 0x%08X", w)
	}
	return ppc64asm.GNUSyntax(inst, uint64(pc))
}

// Disasm reads one instruction word and disassembles it.
var Disasm Reader = disasmReader{}

type disasmReader struct{}

func (disasmReader) Read(t Target, a addr.Addr) (Value, bool) {
	w, ok := readScalar(t, a, u32Codec)
	if !ok {
		return Value{}, false
	}
	return Text(Disassemble(w, a)), true
}
