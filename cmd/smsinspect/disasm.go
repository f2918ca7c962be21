package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/internal/bigendian"
	"github.com/skdltmxn/smsinspect/reader"
)

var disasmCount int

var disasmCmd = &cobra.Command{
	Use:   "disasm <addr>",
	Short: "Disassemble PowerPC code",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func init() {
	disasmCmd.Flags().IntVarP(&disasmCount, "count", "n", 16, "number of instructions")
}

func runDisasm(cmd *cobra.Command, args []string) error {
	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.Close()

	a, err := parseTarget(g, args[0])
	if err != nil {
		return err
	}

	for i := range disasmCount {
		pc := a.Add(uint32(4 * i))
		w, ok := dolphin.Read(g.Memory, pc, bigendian.U32)
		if !ok {
			return fmt.Errorf("%s is not mapped", pc)
		}
		fmt.Fprintf(output, "%s  %08X  %s\n", pc, w, reader.Disassemble(w, pc))
	}
	return nil
}
