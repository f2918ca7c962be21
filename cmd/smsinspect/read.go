package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/smsinspect/dolphin"
	"github.com/skdltmxn/smsinspect/objparams"
)

var readCmd = &cobra.Command{
	Use:   "read <addr> <type>",
	Short: "Decode an object",
	Long: `Decode the object of the given catalog type at addr.

addr is hexadecimal, or a pointer path such as 8040A6E8,14: read the
pointer at the first address, add the next offset, and so on.`,
	Args: cobra.ExactArgs(2),
	RunE: runRead,
}

func runRead(cmd *cobra.Command, args []string) error {
	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.Close()

	a, err := parseTarget(g, args[0])
	if err != nil {
		return err
	}
	typ, err := newStore().Type(args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s at %s\n\n", typ.Name, a)
	if typ.IsPrimitive() {
		v, ok := typ.Read(g, a)
		fmt.Fprintf(output, "%s\n", valueOrDash(v.String(), ok))
		return nil
	}

	fmt.Fprintf(output, "%-12s %-24s %-16s %-20s %s\n", "OFFSET", "NAME", "TYPE", "CLASS", "VALUE")
	rule()
	for _, fv := range typ.ReadFields(g, a) {
		f := fv.Field
		fmt.Fprintf(output, "%-12s %-24s %-16s %-20s %s\n", f.Offset, f.Name, f.Type, f.Class, valueOrDash(fv.Value.String(), fv.OK))
	}
	return nil
}

func valueOrDash(s string, ok bool) string {
	if !ok {
		return "-"
	}
	return s
}

var hexCmd = &cobra.Command{
	Use:   "hex <addr> <size>",
	Short: "Dump raw memory",
	Long:  `Dump size bytes at addr, 16 per line. size is decimal, or hexadecimal with a 0x prefix.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runHex,
}

func runHex(cmd *cobra.Command, args []string) error {
	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.Close()

	a, err := parseTarget(g, args[0])
	if err != nil {
		return err
	}
	size, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil || size > uint64(dolphin.MEM2Size) {
		return fmt.Errorf("invalid size: %s", args[1])
	}

	b, ok := g.ReadBytes(a, uint32(size))
	if !ok {
		return fmt.Errorf("%s+%X is not mapped", a, size)
	}
	for off := 0; off < len(b); off += 16 {
		line := b[off:min(off+16, len(b))]
		fmt.Fprintf(output, "%s ", a.Add(uint32(off)))
		for _, x := range line {
			fmt.Fprintf(output, " %02X", x)
		}
		fmt.Fprintln(output)
	}
	return nil
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List catalog types",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

func runTypes(cmd *cobra.Command, args []string) error {
	p, err := newStore().Params()
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%-10s %-8s %s\n", "KIND", "FIELDS", "NAME")
	rule()
	names := p.Types()
	for _, name := range names {
		typ, _ := p.Lookup(name)
		fmt.Fprintf(output, "%-10s %-8d %s\n", typ.Kind, len(typ.Fields), name)
	}
	fmt.Fprintf(output, "\nTotal: %d types\n", len(names))
	return nil
}

var fieldsCmd = &cobra.Command{
	Use:   "fields <type>",
	Short: "Show the flattened fields of a type",
	Args:  cobra.ExactArgs(1),
	RunE:  runFields,
}

func runFields(cmd *cobra.Command, args []string) error {
	typ, err := newStore().Type(args[0])
	if err != nil {
		return err
	}
	printRows(typ)
	return nil
}

func printRows(typ *objparams.ObjectType) {
	fmt.Fprintf(output, "%-12s %-24s %-16s %-20s %s\n", "OFFSET", "NAME", "TYPE", "CLASS", "NOTES")
	rule()
	for _, r := range typ.Rows() {
		fmt.Fprintf(output, "%-12s %-24s %-16s %-20s %s\n", r[0], r[1], r[3], r[4], r[2])
	}
}
