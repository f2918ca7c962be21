package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write <addr> <hex-bytes>",
	Short: "Write raw bytes to memory",
	Long:  `Write the given bytes, as hexadecimal pairs, to addr. Spaces between pairs are ignored.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runWrite,
}

func runWrite(cmd *cobra.Command, args []string) error {
	payload, err := hex.DecodeString(strings.ReplaceAll(args[1], " ", ""))
	if err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.Close()

	a, err := parseTarget(g, args[0])
	if err != nil {
		return err
	}
	if !g.WriteBytes(a, payload) {
		return fmt.Errorf("%d bytes do not fit at %s", len(payload), a)
	}
	fmt.Fprintf(output, "wrote %d bytes at %s\n", len(payload), a)
	return nil
}
