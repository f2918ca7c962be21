package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the running game",
	Long:  `Attach to the game and display the process, backend, release and catalog in use.`,
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.Close()

	fmt.Fprintf(output, "PID: %d\n", g.PID())
	fmt.Fprintf(output, "Backend: %s\n", g.Kind())
	fmt.Fprintf(output, "Release: %s\n", g.Version())
	fmt.Fprintf(output, "MEM2: %t\n", g.HasMEM2())
	fmt.Fprintf(output, "Manager root: %s\n", g.Version().ManagerRoot())

	if managers, ok := g.Managers(); ok {
		fmt.Fprintf(output, "Managers: %d\n", len(managers))
	}

	p, err := newStore().Params()
	if err != nil {
		fmt.Fprintf(output, "Catalog: %v\n", err)
		return nil
	}
	fmt.Fprintf(output, "Catalog: %s (%d types)\n", paramsDir, len(p.Types()))
	return nil
}
