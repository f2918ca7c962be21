package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/smsinspect/addr"
	"github.com/skdltmxn/smsinspect/sms"
)

var managersCmd = &cobra.Command{
	Use:   "managers",
	Short: "List the object managers",
	Args:  cobra.NoArgs,
	RunE:  runManagers,
}

var manageesCmd = &cobra.Command{
	Use:   "managees <manager-addr>",
	Short: "List the objects held by a manager",
	Args:  cobra.ExactArgs(1),
	RunE:  runManagees,
}

func objectColumns(o sms.Object) (class, name string) {
	class, name = "-", "-"
	if o.ClassOK {
		class = o.Class
	}
	if o.NameOK {
		name = o.Name
	}
	return class, name
}

func runManagers(cmd *cobra.Command, args []string) error {
	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.Close()

	managers, ok := g.Managers()
	if !ok {
		return errors.New("the manager list cannot be read (is a stage loaded?)")
	}

	fmt.Fprintf(output, "%-10s %-32s %-8s %s\n", "ADDR", "CLASS", "OBJECTS", "NAME")
	rule()
	for _, m := range managers {
		class, name := objectColumns(m.Object)
		fmt.Fprintf(output, "%-10s %-32s %-8d %s\n", m.Addr, class, m.Children, name)
	}
	return nil
}

func runManagees(cmd *cobra.Command, args []string) error {
	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.Close()

	mgr, err := addr.ParseAddr(args[0])
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", args[0], err)
	}
	objs, ok := g.Managees(mgr)
	if !ok {
		return fmt.Errorf("%s is not a readable manager", mgr)
	}

	fmt.Fprintf(output, "%-10s %-32s %s\n", "ADDR", "CLASS", "NAME")
	rule()
	for _, o := range objs {
		class, name := objectColumns(o)
		fmt.Fprintf(output, "%-10s %-32s %s\n", o.Addr, class, name)
	}
	return nil
}
