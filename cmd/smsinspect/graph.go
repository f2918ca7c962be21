package main

import (
	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <type>",
	Short: "Render a resolved type as a Graphviz graph",
	Long: `Write the resolved form of a catalog type, including its flattened
fields and their offset chains, as a Graphviz dot graph.

  smsinspect graph TMario | dot -Tsvg > tmario.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	typ, err := newStore().Type(args[0])
	if err != nil {
		return err
	}
	memviz.Map(output, typ)
	return nil
}
