package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// printCommand creates the print command, which lists each task's direct
// dependencies and dependents.
func (c *CLI) printCommand() *cobra.Command {
	var opts manifestOpts

	cmd := &cobra.Command{
		Use:   "print <manifest>",
		Short: "Print each task's dependencies and dependents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func (c *CLI) runPrint(w io.Writer, path string, opts manifestOpts) error {
	g, err := c.loadGraph(path, opts)
	if err != nil {
		return err
	}

	printKeyValue(w, "manifest", path)
	printKeyValue(w, "edges", fmt.Sprint(g.EdgeCount()))
	printKeyValue(w, "roots", strings.Join(g.Sources(), ", "))
	printKeyValue(w, "leaves", strings.Join(g.Sinks(), ", "))
	printKeyValue(w, "acyclic", fmt.Sprint(g.IsDAG()))
	fmt.Fprintln(w)

	return g.Print(w)
}
