package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taskdag/pkg/taskgraph"
)

// checkCommand creates the check command, which fails when the task graph
// contains a cycle.
func (c *CLI) checkCommand() *cobra.Command {
	var opts manifestOpts

	cmd := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Check that the task graph is acyclic",
		Long: `Check that the tasks in a manifest form a directed acyclic graph.

Every dependency must name a task defined in the manifest. When the graph
contains a cycle, one cycle path is printed along with every task lying on or
between cycles, and the command exits with a non-zero status.

Examples:
  taskdag check tasks.yaml
  taskdag check -f json pipeline.conf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func (c *CLI) runCheck(w io.Writer, path string, opts manifestOpts) error {
	g, err := c.loadGraph(path, opts)
	if err != nil {
		return err
	}

	if g.NodeCount() == 0 {
		printWarning(w, "%s defines no tasks", path)
	}

	if err := g.Validate(); err != nil {
		var ce *taskgraph.CycleError
		if errors.As(err, &ce) {
			printError(w, "%s contains a cycle", path)
			printCycle(w, ce.Path)
			printDetail(w, "tasks on or between cycles: %s", strings.Join(ce.Members, ", "))
		}
		return err
	}

	printSuccess(w, "%s is a valid DAG", path)
	printStats(w, g.NodeCount(), g.EdgeCount())
	return nil
}
