package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// orderOpts holds the command-line flags for the order command.
type orderOpts struct {
	manifestOpts
	kahn   bool   // print raw Kahn order (dependents first)
	output string // output file path (stdout if empty)
}

// orderCommand creates the order command, which prints a topological order.
func (c *CLI) orderCommand() *cobra.Command {
	var opts orderOpts

	cmd := &cobra.Command{
		Use:   "order <manifest>",
		Short: "Print tasks in dependency order",
		Long: `Print the tasks of a manifest one per line so that every task appears
after the tasks it depends on.

With --kahn the order is printed exactly as Kahn's algorithm produces it:
tasks nothing depends on come first.

Examples:
  taskdag order tasks.toml
  taskdag order --kahn tasks.yaml -o order.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOrder(cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.kahn, "kahn", false, "print Kahn order (dependents before dependencies)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (c *CLI) runOrder(w io.Writer, path string, opts orderOpts) error {
	g, err := c.loadGraph(path, opts.manifestOpts)
	if err != nil {
		return err
	}

	orderFn := g.ExecutionOrder
	if opts.kahn {
		orderFn = g.TopologicalOrder
	}
	order, err := orderFn()
	if err != nil {
		return err
	}

	text := strings.Join(order, "\n")
	if len(order) > 0 {
		text += "\n"
	}

	if opts.output == "" {
		_, err := io.WriteString(w, text)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(w, "Wrote order of %d tasks", len(order))
	printFile(w, opts.output)
	return nil
}
