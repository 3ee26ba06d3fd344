package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	taskerrors "github.com/matzehuels/taskdag/pkg/errors"
	"github.com/matzehuels/taskdag/pkg/render/nodelink"
	"github.com/matzehuels/taskdag/pkg/taskgraph"
)

const (
	outputDOT = "dot"
	outputSVG = "svg"
	outputPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	manifestOpts
	output   string // output file path (stdout if empty)
	kind     string // dot, svg, or png; inferred from output extension if empty
	detailed bool   // include degree information in node labels
}

// renderCommand creates the render command for drawing the task graph.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <manifest>",
		Short: "Draw the task graph with Graphviz",
		Long: `Draw the task graph as Graphviz DOT, SVG, or PNG. Arrows point from a
task to the tasks it depends on. Tasks on or between cycles are drawn in red.

Examples:
  taskdag render tasks.yaml > tasks.dot
  taskdag render tasks.yaml -o tasks.svg
  taskdag render tasks.json -t png -o tasks.png --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.kind, "type", "t", "", "output type: dot, svg, png (default: from output extension, else dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show dependency counts in node labels")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, path string, opts renderOpts) error {
	kind, err := outputKind(opts.kind, opts.output)
	if err != nil {
		return err
	}

	g, err := c.loadGraph(path, opts.manifestOpts)
	if err != nil {
		return err
	}

	var spin *spinner
	if kind != outputDOT {
		spin = newSpinner(ctx, c.status, "Rendering "+kind+"...")
		spin.start()
	}
	data, err := renderGraph(ctx, g, kind, opts.detailed)
	if spin != nil {
		spin.stop()
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("rendered graph", "type", kind, "bytes", len(data))

	if opts.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(w, "Rendered %d tasks", g.NodeCount())
	printFile(w, opts.output)
	return nil
}

func renderGraph(ctx context.Context, g *taskgraph.Graph, kind string, detailed bool) ([]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{
		Detailed:  detailed,
		Highlight: g.CycleMembers(),
	})

	switch kind {
	case outputSVG:
		return nodelink.RenderSVG(ctx, dot)
	case outputPNG:
		return nodelink.RenderPNG(ctx, dot)
	default:
		return []byte(dot), nil
	}
}

// outputKind resolves the output type from the --type flag or, failing that,
// the output file extension.
func outputKind(kind, output string) (string, error) {
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if kind == "" || kind == "gv" {
			kind = outputDOT
		}
	}
	switch kind {
	case outputDOT, outputSVG, outputPNG:
		return kind, nil
	}
	return "", taskerrors.New(taskerrors.ErrCodeInvalidFormat, "unsupported output type %q (want dot, svg, or png)", kind)
}
