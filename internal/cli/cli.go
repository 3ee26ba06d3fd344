// Package cli implements the taskdag command-line interface.
//
// The CLI loads task manifests (JSON, TOML, or YAML), builds the task graph,
// and reports whether it is acyclic. It is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - check: Exit non-zero if the task graph contains a cycle
//   - order: Print tasks in dependency order
//   - print: Print each task's dependencies and dependents
//   - render: Draw the task graph as DOT, SVG, or PNG
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taskdag/pkg/buildinfo"
	taskerrors "github.com/matzehuels/taskdag/pkg/errors"
	"github.com/matzehuels/taskdag/pkg/manifest"
	"github.com/matzehuels/taskdag/pkg/task"
	"github.com/matzehuels/taskdag/pkg/taskgraph"
)

// appName is the application name used for display.
const appName = "taskdag"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	status io.Writer // spinner output; shares the logger's writer
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "taskdag validates task dependency graphs",
		Long:          `taskdag reads a manifest of tasks and their dependencies, builds the dependency graph, and checks that it is a directed acyclic graph.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.printCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// manifestOpts holds flags shared by every command that reads a manifest.
type manifestOpts struct {
	format string // explicit manifest format; inferred from extension if empty
	strict bool   // reject self dependencies instead of ignoring them
}

func (o *manifestOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "manifest format: json, toml, yaml (default: from extension)")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail on tasks that depend on themselves")
}

// loadGraph reads the manifest at path and builds its task graph.
func (c *CLI) loadGraph(path string, opts manifestOpts) (*taskgraph.Graph, error) {
	prog := newProgress(c.Logger)

	tasks, err := c.loadTasks(path, opts)
	if err != nil {
		return nil, err
	}
	for _, id := range slices.Sorted(maps.Keys(tasks)) {
		if tasks[id].SelfReferences() == 0 {
			continue
		}
		if opts.strict {
			return nil, taskerrors.New(taskerrors.ErrCodeInvalidTask, "task %q depends on itself", id)
		}
		c.Logger.Warn("ignoring self dependency", "task", id)
	}

	g, err := taskgraph.Build(tasks, taskgraph.WithLogger(c.Logger))
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	prog.done(fmt.Sprintf("Loaded %d tasks from %s", g.NodeCount(), path))
	return g, nil
}

func (c *CLI) loadTasks(path string, opts manifestOpts) (map[string]*task.Node, error) {
	if opts.format == "" {
		return manifest.Load(path)
	}
	format, err := manifest.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	return manifest.LoadAs(path, format)
}
