package taskgraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Print writes a dependency report to w: the task count, then for every
// vertex its direct dependencies and the tasks that directly depend on it.
// The layout is meant for people and may change.
func (g *Graph) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "tasks: %d\n", g.NodeCount())
	for _, id := range g.order {
		fmt.Fprintf(bw, "\n%s\n", id)
		fmt.Fprintf(bw, "  depends on:     %s\n", joinOrNone(g.Successors(id)))
		fmt.Fprintf(bw, "  depended on by: %s\n", joinOrNone(g.Predecessors(id)))
	}
	return bw.Flush()
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
