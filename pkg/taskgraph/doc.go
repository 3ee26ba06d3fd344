// Package taskgraph builds a directed graph from task dependencies and checks
// whether it is acyclic.
//
// # Overview
//
// A [Graph] has one vertex per task and an edge from each task to every task
// it depends on. [Build] constructs the graph from a complete identifier →
// [task.Node] mapping; every dependency must name a task in that mapping.
//
// # Cycle Detection
//
// [Graph.IsDAG] runs Kahn's algorithm: the in-degree of a vertex is the number
// of tasks that depend on it. Vertices with in-degree zero seed a FIFO queue;
// popping a vertex decrements the in-degree of each of its dependencies, and a
// dependency whose in-degree drops to zero is appended to the order and
// enqueued. The graph is acyclic exactly when every vertex was reached.
//
// [Graph.Sort] exposes the full [Result], including the vertices that were
// never reached. When the graph is cyclic, [Graph.CycleMembers] narrows those
// down to the vertices that lie on or between cycles and [Graph.FindCycle]
// returns one concrete cycle path.
//
// # Ordering
//
// Vertices are visited in insertion order; [Build] inserts them sorted by
// identifier, and dependencies of a vertex are always visited in sorted order,
// so results are reproducible from run to run.
//
// # Error Policy
//
//   - A dependency on an identifier that is not in the mapping fails the build
//     with an [*UnknownDependencyError].
//   - A task never depends on itself; self references are filtered.
//   - A mapping whose key differs from the node's own identifier is rejected
//     with [ErrKeyMismatch] so that no two vertices can share an identifier.
//
// # Example
//
//	tasks := task.Index(
//	    task.MustNew("a"),
//	    task.MustNew("b").AddDependence("a"),
//	)
//	g, err := taskgraph.Build(tasks)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.IsDAG()) // true
//
// [task.Node]: github.com/matzehuels/taskdag/pkg/task.Node
package taskgraph
