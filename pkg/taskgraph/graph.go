package taskgraph

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/taskdag/pkg/task"
)

// Edge is a directed edge from a task to one of its dependencies.
type Edge struct {
	From string // Dependent task ID
	To   string // Dependency task ID
}

// Graph is a directed graph of tasks. An edge From → To means From depends
// on To.
//
// The zero value is not usable - use New or Build. Graph is not safe for
// concurrent mutation; concurrent read-only queries are fine once building
// has finished.
type Graph struct {
	order    []string                       // vertex IDs in insertion order
	outgoing map[string]map[string]struct{} // task -> dependencies
	incoming map[string]map[string]struct{} // task -> dependents
	deps     map[string][]string            // task -> dependencies, sorted
	edges    int
	logger   *log.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for debug output while building and
// sorting. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		outgoing: make(map[string]map[string]struct{}),
		incoming: make(map[string]map[string]struct{}),
		deps:     make(map[string][]string),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build creates a graph from a complete identifier → task mapping.
//
// Every task becomes a vertex, inserted in ascending identifier order. For
// each dependency of each task, an edge is added from the task to the task
// registered under the dependency identifier. Self references are skipped.
//
// Build fails with an [*UnknownDependencyError] if a dependency is missing
// from tasks, with [ErrNilTask] if a value is nil, and with [ErrKeyMismatch]
// if a key differs from its node's ID. No partial graph is returned.
func Build(tasks map[string]*task.Node, opts ...Option) (*Graph, error) {
	g := New(opts...)
	ids := slices.Sorted(maps.Keys(tasks))

	for _, id := range ids {
		n := tasks[id]
		if n == nil {
			return nil, fmt.Errorf("task %q: %w", id, ErrNilTask)
		}
		if n.ID() != id {
			return nil, fmt.Errorf("task %q registered under %q: %w", n.ID(), id, ErrKeyMismatch)
		}
		if err := g.AddVertex(id); err != nil {
			return nil, fmt.Errorf("task %q: %w", id, err)
		}
	}

	for _, id := range ids {
		for _, dep := range tasks[id].Dependencies() {
			if dep == id {
				g.logger.Debug("skipping self dependency", "task", id)
				continue
			}
			if target, ok := tasks[dep]; !ok || target == nil {
				return nil, &UnknownDependencyError{Task: id, Dependency: dep}
			}
			if err := g.AddEdge(id, dep); err != nil {
				return nil, fmt.Errorf("edge %s->%s: %w", id, dep, err)
			}
		}
	}

	g.logger.Debug("built task graph", "tasks", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// AddVertex adds a vertex for the task id. Adding an existing vertex is a
// no-op. Returns ErrInvalidNodeID if id is empty.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.outgoing[id]; ok {
		return nil
	}
	g.order = append(g.order, id)
	g.outgoing[id] = make(map[string]struct{})
	g.incoming[id] = make(map[string]struct{})
	return nil
}

// AddEdge adds the edge from → to, meaning from depends on to.
// Both vertices must exist. Adding an existing edge is a no-op.
// Returns ErrSelfLoop if from == to.
func (g *Graph) AddEdge(from, to string) error {
	if from == to {
		return ErrSelfLoop
	}
	if _, ok := g.outgoing[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.outgoing[to]; !ok {
		return ErrUnknownTargetNode
	}
	if _, ok := g.outgoing[from][to]; ok {
		return nil
	}
	g.outgoing[from][to] = struct{}{}
	g.incoming[to][from] = struct{}{}
	i, _ := slices.BinarySearch(g.deps[from], to)
	g.deps[from] = slices.Insert(g.deps[from], i, to)
	g.edges++
	g.logger.Debug("add edge", "from", from, "to", to)
	return nil
}

// Nodes returns all vertex IDs in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// NodeCount returns the number of vertices.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// HasNode reports whether id is a vertex.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.outgoing[id]
	return ok
}

// HasEdge reports whether the edge from → to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.outgoing[from][to]
	return ok
}

// Successors returns the tasks id depends on, sorted.
// Returns nil if id has no dependencies or doesn't exist.
func (g *Graph) Successors(id string) []string { return slices.Clone(g.deps[id]) }

// Predecessors returns the tasks that depend on id, sorted.
// Returns nil if nothing depends on id or id doesn't exist.
func (g *Graph) Predecessors(id string) []string { return sortedSet(g.incoming[id]) }

// OutDegree returns the number of dependencies of id.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of tasks depending on id.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns tasks nothing depends on, in vertex order.
// These seed the Kahn queue.
func (g *Graph) Sources() []string {
	var ids []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Sinks returns tasks with no dependencies, in vertex order.
func (g *Graph) Sinks() []string {
	var ids []string
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Edges returns all edges ordered by source vertex order, then target ID.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for _, from := range g.order {
		for _, to := range g.deps[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

func sortedSet(s map[string]struct{}) []string {
	if len(s) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(s))
}
