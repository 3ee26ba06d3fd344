package taskgraph

import (
	"slices"
)

// Result is the outcome of Kahn's algorithm on a graph.
type Result struct {
	// Order lists reached vertices in the order they reached in-degree zero.
	// Dependents come before their dependencies.
	Order []string
	// Unreached lists, sorted, the vertices whose in-degree never reached
	// zero. It is empty for an acyclic graph; otherwise it contains every
	// vertex on a cycle plus everything those vertices depend on.
	Unreached []string
}

// Acyclic reports whether every vertex was reached.
func (r Result) Acyclic() bool { return len(r.Unreached) == 0 }

// Sort runs Kahn's algorithm and returns the resulting order.
//
// The in-degree of a vertex is the number of tasks depending on it. All
// vertices with in-degree zero are queued, in vertex order, and appended to
// the order. The queue is then drained FIFO: each dependency of the popped
// vertex has its in-degree decremented, and when it reaches exactly zero the
// dependency is appended and queued.
//
// Sort does not modify the graph and returns the same result on every call.
// It runs in O(V + E).
func (g *Graph) Sort() Result {
	inDegree := make(map[string]int, len(g.order))
	queue := make([]string, 0, len(g.order))
	order := make([]string, 0, len(g.order))

	for _, id := range g.order {
		deg := len(g.incoming[id])
		inDegree[id] = deg
		if deg == 0 {
			queue = append(queue, id)
			order = append(order, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, succ := range g.deps[id] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
				order = append(order, succ)
			}
		}
	}

	var unreached []string
	if len(order) != len(g.order) {
		for _, id := range g.order {
			if inDegree[id] > 0 {
				unreached = append(unreached, id)
			}
		}
		slices.Sort(unreached)
	}

	g.logger.Debug("topological sort", "reached", len(order), "total", len(g.order))
	return Result{Order: order, Unreached: unreached}
}

// IsDAG reports whether the graph is a directed acyclic graph: Kahn's
// algorithm reaches every vertex.
func (g *Graph) IsDAG() bool {
	return len(g.Sort().Order) == g.NodeCount()
}

// TopologicalOrder returns the Kahn order, dependents first, or a
// [*CycleError] if the graph is cyclic.
func (g *Graph) TopologicalOrder() ([]string, error) {
	r := g.Sort()
	if !r.Acyclic() {
		return nil, g.cycleError(r)
	}
	return r.Order, nil
}

// ExecutionOrder returns the tasks with every dependency listed before the
// tasks that need it, or a [*CycleError] if the graph is cyclic.
func (g *Graph) ExecutionOrder() ([]string, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	slices.Reverse(order)
	return order, nil
}

// Validate returns nil if the graph is acyclic and a [*CycleError]
// otherwise.
func (g *Graph) Validate() error {
	r := g.Sort()
	if r.Acyclic() {
		return nil
	}
	return g.cycleError(r)
}

func (g *Graph) cycleError(r Result) *CycleError {
	members := g.prune(r.Unreached)
	return &CycleError{Members: members, Path: g.findCycle(members)}
}

// CycleMembers returns, sorted, the vertices lying on a cycle or on a path
// between cycles. Returns nil for an acyclic graph.
func (g *Graph) CycleMembers() []string {
	return g.prune(g.Sort().Unreached)
}

// FindCycle returns one cycle as a path whose first vertex is repeated at the
// end, for example [b e d b]. Returns nil for an acyclic graph.
func (g *Graph) FindCycle() []string {
	return g.findCycle(g.CycleMembers())
}

// prune removes, from the residual left by Sort, every vertex with no
// dependency inside the residual, repeating until none remain. Sort already
// removed everything nothing depends on, so what survives lies on or between
// cycles.
func (g *Graph) prune(residual []string) []string {
	if len(residual) == 0 {
		return nil
	}
	in := make(map[string]bool, len(residual))
	for _, id := range residual {
		in[id] = true
	}

	outDegree := make(map[string]int, len(residual))
	var queue []string
	for _, id := range residual {
		for succ := range g.outgoing[id] {
			if in[succ] {
				outDegree[id]++
			}
		}
		if outDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		delete(in, id)
		for pred := range g.incoming[id] {
			if !in[pred] {
				continue
			}
			outDegree[pred]--
			if outDegree[pred] == 0 {
				queue = append(queue, pred)
			}
		}
	}

	var members []string
	for _, id := range residual {
		if in[id] {
			members = append(members, id)
		}
	}
	return members
}

// findCycle walks the subgraph induced by members depth-first, with
// white/gray/black colouring, and returns the first cycle closed by a gray
// vertex.
func (g *Graph) findCycle(members []string) []string {
	if len(members) == 0 {
		return nil
	}
	const (
		white = iota
		gray
		black
	)

	in := make(map[string]bool, len(members))
	for _, id := range members {
		in[id] = true
	}
	color := make(map[string]int, len(members))
	var path, cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		for _, succ := range g.deps[id] {
			if !in[succ] {
				continue
			}
			switch color[succ] {
			case white:
				if dfs(succ) {
					return true
				}
			case gray:
				start := slices.Index(path, succ)
				cycle = append(slices.Clone(path[start:]), succ)
				return true
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	for _, id := range members {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}
