package task

import (
	"errors"
	"maps"
	"slices"
	"sync"
)

// ErrInvalidTaskID is returned by [New] when the identifier is empty.
var ErrInvalidTaskID = errors.New("task ID must not be empty")

// Node is a named task and the set of task identifiers it depends on.
//
// The identifier is fixed at construction. The dependency set may be extended
// concurrently with [Node.AddDependence]; readers should wait until population
// has finished before building a graph from the node.
//
// The zero value is not usable - use New or MustNew.
type Node struct {
	id string

	mu       sync.RWMutex
	deps     map[string]struct{}
	selfRefs int
}

// New creates a node with the given identifier and no dependencies.
// Returns ErrInvalidTaskID if id is empty.
func New(id string) (*Node, error) {
	if id == "" {
		return nil, ErrInvalidTaskID
	}
	return &Node{id: id, deps: make(map[string]struct{})}, nil
}

// MustNew is like New but panics on an empty identifier.
// It is intended for fixtures and literal task definitions.
func MustNew(id string) *Node {
	n, err := New(id)
	if err != nil {
		panic(err)
	}
	return n
}

// ID returns the task identifier.
func (n *Node) ID() string { return n.id }

// AddDependence records that n depends on the task identified by id and
// returns n so calls can be chained.
//
// Adding the same identifier twice has no further effect. Adding n's own
// identifier is ignored and counted in SelfReferences. The identifier is not
// checked against other tasks; unknown references are reported when the graph
// is built. Empty identifiers are ignored.
func (n *Node) AddDependence(id string) *Node {
	if id == "" {
		return n
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if id == n.id {
		n.selfRefs++
		return n
	}
	n.deps[id] = struct{}{}
	return n
}

// Dependencies returns the dependency identifiers sorted ascending.
// The returned slice is a copy and may be modified freely.
func (n *Node) Dependencies() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Sorted(maps.Keys(n.deps))
}

// HasDependence reports whether id is in n's dependency set.
func (n *Node) HasDependence(id string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.deps[id]
	return ok
}

// Len returns the number of distinct dependencies.
func (n *Node) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.deps)
}

// SelfReferences returns how many times AddDependence was called with n's
// own identifier.
func (n *Node) SelfReferences() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.selfRefs
}

// String returns the task identifier.
func (n *Node) String() string { return n.id }

// Index builds the identifier → node mapping consumed by the graph builder.
// Nil nodes are skipped. When two nodes share an identifier the one appearing
// later in nodes wins.
func Index(nodes ...*Node) map[string]*Node {
	m := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		m[n.id] = n
	}
	return m
}
