package taskgraph

import (
	"errors"
	"fmt"
	"strings"

	taskerrors "github.com/matzehuels/taskdag/pkg/errors"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddVertex] when the identifier
	// is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From
	// vertex does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To vertex
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when From and To are equal.
	ErrSelfLoop = errors.New("self-loop edges are not allowed")

	// ErrNilTask is returned by [Build] when the mapping holds a nil node.
	ErrNilTask = errors.New("nil task")

	// ErrKeyMismatch is returned by [Build] when a mapping key differs from the
	// identifier of the node stored under it.
	ErrKeyMismatch = errors.New("mapping key does not match task ID")

	// ErrUnknownDependency is matched by [*UnknownDependencyError].
	ErrUnknownDependency = errors.New("unknown dependency")

	// ErrGraphHasCycle is matched by [*CycleError].
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// UnknownDependencyError reports a dependency on a task that is not part of
// the mapping passed to [Build].
type UnknownDependencyError struct {
	Task       string // Task declaring the dependency
	Dependency string // Missing dependency ID
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("task %q depends on unknown task %q", e.Task, e.Dependency)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrUnknownDependency }

// Code returns the machine-readable error code.
func (e *UnknownDependencyError) Code() taskerrors.Code {
	return taskerrors.ErrCodeUnknownDependency
}

// CycleError reports that the graph is not acyclic.
type CycleError struct {
	// Members are the vertices lying on or between cycles, sorted.
	Members []string
	// Path is one concrete cycle, first element repeated at the end.
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("%s: %s", ErrGraphHasCycle, strings.Join(e.Path, " -> "))
	}
	return fmt.Sprintf("%s among %v", ErrGraphHasCycle, e.Members)
}

func (e *CycleError) Unwrap() error { return ErrGraphHasCycle }

// Code returns the machine-readable error code.
func (e *CycleError) Code() taskerrors.Code {
	return taskerrors.ErrCodeCycleDetected
}
