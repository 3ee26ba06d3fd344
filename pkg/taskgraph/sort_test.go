package taskgraph

import (
	"errors"
	"slices"
	"testing"

	taskerrors "github.com/matzehuels/taskdag/pkg/errors"
	"github.com/matzehuels/taskdag/pkg/task"
)

func TestIsDAG_Independent(t *testing.T) {
	g := mustBuild(t, task.Index(task.MustNew("a"), task.MustNew("b")))

	if !g.IsDAG() {
		t.Error("IsDAG() = false, want true")
	}
}

func TestIsDAG_Pipeline(t *testing.T) {
	g := mustBuild(t, pipeline())

	if !g.IsDAG() {
		t.Error("IsDAG() = false, want true")
	}
	r := g.Sort()
	if len(r.Order) != 7 {
		t.Errorf("len(Order) = %d, want 7", len(r.Order))
	}
	if want := []string{"f", "g", "e", "c", "d", "a", "b"}; !slices.Equal(r.Order, want) {
		t.Errorf("Order = %v, want %v", r.Order, want)
	}
	if !r.Acyclic() {
		t.Errorf("Unreached = %v, want empty", r.Unreached)
	}
}

func TestIsDAG_Cycle(t *testing.T) {
	tasks := pipeline()
	tasks["b"].AddDependence("e")
	g := mustBuild(t, tasks)

	if g.IsDAG() {
		t.Error("IsDAG() = true, want false")
	}

	r := g.Sort()
	if len(r.Order) >= g.NodeCount() {
		t.Errorf("len(Order) = %d, want < %d", len(r.Order), g.NodeCount())
	}
	if want := []string{"a", "b", "c", "d", "e"}; !slices.Equal(r.Unreached, want) {
		t.Errorf("Unreached = %v, want %v", r.Unreached, want)
	}
	if want := []string{"b", "d", "e"}; !slices.Equal(g.CycleMembers(), want) {
		t.Errorf("CycleMembers() = %v, want %v", g.CycleMembers(), want)
	}
	if want := []string{"b", "e", "d", "b"}; !slices.Equal(g.FindCycle(), want) {
		t.Errorf("FindCycle() = %v, want %v", g.FindCycle(), want)
	}
}

func TestIsDAG_Idempotent(t *testing.T) {
	acyclic := mustBuild(t, pipeline())
	cyclicTasks := pipeline()
	cyclicTasks["a"].AddDependence("f")
	cyclic := mustBuild(t, cyclicTasks)

	for range 5 {
		if !acyclic.IsDAG() {
			t.Fatal("acyclic IsDAG() changed between calls")
		}
		if cyclic.IsDAG() {
			t.Fatal("cyclic IsDAG() changed between calls")
		}
	}
	if !slices.Equal(acyclic.Sort().Order, acyclic.Sort().Order) {
		t.Error("Sort() should be deterministic")
	}
}

func TestIsDAG_ClosingCycleFlipsResult(t *testing.T) {
	tasks := task.Index(
		task.MustNew("x").AddDependence("y"),
		task.MustNew("y").AddDependence("z"),
		task.MustNew("z"),
	)
	if !mustBuild(t, tasks).IsDAG() {
		t.Fatal("chain should be a DAG")
	}

	tasks["z"].AddDependence("x")
	if mustBuild(t, tasks).IsDAG() {
		t.Error("closing the chain should make IsDAG() false")
	}
}

func TestIsDAG_NoEdges(t *testing.T) {
	var nodes []*task.Node
	for _, id := range []string{"p", "q", "r", "s"} {
		nodes = append(nodes, task.MustNew(id))
	}
	g := mustBuild(t, task.Index(nodes...))

	r := g.Sort()
	if !g.IsDAG() {
		t.Error("IsDAG() = false, want true")
	}
	if want := []string{"p", "q", "r", "s"}; !slices.Equal(r.Order, want) {
		t.Errorf("Order = %v, want every vertex once: %v", r.Order, want)
	}
}

func TestIsDAG_TwoNodeCycle(t *testing.T) {
	tasks := task.Index(
		task.MustNew("a").AddDependence("b"),
		task.MustNew("b").AddDependence("a"),
	)
	g := mustBuild(t, tasks)

	if g.IsDAG() {
		t.Error("IsDAG() = true, want false")
	}
	if r := g.Sort(); len(r.Order) != 0 {
		t.Errorf("Order = %v, want empty", r.Order)
	}
	if want := []string{"a", "b", "a"}; !slices.Equal(g.FindCycle(), want) {
		t.Errorf("FindCycle() = %v, want %v", g.FindCycle(), want)
	}
}

func TestCycleMembers_BetweenCycles(t *testing.T) {
	// a <-> b, b -> m, m -> c, c <-> d, d -> tail
	tasks := task.Index(
		task.MustNew("a").AddDependence("b"),
		task.MustNew("b").AddDependence("a").AddDependence("m"),
		task.MustNew("m").AddDependence("c"),
		task.MustNew("c").AddDependence("d"),
		task.MustNew("d").AddDependence("c").AddDependence("tail"),
		task.MustNew("tail"),
	)
	g := mustBuild(t, tasks)

	if want := []string{"a", "b", "c", "d", "m"}; !slices.Equal(g.CycleMembers(), want) {
		t.Errorf("CycleMembers() = %v, want %v", g.CycleMembers(), want)
	}
}

func TestCycleMembers_Acyclic(t *testing.T) {
	g := mustBuild(t, pipeline())

	if got := g.CycleMembers(); got != nil {
		t.Errorf("CycleMembers() = %v, want nil", got)
	}
	if got := g.FindCycle(); got != nil {
		t.Errorf("FindCycle() = %v, want nil", got)
	}
}

func TestValidate(t *testing.T) {
	if err := mustBuild(t, pipeline()).Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	tasks := pipeline()
	tasks["b"].AddDependence("e")
	err := mustBuild(t, tasks).Validate()

	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("Validate() error = %v, want *CycleError", err)
	}
	if !errors.Is(err, ErrGraphHasCycle) {
		t.Error("errors.Is(err, ErrGraphHasCycle) = false, want true")
	}
	if !taskerrors.Is(err, taskerrors.ErrCodeCycleDetected) {
		t.Errorf("code = %q, want %q", taskerrors.GetCode(err), taskerrors.ErrCodeCycleDetected)
	}
	if want := "graph contains a cycle: b -> e -> d -> b"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := mustBuild(t, pipeline())

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder() error: %v", err)
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("dependent %s placed after dependency %s", e.From, e.To)
		}
	}
}

func TestExecutionOrder(t *testing.T) {
	g := mustBuild(t, pipeline())

	order, err := g.ExecutionOrder()
	if err != nil {
		t.Fatalf("ExecutionOrder() error: %v", err)
	}
	if want := []string{"b", "a", "d", "c", "e", "g", "f"}; !slices.Equal(order, want) {
		t.Errorf("ExecutionOrder() = %v, want %v", order, want)
	}

	tasks := pipeline()
	tasks["a"].AddDependence("g")
	if _, err := mustBuild(t, tasks).ExecutionOrder(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("ExecutionOrder() error = %v, want %v", err, ErrGraphHasCycle)
	}
}
