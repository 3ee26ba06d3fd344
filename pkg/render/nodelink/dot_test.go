package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	taskerrors "github.com/matzehuels/taskdag/pkg/errors"
	"github.com/matzehuels/taskdag/pkg/task"
	"github.com/matzehuels/taskdag/pkg/taskgraph"
)

func buildGraph(t *testing.T, nodes ...*task.Node) *taskgraph.Graph {
	t.Helper()
	g, err := taskgraph.Build(task.Index(nodes...))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func TestToDOT_Basic(t *testing.T) {
	g := buildGraph(t, task.MustNew("a").AddDependence("b"), task.MustNew("b"))

	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"a"`) {
		t.Error("ToDOT() output missing node a")
	}
	if !strings.Contains(dot, `"b"`) {
		t.Error("ToDOT() output missing node b")
	}
	if !strings.Contains(dot, `"a" -> "b";`) {
		t.Error("ToDOT() output missing edge")
	}
	if strings.Contains(dot, "red") {
		t.Error("ToDOT() should not highlight anything by default")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := buildGraph(t, task.MustNew("a").AddDependence("b"), task.MustNew("b"))

	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, `a\ndeps: 1\ndependents: 0`) {
		t.Errorf("ToDOT() detailed output missing degree info:\n%s", dot)
	}
}

func TestToDOT_Highlight(t *testing.T) {
	g := buildGraph(t,
		task.MustNew("x").AddDependence("y"),
		task.MustNew("y").AddDependence("x").AddDependence("z"),
		task.MustNew("z"),
	)

	dot := ToDOT(g, Options{Highlight: g.CycleMembers()})

	if !strings.Contains(dot, `"x" -> "y" [color=red, penwidth=2];`) {
		t.Error("ToDOT() should highlight edges inside the cycle")
	}
	if !strings.Contains(dot, `"y" -> "z";`) {
		t.Error("ToDOT() should leave edges leaving the cycle plain")
	}
	if !strings.Contains(dot, `"z" [label="z"];`) {
		t.Error("ToDOT() should leave z plain")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00"><g/></svg>`)
	out := normalizeViewBox(in)

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200">`
	if !bytes.HasPrefix(out, []byte(want)) {
		t.Errorf("normalizeViewBox() = %s, want prefix %s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz rendering in short mode")
	}
	g := buildGraph(t, task.MustNew("a").AddDependence("b"), task.MustNew("b"))

	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("RenderSVG() output is not SVG")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz rendering in short mode")
	}

	_, err := RenderSVG(context.Background(), "digraph G { a -> ")
	if !taskerrors.Is(err, taskerrors.ErrCodeInternal) {
		t.Errorf("RenderSVG(invalid) error = %v, want code %s", err, taskerrors.ErrCodeInternal)
	}
}
