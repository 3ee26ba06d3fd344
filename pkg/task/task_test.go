package task

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	n, err := New("build")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if n.ID() != "build" {
		t.Errorf("ID() = %q, want %q", n.ID(), "build")
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
}

func TestNew_EmptyID(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("New(\"\") error = %v, want %v", err, ErrInvalidTaskID)
	}
}

func TestMustNew_PanicsOnEmptyID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew(\"\") should panic")
		}
	}()
	MustNew("")
}

func TestAddDependence_Chaining(t *testing.T) {
	n := MustNew("e")
	got := n.AddDependence("c").AddDependence("d")

	if got != n {
		t.Error("AddDependence should return the receiver")
	}
	if want := []string{"c", "d"}; !slices.Equal(n.Dependencies(), want) {
		t.Errorf("Dependencies() = %v, want %v", n.Dependencies(), want)
	}
}

func TestAddDependence_Idempotent(t *testing.T) {
	n := MustNew("e").AddDependence("c").AddDependence("c").AddDependence("c")

	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}
	if !n.HasDependence("c") {
		t.Error("HasDependence(c) = false, want true")
	}
}

func TestAddDependence_SelfIgnored(t *testing.T) {
	n := MustNew("a").AddDependence("a").AddDependence("b").AddDependence("a")

	if n.HasDependence("a") {
		t.Error("node must not depend on itself")
	}
	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1", n.Len())
	}
	if n.SelfReferences() != 2 {
		t.Errorf("SelfReferences() = %d, want 2", n.SelfReferences())
	}
}

func TestAddDependence_EmptyIgnored(t *testing.T) {
	n := MustNew("a").AddDependence("")
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
}

func TestDependencies_ReturnsCopy(t *testing.T) {
	n := MustNew("a").AddDependence("b")
	deps := n.Dependencies()
	deps[0] = "mutated"

	if !n.HasDependence("b") || n.HasDependence("mutated") {
		t.Error("modifying Dependencies() result must not affect the node")
	}
}

func TestAddDependence_Concurrent(t *testing.T) {
	n := MustNew("root")

	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter {
				n.AddDependence(fmt.Sprintf("w%d-%d", w, i))
				n.AddDependence("shared")
			}
		}()
	}
	wg.Wait()

	if want := writers*perWriter + 1; n.Len() != want {
		t.Errorf("Len() = %d, want %d", n.Len(), want)
	}
}

func TestIndex(t *testing.T) {
	a := MustNew("a")
	b := MustNew("b")
	m := Index(a, nil, b)

	if len(m) != 2 {
		t.Fatalf("len(Index()) = %d, want 2", len(m))
	}
	if m["a"] != a || m["b"] != b {
		t.Error("Index() should map each ID to its node")
	}
}

func TestIndex_LastWriteWins(t *testing.T) {
	first := MustNew("a").AddDependence("x")
	second := MustNew("a").AddDependence("y")

	m := Index(first, second)

	if len(m) != 1 {
		t.Fatalf("len(Index()) = %d, want 1", len(m))
	}
	if m["a"] != second {
		t.Error("Index() should keep the last node for a duplicate ID")
	}
}
