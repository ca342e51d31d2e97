package reflection

import (
	"testing"

	"github.com/taskreflect/taskreflect/internal/errors"
)

func TestTopologicalOrder_Golden(t *testing.T) {
	order, err := TopologicalOrder(goldenGraph(t))
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}
	if !equalStrings(order, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("order = %v, want [a b c d e]", order)
	}
}

func TestTopologicalOrder_EmptyGraph(t *testing.T) {
	order, err := TopologicalOrder(TaskGraph{})
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}
	if len(order) != 0 {
		t.Errorf("order = %v, want empty", order)
	}
}

func TestTopologicalOrder_SingleTask(t *testing.T) {
	order, err := TopologicalOrder(mustGraph(t, task("only", "code")))
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}
	if !equalStrings(order, []string{"only"}) {
		t.Errorf("order = %v, want [only]", order)
	}
}

func TestTopologicalOrder_TieBreakOneAtATime(t *testing.T) {
	// After a is emitted, b becomes ready and must run before the
	// independent c: the smallest ready id wins at every single step, not
	// per wave.
	g := mustGraph(t,
		task("a", "code"),
		task("b", "code", "a"),
		task("c", "code"),
	)

	order, err := TopologicalOrder(g)
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}
	if !equalStrings(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestTopologicalOrder_LexicographicAmongReady(t *testing.T) {
	g := mustGraph(t,
		task("z", "code"),
		task("m", "code"),
		task("a", "code"),
	)

	order, err := TopologicalOrder(g)
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}
	if !equalStrings(order, []string{"a", "m", "z"}) {
		t.Errorf("order = %v, want [a m z]", order)
	}
}

func TestTopologicalOrder_DependenciesComeFirst(t *testing.T) {
	g := mustGraph(t,
		task("app", "code", "lib", "proto"),
		task("lib", "code", "proto"),
		task("proto", "code"),
		task("docs", "doc", "app"),
		task("bench", "test", "lib"),
	)

	order, err := TopologicalOrder(g)
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}

	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i
	}
	for _, id := range g.IDs() {
		for _, dep := range g[id].Deps {
			if position[dep] >= position[id] {
				t.Errorf("dependency %s of %s ordered at %d, after %d", dep, id, position[dep], position[id])
			}
		}
	}
}

func TestTopologicalOrder_Cycle(t *testing.T) {
	g := mustGraph(t,
		task("a", "code", "b"),
		task("b", "code", "a"),
	)

	order, err := TopologicalOrder(g)
	if order != nil {
		t.Errorf("order = %v, want nil on cyclic graph", order)
	}
	if !errors.Is(err, errors.ErrDependencyCycle) {
		t.Errorf("error = %v, want ErrDependencyCycle", err)
	}
}

func TestTopologicalOrder_MissingDependency(t *testing.T) {
	g := mustGraph(t, task("a", "code", "ghost"))

	_, err := TopologicalOrder(g)
	if !errors.Is(err, errors.ErrMissingDependency) {
		t.Errorf("error = %v, want ErrMissingDependency", err)
	}
}

func TestTopologicalOrder_Deterministic(t *testing.T) {
	first, err := TopologicalOrder(goldenGraph(t))
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := TopologicalOrder(goldenGraph(t))
		if err != nil {
			t.Fatalf("TopologicalOrder() error = %v", err)
		}
		if !equalStrings(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestInsertSorted(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		id   string
		want []string
	}{
		{name: "into empty", ids: nil, id: "m", want: []string{"m"}},
		{name: "at front", ids: []string{"b", "c"}, id: "a", want: []string{"a", "b", "c"}},
		{name: "in middle", ids: []string{"a", "c"}, id: "b", want: []string{"a", "b", "c"}},
		{name: "at end", ids: []string{"a", "b"}, id: "z", want: []string{"a", "b", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := insertSorted(tt.ids, tt.id); !equalStrings(got, tt.want) {
				t.Errorf("insertSorted(%v, %q) = %v, want %v", tt.ids, tt.id, got, tt.want)
			}
		})
	}
}
