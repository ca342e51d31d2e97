package reflection

import (
	"reflect"
	"testing"

	"github.com/taskreflect/taskreflect/internal/errors"
)

func TestDefaultScoringConfig(t *testing.T) {
	cfg := DefaultScoringConfig()

	if cfg.BaseWeights[TypeDocumentation] != 0.8 {
		t.Errorf("doc base = %v, want 0.8", cfg.BaseWeights[TypeDocumentation])
	}
	if cfg.BaseWeights[TypeIntegration] != 1.2 {
		t.Errorf("mcp base = %v, want 1.2", cfg.BaseWeights[TypeIntegration])
	}
	if cfg.DepWeight != 0.2 || cfg.DependentWeight != 0.1 {
		t.Errorf("edge weights = %v/%v, want 0.2/0.1", cfg.DepWeight, cfg.DependentWeight)
	}
	if cfg.Min != 0.8 || cfg.Max != 3.0 {
		t.Errorf("clamp range = [%v, %v], want [0.8, 3.0]", cfg.Min, cfg.Max)
	}
	if len(cfg.Keywords) != 8 {
		t.Errorf("got %d keywords, want 8", len(cfg.Keywords))
	}
	if cfg.Keywords[0].Word != "complex" || cfg.Keywords[0].Bonus != 0.3 {
		t.Errorf("first keyword = %+v, want complex/0.3", cfg.Keywords[0])
	}
}

func TestScore_BaseWeights(t *testing.T) {
	tests := []struct {
		typ  string
		want float64
	}{
		{typ: "doc", want: 0.8},
		{typ: "cli", want: 0.9},
		{typ: "config", want: 0.9},
		{typ: "code", want: 1.0},
		{typ: "ide", want: 1.0},
		{typ: "mcp", want: 1.2},
		{typ: "test", want: 1.1},
		{typ: "something-else", want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			g := mustGraph(t, task("solo", tt.typ))
			scores, err := Score(g, DefaultScoringConfig())
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if scores["solo"] != tt.want {
				t.Errorf("score = %v, want %v", scores["solo"], tt.want)
			}
		})
	}
}

func TestScore_GoldenScenario(t *testing.T) {
	scores, err := Score(goldenGraph(t), DefaultScoringConfig())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	want := map[string]float64{
		"a": 1.2, // code base plus two dependents
		"b": 1.1, // config base plus one dependency
		"c": 1.2, // cli base plus one dependency and one dependent
		"d": 1.5, // integration base plus one dependency and one dependent
		"e": 1.2, // ide base plus one dependency
	}
	if !reflect.DeepEqual(scores, want) {
		t.Errorf("scores = %v, want %v", scores, want)
	}

	if scores["d"] <= scores["b"] || scores["d"] <= scores["c"] {
		t.Errorf("integration task d (%v) should outrank config b (%v) and cli c (%v)",
			scores["d"], scores["b"], scores["c"])
	}
}

func TestScore_KeywordBonuses(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  float64
	}{
		{name: "no keywords", title: "Build the widget", want: 1.0},
		{name: "single keyword", title: "Complex widget", want: 1.3},
		{name: "case insensitive", title: "ADVANCED widget", want: 1.2},
		{name: "stacked keywords", title: "Complex integration validation", want: 1.6},
		{name: "keyword inside word", title: "Reflections on widgets", want: 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, titled(task("solo", "code"), tt.title))
			scores, err := Score(g, DefaultScoringConfig())
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if scores["solo"] != tt.want {
				t.Errorf("score for %q = %v, want %v", tt.title, scores["solo"], tt.want)
			}
		})
	}
}

func TestScore_ClampCeiling(t *testing.T) {
	tasks := []Task{titled(task("hub", "mcp", "d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9"), "Complex advanced integration optimization")}
	for _, id := range []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9"} {
		tasks = append(tasks, task(id, "code"))
	}
	g := mustGraph(t, tasks...)

	scores, err := Score(g, DefaultScoringConfig())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if scores["hub"] != 3.0 {
		t.Errorf("score = %v, want ceiling 3.0", scores["hub"])
	}
}

func TestScore_ClampFloor(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.Min = 1.0

	g := mustGraph(t, task("solo", "doc"))
	scores, err := Score(g, cfg)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if scores["solo"] != 1.0 {
		t.Errorf("score = %v, want floor 1.0", scores["solo"])
	}
}

func TestScore_MonotonicInDependencies(t *testing.T) {
	base := mustGraph(t,
		task("x", "code"),
		task("p", "code"),
		task("q", "code"),
	)
	withDep := mustGraph(t,
		task("x", "code", "p"),
		task("p", "code"),
		task("q", "code"),
	)
	withTwo := mustGraph(t,
		task("x", "code", "p", "q"),
		task("p", "code"),
		task("q", "code"),
	)

	cfg := DefaultScoringConfig()
	s0, _ := Score(base, cfg)
	s1, _ := Score(withDep, cfg)
	s2, _ := Score(withTwo, cfg)

	if s1["x"] < s0["x"] || s2["x"] < s1["x"] {
		t.Errorf("score decreased as dependencies grew: %v -> %v -> %v", s0["x"], s1["x"], s2["x"])
	}
}

func TestScore_InvalidGraph(t *testing.T) {
	g := mustGraph(t, task("a", "code", "ghost"))

	scores, err := Score(g, DefaultScoringConfig())
	if scores != nil {
		t.Errorf("scores = %v, want nil on invalid graph", scores)
	}
	if !errors.Is(err, errors.ErrMissingDependency) {
		t.Errorf("error = %v, want ErrMissingDependency", err)
	}
}

func TestScore_Deterministic(t *testing.T) {
	g := goldenGraph(t)
	cfg := DefaultScoringConfig()

	first, err := Score(g, cfg)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Score(g, cfg)
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}
