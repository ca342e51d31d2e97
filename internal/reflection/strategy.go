package reflection

import (
	"sort"
	"strings"

	"github.com/taskreflect/taskreflect/internal/errors"
)

// Strategy selects how ready tasks are prioritized when building a dispatch
// order. Every strategy still respects dependencies; it only decides which
// ready task goes first.
type Strategy string

const (
	// StrategyDependency dispatches ready tasks in id order.
	StrategyDependency Strategy = "dependency"
	// StrategyComplexity dispatches the hardest ready task first, front
	// loading the work most likely to overrun.
	StrategyComplexity Strategy = "complexity"
	// StrategyEfficiency dispatches parallelizable ready tasks first so
	// downstream workers saturate early, hardest first within each class.
	StrategyEfficiency Strategy = "efficiency"
)

// Strategies lists the supported strategies in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyDependency, StrategyComplexity, StrategyEfficiency}
}

// ParseStrategy resolves a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyDependency:
		return StrategyDependency, nil
	case StrategyComplexity:
		return StrategyComplexity, nil
	case StrategyEfficiency:
		return StrategyEfficiency, nil
	default:
		return "", errors.NewValidationError("unknown strategy, expected dependency, complexity or efficiency").
			WithField("strategy").
			WithValue(s)
	}
}

// DispatchOrder produces a dependency-respecting dispatch sequence where the
// next task among the ready set is chosen by the strategy, falling back to
// the smallest id on ties. Scores are consulted by the complexity and
// efficiency strategies; passing the scores from a reflection pass keeps the
// sequence consistent with the persisted complexities. The policy decides
// which task types the efficiency strategy treats as parallelizable; nil
// falls back to DefaultParallelPolicy. The graph must be structurally valid;
// defects surface as the corresponding typed error.
func DispatchOrder(g TaskGraph, scores map[string]float64, policy ParallelPolicy, strategy Strategy) ([]string, error) {
	if err := Validate(g).Err(); err != nil {
		return nil, err
	}
	if policy == nil {
		policy = DefaultParallelPolicy()
	}

	indegree := make(map[string]int, len(g))
	for id, task := range g {
		indegree[id] = len(task.Deps)
	}
	dependents := g.Dependents()

	var ready []string
	for _, id := range g.IDs() {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	prefer := func(a, b string) bool { return a < b }
	switch strategy {
	case StrategyComplexity:
		prefer = func(a, b string) bool {
			if scores[a] != scores[b] {
				return scores[a] > scores[b]
			}
			return a < b
		}
	case StrategyEfficiency:
		prefer = func(a, b string) bool {
			pa := policy.Parallelizable(g[a].Category())
			pb := policy.Parallelizable(g[b].Category())
			if pa != pb {
				return pa
			}
			if scores[a] != scores[b] {
				return scores[a] > scores[b]
			}
			return a < b
		}
	}

	order := make([]string, 0, len(g))
	for len(ready) > 0 {
		best := 0
		for i := 1; i < len(ready); i++ {
			if prefer(ready[i], ready[best]) {
				best = i
			}
		}
		id := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		order = append(order, id)

		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(g) {
		var remaining []string
		for id, deg := range indegree {
			if deg > 0 {
				remaining = append(remaining, id)
			}
		}
		sort.Strings(remaining)
		return nil, &SequencingInconsistencyError{Remaining: remaining}
	}

	return order, nil
}
