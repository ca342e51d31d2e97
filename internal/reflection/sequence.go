package reflection

import "sort"

// TopologicalOrder produces a dependency-respecting execution order for the
// graph: every task appears after all of its dependencies. The graph must be
// structurally valid; defects surface as the corresponding typed error.
//
// Ties are broken lexicographically, one task at a time: whenever several
// tasks are ready, the one with the smallest id is emitted next. This makes
// the order fully deterministic and reproducible across runs.
func TopologicalOrder(g TaskGraph) ([]string, error) {
	if err := Validate(g).Err(); err != nil {
		return nil, err
	}
	return topoOrder(g)
}

// topoOrder runs Kahn's algorithm over an already validated graph. The ready
// set is kept sorted so each step pops the smallest eligible id.
func topoOrder(g TaskGraph) ([]string, error) {
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

	order := make([]string, 0, len(g))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = insertSorted(ready, dep)
			}
		}
	}

	// A validated graph always drains completely. Anything left behind
	// indicates an internal invariant was broken, not bad input.
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

// insertSorted inserts id into a sorted slice, keeping it sorted.
func insertSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
