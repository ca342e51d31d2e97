package reflection

import "sort"

// -----------------------------------------------------------------------------
// Parallel Execution Policy
// -----------------------------------------------------------------------------

// ParallelPolicy decides which task categories are safe to run concurrently.
// Categories absent from the map are treated as sequential, so unknown task
// types never end up running in parallel by accident.
type ParallelPolicy map[TaskType]bool

// DefaultParallelPolicy marks configuration, command-line, documentation and
// test work as parallel-safe. Code, IDE and integration tasks stay
// sequential because they tend to touch shared state.
func DefaultParallelPolicy() ParallelPolicy {
	return ParallelPolicy{
		TypeConfiguration: true,
		TypeCommandLine:   true,
		TypeDocumentation: true,
		TypeTest:          true,
	}
}

// Parallelizable reports whether the category may run concurrently with its
// group peers.
func (p ParallelPolicy) Parallelizable(t TaskType) bool {
	return p[t]
}

// -----------------------------------------------------------------------------
// Dependency-Depth Grouping
// -----------------------------------------------------------------------------

// Group collects the tasks that become ready at the same dependency depth.
// Parallelizable members may run concurrently; sequential members must run
// one after another, in the listed order.
type Group struct {
	Level          int      `json:"level"`
	Parallelizable []string `json:"parallelizable,omitempty"`
	Sequential     []string `json:"sequential,omitempty"`
}

// Size returns the total number of tasks in the group.
func (g Group) Size() int {
	return len(g.Parallelizable) + len(g.Sequential)
}

// Tasks returns every member id, parallelizable first, each part sorted.
func (g Group) Tasks() []string {
	out := make([]string, 0, g.Size())
	out = append(out, g.Parallelizable...)
	out = append(out, g.Sequential...)
	return out
}

// ParallelGroups partitions the graph into execution groups by dependency
// depth: a task with no dependencies sits at level 0, any other task one
// level above its deepest dependency. Groups come back in ascending level
// order, each split into parallelizable and sequential members according to
// the policy, with both parts sorted by id. The graph must be structurally
// valid; defects surface as the corresponding typed error.
//
// An empty graph yields no groups. A graph without dependencies yields a
// single level 0 group holding every task.
func ParallelGroups(g TaskGraph, policy ParallelPolicy) ([]Group, error) {
	if err := Validate(g).Err(); err != nil {
		return nil, err
	}
	return parallelGroups(g, policy), nil
}

func parallelGroups(g TaskGraph, policy ParallelPolicy) []Group {
	if len(g) == 0 {
		return nil
	}

	levels := depthLevels(g)

	byLevel := make(map[int][]string)
	maxLevel := 0
	for id, level := range levels {
		byLevel[level] = append(byLevel[level], id)
		if level > maxLevel {
			maxLevel = level
		}
	}

	groups := make([]Group, 0, maxLevel+1)
	for level := 0; level <= maxLevel; level++ {
		members := byLevel[level]
		sort.Strings(members)

		group := Group{Level: level}
		for _, id := range members {
			if policy.Parallelizable(g[id].Category()) {
				group.Parallelizable = append(group.Parallelizable, id)
			} else {
				group.Sequential = append(group.Sequential, id)
			}
		}
		groups = append(groups, group)
	}

	return groups
}

// depthLevels computes each task's dependency depth with memoized recursion.
// The graph must be acyclic; callers validate first.
func depthLevels(g TaskGraph) map[string]int {
	levels := make(map[string]int, len(g))
	done := make(map[string]bool, len(g))

	var depth func(id string) int
	depth = func(id string) int {
		if done[id] {
			return levels[id]
		}
		// Mark before recursing so an unexpected cycle terminates at 0
		// instead of recursing forever.
		done[id] = true

		level := 0
		for _, dep := range g[id].Deps {
			if _, ok := g[dep]; !ok {
				continue
			}
			if d := depth(dep) + 1; d > level {
				level = d
			}
		}
		levels[id] = level
		return level
	}

	for _, id := range g.IDs() {
		depth(id)
	}
	return levels
}
