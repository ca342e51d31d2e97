package reflection

import "sort"

// Analysis summarizes the structure of a validated task graph: how deep it
// is, how much of it could run concurrently, and where it narrows down to
// single gating tasks.
type Analysis struct {
	TaskCount  int `json:"task_count"`
	EdgeCount  int `json:"edge_count"`
	GroupCount int `json:"group_count"`

	// CriticalPath is the longest dependency chain, listed from its root
	// to its final task. Ties are broken by smallest id.
	CriticalPath []string `json:"critical_path,omitempty"`

	// ParallelismScore grades concurrency potential from near 0 (a pure
	// chain) to 100 (no dependencies at all).
	ParallelismScore float64 `json:"parallelism_score"`

	// Bottlenecks lists tasks that form a one-task group with further
	// work behind them, so every later task waits on them.
	Bottlenecks []string `json:"bottlenecks,omitempty"`

	TypeCounts   map[TaskType]int `json:"type_counts"`
	ModuleCounts map[string]int   `json:"module_counts,omitempty"`
}

// Analyze computes structural metrics for the graph. The graph must be
// structurally valid; defects surface as the corresponding typed error.
func Analyze(g TaskGraph) (*Analysis, error) {
	if err := Validate(g).Err(); err != nil {
		return nil, err
	}
	return analyze(g), nil
}

func analyze(g TaskGraph) *Analysis {
	a := &Analysis{
		TaskCount:    len(g),
		TypeCounts:   make(map[TaskType]int),
		ModuleCounts: make(map[string]int),
	}
	if len(g) == 0 {
		return a
	}

	for _, id := range g.IDs() {
		task := g[id]
		a.EdgeCount += len(task.Deps)
		a.TypeCounts[task.Category()]++
		if task.Module != "" {
			a.ModuleCounts[task.Module]++
		}
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
	a.GroupCount = maxLevel + 1

	a.CriticalPath = criticalPath(g, levels, byLevel, maxLevel)
	a.ParallelismScore = round2(100 * float64(a.TaskCount-a.GroupCount+1) / float64(a.TaskCount))

	for level := 0; level <= maxLevel; level++ {
		if len(byLevel[level]) == 1 && level < maxLevel {
			a.Bottlenecks = append(a.Bottlenecks, byLevel[level][0])
		}
	}

	return a
}

// criticalPath reconstructs one longest dependency chain by walking from the
// deepest task back through a dependency one level shallower at each step,
// preferring the smallest id on ties.
func criticalPath(g TaskGraph, levels map[string]int, byLevel map[int][]string, maxLevel int) []string {
	deepest := byLevel[maxLevel]
	sort.Strings(deepest)
	current := deepest[0]

	path := []string{current}
	for level := maxLevel; level > 0; level-- {
		next := ""
		for _, dep := range g[current].Deps {
			if levels[dep] != level-1 {
				continue
			}
			if next == "" || dep < next {
				next = dep
			}
		}
		current = next
		path = append(path, current)
	}

	// Walked leaf to root; the chain reads root first.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
