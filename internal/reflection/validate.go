package reflection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taskreflect/taskreflect/internal/errors"
)

// -----------------------------------------------------------------------------
// Validation Result Types
// -----------------------------------------------------------------------------

// DefectKind tags a structural defect found during validation.
type DefectKind string

const (
	// DefectMissingDependency marks a dependency id that resolves to no task.
	DefectMissingDependency DefectKind = "missing-dependency"
	// DefectCycle marks a dependency cycle.
	DefectCycle DefectKind = "cycle"
)

// Defect describes one structural problem in a task graph. Missing-dependency
// defects carry TaskID and MissingID; cycle defects carry the full id
// sequence returning to its start.
type Defect struct {
	Kind      DefectKind `json:"kind"`
	TaskID    string     `json:"task_id,omitempty"`
	MissingID string     `json:"missing_id,omitempty"`
	Cycle     []string   `json:"cycle,omitempty"`
	Message   string     `json:"message"`
}

// Warning describes an advisory finding that does not invalidate the graph.
type Warning struct {
	TaskID     string `json:"task_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationResult is the outcome of validating a task graph. Valid is true
// only when no defects were found; warnings never affect validity.
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Defects  []Defect  `json:"defects,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// HasDefects returns true if any structural defect was found.
func (r *ValidationResult) HasDefects() bool {
	return len(r.Defects) > 0
}

// MissingDependencies returns all dangling dependency references.
func (r *ValidationResult) MissingDependencies() []MissingRef {
	var refs []MissingRef
	for _, d := range r.Defects {
		if d.Kind == DefectMissingDependency {
			refs = append(refs, MissingRef{TaskID: d.TaskID, MissingID: d.MissingID})
		}
	}
	return refs
}

// Cycles returns every detected cycle as an id sequence.
func (r *ValidationResult) Cycles() [][]string {
	var cycles [][]string
	for _, d := range r.Defects {
		if d.Kind == DefectCycle {
			cycles = append(cycles, d.Cycle)
		}
	}
	return cycles
}

// DefectsForTask returns the defects naming the given task, either as the
// offending task of a dangling reference or as a member of a cycle.
func (r *ValidationResult) DefectsForTask(id string) []Defect {
	var out []Defect
	for _, d := range r.Defects {
		if d.TaskID == id {
			out = append(out, d)
			continue
		}
		for _, member := range d.Cycle {
			if member == id {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Err converts the result into the typed error taxonomy: nil when valid,
// otherwise a MissingDependencyError, a CycleError, or both joined.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}

	var errs []error
	if refs := r.MissingDependencies(); len(refs) > 0 {
		errs = append(errs, &MissingDependencyError{Refs: refs})
	}
	if cycles := r.Cycles(); len(cycles) > 0 {
		errs = append(errs, &CycleError{Cycles: cycles})
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// -----------------------------------------------------------------------------
// Graph Validation
// -----------------------------------------------------------------------------

// Validate checks the structural integrity of a task graph and reports every
// defect in one pass: first all dangling dependency references, then all
// dependency cycles. An empty graph is valid. Validation never mutates the
// graph; re-running it on an unchanged graph returns the same result.
//
// Cycle detection walks the dependency relation with a three-state traversal
// (unvisited, in-progress, done) from every unvisited task, skipping edges
// already reported as dangling. Each task is visited at most once across the
// whole pass, so the check is linear in tasks plus edges. When a traversal
// reaches an in-progress task, the cycle is reconstructed as the ordered id
// sequence returning to its start.
func Validate(g TaskGraph) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for _, id := range g.IDs() {
		task := g[id]
		for _, dep := range task.Deps {
			if _, ok := g[dep]; !ok {
				result.Defects = append(result.Defects, Defect{
					Kind:      DefectMissingDependency,
					TaskID:    id,
					MissingID: dep,
					Message:   fmt.Sprintf("task %q depends on unknown task %q", id, dep),
				})
			}
		}
		if task.Category() == TypeUnknown && task.Type != "" {
			result.Warnings = append(result.Warnings, Warning{
				TaskID:     id,
				Message:    fmt.Sprintf("unrecognized task type %q falls back to the default category", task.Type),
				Suggestion: "use one of the canonical types: doc, cli, config, code, ide, mcp, test",
			})
		}
	}

	for _, cycle := range detectCycles(g) {
		result.Defects = append(result.Defects, Defect{
			Kind:    DefectCycle,
			Cycle:   cycle,
			Message: fmt.Sprintf("dependency cycle: %s", strings.Join(cycle, " -> ")),
		})
	}

	result.Valid = len(result.Defects) == 0
	return result
}

// detectCycles finds every dependency cycle reachable from an unvisited
// start, in deterministic order. Edges to unknown ids are skipped (they are
// reported separately as missing-dependency defects).
func detectCycles(g TaskGraph) [][]string {
	var (
		cycles  [][]string
		visited = make(map[string]bool, len(g))
		onPath  = make(map[string]bool, len(g))
		path    []string
	)

	var walk func(id string)
	walk = func(id string) {
		visited[id] = true
		onPath[id] = true
		path = append(path, id)

		for _, dep := range g[id].Deps {
			if _, ok := g[dep]; !ok {
				continue
			}
			if !visited[dep] {
				walk(dep)
			} else if onPath[dep] {
				// The cycle is the path suffix from the revisited task,
				// closed by repeating it at the end.
				start := 0
				for i, p := range path {
					if p == dep {
						start = i
						break
					}
				}
				cycle := make([]string, 0, len(path)-start+1)
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, dep)
				cycles = append(cycles, cycle)
			}
		}

		onPath[id] = false
		path = path[:len(path)-1]
	}

	for _, id := range g.IDs() {
		if !visited[id] {
			walk(id)
		}
	}

	return cycles
}

// TasksInCycles returns the sorted set of task ids that participate in any
// cycle of the result.
func (r *ValidationResult) TasksInCycles() []string {
	set := make(map[string]bool)
	for _, cycle := range r.Cycles() {
		for _, id := range cycle {
			set[id] = true
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
