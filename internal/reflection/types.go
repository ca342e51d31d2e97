// Package reflection provides types and the core pipeline for task graph
// reflection: validation, complexity scoring, topological sequencing, and
// parallel grouping.
package reflection

import (
	"sort"
	"strings"

	"github.com/taskreflect/taskreflect/internal/errors"
)

// -----------------------------------------------------------------------------
// Task Types
// -----------------------------------------------------------------------------

// TaskType is the canonical category of a task. The input `type` field is an
// open string set; NormalizeType folds it onto these categories, with
// TypeUnknown as the deliberate fallback for unrecognized values.
type TaskType string

const (
	// TypeDocumentation covers docs, READMEs, and guides.
	TypeDocumentation TaskType = "doc"
	// TypeCommandLine covers CLI surface work.
	TypeCommandLine TaskType = "cli"
	// TypeConfiguration covers config files and settings plumbing.
	TypeConfiguration TaskType = "config"
	// TypeCode covers general implementation work.
	TypeCode TaskType = "code"
	// TypeIDEAction covers tasks that drive IDE or agent state.
	TypeIDEAction TaskType = "ide"
	// TypeIntegration covers external-protocol integration work.
	TypeIntegration TaskType = "mcp"
	// TypeTest covers test authoring.
	TypeTest TaskType = "test"
	// TypeUnknown is the fallback category for unrecognized type strings.
	TypeUnknown TaskType = "unknown"
)

// typeAliases maps accepted spellings (lower-cased) to canonical categories.
var typeAliases = map[string]TaskType{
	"doc":           TypeDocumentation,
	"docs":          TypeDocumentation,
	"documentation": TypeDocumentation,
	"cli":           TypeCommandLine,
	"command-line":  TypeCommandLine,
	"config":        TypeConfiguration,
	"configuration": TypeConfiguration,
	"code":          TypeCode,
	"ide":           TypeIDEAction,
	"ide-action":    TypeIDEAction,
	"mcp":           TypeIntegration,
	"integration":   TypeIntegration,
	"test":          TypeTest,
}

// NormalizeType folds a raw type string onto its canonical TaskType.
// Matching is case-insensitive and ignores surrounding whitespace.
// Unrecognized values map to TypeUnknown.
func NormalizeType(raw string) TaskType {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := typeAliases[key]; ok {
		return t
	}
	return TypeUnknown
}

// KnownTypes returns the canonical categories in a stable order, excluding
// TypeUnknown.
func KnownTypes() []TaskType {
	return []TaskType{
		TypeDocumentation,
		TypeCommandLine,
		TypeConfiguration,
		TypeCode,
		TypeIDEAction,
		TypeIntegration,
		TypeTest,
	}
}

// -----------------------------------------------------------------------------
// Task Model
// -----------------------------------------------------------------------------

// Task is a single unit of work in the dependency graph.
//
// Complexity and Order are outputs of reflection; values supplied on input are
// overwritten. Acceptance entries are carried through untouched.
type Task struct {
	ID         string   `json:"id"`
	Title      string   `json:"title,omitempty"`
	Module     string   `json:"module,omitempty"`
	Type       string   `json:"type,omitempty"`
	Deps       []string `json:"deps,omitempty"`
	Complexity float64  `json:"complexity"`
	Order      int      `json:"order"`
	Acceptance []string `json:"acceptance,omitempty"`
}

// Category returns the canonical type category of the task.
func (t *Task) Category() TaskType {
	return NormalizeType(t.Type)
}

// -----------------------------------------------------------------------------
// Task Graph
// -----------------------------------------------------------------------------

// TaskGraph maps task id to task. Graphs are built by NewGraph and never
// mutated across reflection invocations; each invocation constructs its own.
type TaskGraph map[string]*Task

// NewGraph builds a TaskGraph from a task list. It copies every task (the
// caller's slice is not aliased), collapses duplicate dependency entries into
// a sorted set, and rejects structural ingestion defects: empty ids and
// duplicate ids. All ingestion defects are aggregated into a single error
// rather than reported one at a time.
func NewGraph(tasks []Task) (TaskGraph, error) {
	g := make(TaskGraph, len(tasks))
	var defects []error

	for i := range tasks {
		t := tasks[i]
		if strings.TrimSpace(t.ID) == "" {
			defects = append(defects, errors.NewValidationError(
				"task id must not be empty").
				WithField("id").
				WithValue(i).
				WithCause(errors.ErrEmptyTaskID))
			continue
		}
		if _, exists := g[t.ID]; exists {
			defects = append(defects, errors.NewValidationError(
				"duplicate task id").
				WithTaskID(t.ID).
				WithField("id").
				WithCause(errors.ErrDuplicateTask))
			continue
		}
		t.Deps = normalizeDeps(t.Deps)
		g[t.ID] = &t
	}

	if len(defects) > 0 {
		return nil, errors.Join(defects...)
	}
	return g, nil
}

// normalizeDeps collapses duplicates and returns the dependency set in sorted
// order. A nil input stays nil.
func normalizeDeps(deps []string) []string {
	if len(deps) == 0 {
		return deps
	}
	seen := make(map[string]bool, len(deps))
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// IDs returns every task id in ascending order. Deterministic iteration over
// the graph goes through this.
func (g TaskGraph) IDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dependents returns the reverse dependency relation: for every task id, the
// ids of tasks that depend on it, each list in ascending order. Edges to
// unknown ids are ignored.
func (g TaskGraph) Dependents() map[string][]string {
	rev := make(map[string][]string, len(g))
	for _, id := range g.IDs() {
		for _, dep := range g[id].Deps {
			if _, ok := g[dep]; !ok {
				continue
			}
			rev[dep] = append(rev[dep], id)
		}
	}
	return rev
}

// Tasks returns the graph's tasks ordered by ascending id.
func (g TaskGraph) Tasks() []*Task {
	out := make([]*Task, 0, len(g))
	for _, id := range g.IDs() {
		out = append(out, g[id])
	}
	return out
}
