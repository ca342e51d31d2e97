package reflection

import (
	"fmt"
	"strings"

	"github.com/taskreflect/taskreflect/internal/errors"
)

// MissingRef identifies one dangling dependency edge: TaskID declares a
// dependency on MissingID, which does not exist in the graph.
type MissingRef struct {
	TaskID    string `json:"task_id"`
	MissingID string `json:"missing_id"`
}

// MissingDependencyError reports every dangling dependency reference found in
// a graph. The validator collects all of them in one pass, so a caller sees
// the complete defect list without iterating fix-revalidate cycles.
type MissingDependencyError struct {
	Refs []MissingRef
}

// Error returns the formatted error message listing every dangling reference.
func (e *MissingDependencyError) Error() string {
	parts := make([]string, len(e.Refs))
	for i, ref := range e.Refs {
		parts[i] = fmt.Sprintf("%s depends on unknown task %q", ref.TaskID, ref.MissingID)
	}
	return fmt.Sprintf("missing dependencies: %s", strings.Join(parts, "; "))
}

// Unwrap returns the missing-dependency sentinel so errors.Is matching works.
func (e *MissingDependencyError) Unwrap() error {
	return errors.ErrMissingDependency
}

// CycleError reports every dependency cycle detected in a graph. Each cycle
// is an ordered id sequence that returns to its own start (the starting id is
// repeated at the end).
type CycleError struct {
	Cycles [][]string
}

// Error returns the formatted error message listing every cycle.
func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycles))
	for i, cycle := range e.Cycles {
		parts[i] = strings.Join(cycle, " -> ")
	}
	return fmt.Sprintf("dependency cycles detected: %s", strings.Join(parts, "; "))
}

// Unwrap returns the cycle sentinel so errors.Is matching works.
func (e *CycleError) Unwrap() error {
	return errors.ErrDependencyCycle
}

// SequencingInconsistencyError reports tasks that topological sequencing
// could not place despite validation having passed. It indicates a logic bug
// rather than a user-fixable graph defect; it should never surface downstream
// of a passing Validate.
type SequencingInconsistencyError struct {
	Remaining []string
}

// Error returns the formatted error message naming the unplaced tasks.
func (e *SequencingInconsistencyError) Error() string {
	return fmt.Sprintf("sequencing inconsistency: %d tasks could not be ordered: %s",
		len(e.Remaining), strings.Join(e.Remaining, ", "))
}

// Unwrap returns the sequencing sentinel so errors.Is matching works.
func (e *SequencingInconsistencyError) Unwrap() error {
	return errors.ErrSequencingInconsistent
}
