package cmd

import (
	"fmt"
	"strings"

	"github.com/taskreflect/taskreflect/internal/config"
	"github.com/taskreflect/taskreflect/internal/reflection"
	"github.com/taskreflect/taskreflect/internal/taskfile"
)

// silentError signals a failure whose details were already printed.
// Used to set exit code 1 without repeating the defect list in Cobra's
// error line.
type silentError struct{}

func (e *silentError) Error() string {
	return "reflection failed"
}

// tasksFilePath resolves the tasks file from the positional argument,
// falling back to the configured default.
func tasksFilePath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Paths.TasksFile != "" {
		return cfg.Paths.TasksFile
	}
	return "tasks.json"
}

// loadGraph loads a tasks file and builds its task graph.
func loadGraph(path string) (*taskfile.File, reflection.TaskGraph, error) {
	f, err := taskfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := f.Graph()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid tasks in %s: %w", path, err)
	}
	return f, g, nil
}

// printDefects writes every structural defect in a form that names the
// offending tasks directly.
func printDefects(defects []reflection.Defect) {
	for _, d := range defects {
		switch d.Kind {
		case reflection.DefectMissingDependency:
			fmt.Printf("  - [%s] depends on %q, which does not exist\n", d.TaskID, d.MissingID)
		case reflection.DefectCycle:
			fmt.Printf("  - dependency cycle: %s\n", strings.Join(d.Cycle, " -> "))
		default:
			fmt.Printf("  - %s\n", d.Message)
		}
	}
}

// printWarnings writes advisory findings with their suggestions.
func printWarnings(warnings []reflection.Warning) {
	for _, w := range warnings {
		prefix := "  - "
		if w.TaskID != "" {
			prefix = fmt.Sprintf("  - [%s] ", w.TaskID)
		}
		fmt.Printf("%s%s\n", prefix, w.Message)
		if w.Suggestion != "" {
			fmt.Printf("    Suggestion: %s\n", w.Suggestion)
		}
	}
}
