package reflection

import "testing"

// task builds a test task with the given id, type, and dependencies.
func task(id, typ string, deps ...string) Task {
	return Task{ID: id, Type: typ, Deps: deps}
}

// titled returns a copy of the task with the given title.
func titled(t Task, title string) Task {
	t.Title = title
	return t
}

// mustGraph builds a graph and fails the test on ingestion defects.
func mustGraph(t *testing.T, tasks ...Task) TaskGraph {
	t.Helper()
	g, err := NewGraph(tasks)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}
	return g
}

// goldenGraph is the five-task scenario used across the pipeline tests:
//
//	a (code)        no deps
//	b (config)      deps: a
//	c (cli)         deps: a
//	d (integration) deps: c
//	e (ide-action)  deps: d
func goldenGraph(t *testing.T) TaskGraph {
	t.Helper()
	return mustGraph(t,
		titled(task("a", "code"), "Implement parser core"),
		titled(task("b", "config", "a"), "Default settings file"),
		titled(task("c", "cli", "a"), "Wire command surface"),
		titled(task("d", "integration", "c"), "Connect external protocol"),
		titled(task("e", "ide-action", "d"), "Trigger editor refresh"),
	)
}

// equalStrings compares two string slices element-wise.
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
