// Package testutil provides testing utilities for taskreflect tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TaskSpec is a minimal task definition for building test fixtures.
type TaskSpec struct {
	ID     string   `json:"id"`
	Title  string   `json:"title,omitempty"`
	Module string   `json:"module,omitempty"`
	Type   string   `json:"type,omitempty"`
	Deps   []string `json:"deps,omitempty"`
}

// WriteTasksFile writes a tasks file with the given tasks into a temp
// directory and returns its path. The file is cleaned up with the test.
func WriteTasksFile(t *testing.T, tasks ...TaskSpec) string {
	t.Helper()

	if tasks == nil {
		tasks = []TaskSpec{}
	}
	data, err := json.MarshalIndent(map[string]any{"tasks": tasks}, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal tasks: %v", err)
	}

	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		t.Fatalf("failed to write tasks file: %v", err)
	}
	return path
}

// WriteRawTasksFile writes arbitrary bytes as a tasks file and returns
// its path. Use it for malformed-input fixtures.
func WriteRawTasksFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write tasks file: %v", err)
	}
	return path
}

// GoldenTasks returns the five-task fixture used across command tests:
// a root code task fanned out to config and cli work, with integration
// and ide tasks chained behind the cli.
func GoldenTasks() []TaskSpec {
	return []TaskSpec{
		{ID: "a", Title: "Implement parser core", Type: "code"},
		{ID: "b", Title: "Default settings file", Type: "config", Deps: []string{"a"}},
		{ID: "c", Title: "Wire command surface", Type: "cli", Deps: []string{"a"}},
		{ID: "d", Title: "Connect external protocol", Type: "integration", Deps: []string{"c"}},
		{ID: "e", Title: "Trigger editor refresh", Type: "ide-action", Deps: []string{"d"}},
	}
}
