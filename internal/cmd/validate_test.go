package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/taskreflect/taskreflect/internal/testutil"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()
	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(out), runErr
}

func TestRunValidate_ValidGraph(t *testing.T) {
	path := testutil.WriteTasksFile(t, testutil.GoldenTasks()...)

	validateJSON = false
	out, err := captureStdout(t, func() error {
		return runValidate(validateCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	if want := "Status: VALID"; !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestRunValidate_MissingDependency(t *testing.T) {
	path := testutil.WriteTasksFile(t,
		testutil.TaskSpec{ID: "a", Type: "code", Deps: []string{"ghost"}},
	)

	validateJSON = false
	out, err := captureStdout(t, func() error {
		return runValidate(validateCmd, []string{path})
	})
	if err == nil {
		t.Fatal("runValidate() expected error for missing dependency")
	}
	if !strings.Contains(out, "Status: INVALID") || !strings.Contains(out, "ghost") {
		t.Errorf("output should name the missing dependency:\n%s", out)
	}
}

func TestRunValidate_JSONOutput(t *testing.T) {
	path := testutil.WriteTasksFile(t,
		testutil.TaskSpec{ID: "a", Type: "code", Deps: []string{"b"}},
		testutil.TaskSpec{ID: "b", Type: "code", Deps: []string{"a"}},
	)

	validateJSON = true
	defer func() { validateJSON = false }()

	out, err := captureStdout(t, func() error {
		return runValidate(validateCmd, []string{path})
	})
	var silent *silentError
	if !errors.As(err, &silent) {
		t.Fatalf("runValidate() error = %v, want silentError", err)
	}

	var output ValidationOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if output.Valid {
		t.Error("output.Valid = true, want false for a cyclic graph")
	}
	if output.TaskCount != 2 {
		t.Errorf("output.TaskCount = %d, want 2", output.TaskCount)
	}
	if output.DefectCount == 0 {
		t.Error("output.DefectCount = 0, want at least one cycle defect")
	}
}

func TestRunValidate_MalformedFile(t *testing.T) {
	path := testutil.WriteRawTasksFile(t, "{not json")

	validateJSON = true
	defer func() { validateJSON = false }()

	out, err := captureStdout(t, func() error {
		return runValidate(validateCmd, []string{path})
	})
	var silent *silentError
	if !errors.As(err, &silent) {
		t.Fatalf("runValidate() error = %v, want silentError in JSON mode", err)
	}

	var output ValidationOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if output.ParseError == "" {
		t.Error("output.ParseError is empty, want parse failure detail")
	}
}
