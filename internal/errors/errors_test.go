package errors

import (
	"fmt"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// TaskFileError Tests
// -----------------------------------------------------------------------------

func TestNewTaskFileError(t *testing.T) {
	cause := ErrTaskFileMalformed
	err := NewTaskFileError("failed to decode tasks", cause)

	if err.message != "failed to decode tasks" {
		t.Errorf("message = %q, want %q", err.message, "failed to decode tasks")
	}
	if err.cause != cause {
		t.Errorf("cause = %v, want %v", err.cause, cause)
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestTaskFileError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TaskFileError
		want string
	}{
		{
			name: "basic error",
			err:  NewTaskFileError("test error", nil),
			want: "task file error: test error",
		},
		{
			name: "with cause",
			err:  NewTaskFileError("test error", ErrTaskFileNotFound),
			want: "task file error: test error: task file not found",
		},
		{
			name: "with path",
			err:  NewTaskFileError("test error", nil).WithPath("tasks.json"),
			want: "task file error [path=tasks.json]: test error",
		},
		{
			name: "with path and cause",
			err:  NewTaskFileError("test error", ErrTaskFileMalformed).WithPath("x.json"),
			want: "task file error [path=x.json]: test error: task file malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskFileError_Is(t *testing.T) {
	err := NewTaskFileError("test", ErrTaskFileNotFound).WithPath("tasks.json")

	if !Is(err, &TaskFileError{}) {
		t.Error("Is(&TaskFileError{}) = false, want true")
	}
	if !Is(err, ErrTaskFileNotFound) {
		t.Error("Is(ErrTaskFileNotFound) = false, want true")
	}
	if Is(err, ErrDependencyCycle) {
		t.Error("Is(ErrDependencyCycle) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// WatchError Tests
// -----------------------------------------------------------------------------

func TestNewWatchError(t *testing.T) {
	err := NewWatchError("failed to add watch path", nil).WithPath("tasks")

	if err.Path != "tasks" {
		t.Errorf("Path = %q, want %q", err.Path, "tasks")
	}
	if !err.IsRetryable() {
		t.Error("IsRetryable() = false, want true")
	}
	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}

	want := "watch error [path=tasks]: failed to add watch path"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWatchError_WithRetryable(t *testing.T) {
	err := NewWatchError("fatal", nil).WithRetryable(false)
	if err.IsRetryable() {
		t.Error("IsRetryable() = true after WithRetryable(false)")
	}
}

// -----------------------------------------------------------------------------
// Semantic Error Tests
// -----------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "auth-api")

	want := "task 'auth-api' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.ResourceType != "task" {
		t.Errorf("ResourceType = %q, want %q", err.ResourceType, "task")
	}
	if err.ResourceID != "auth-api" {
		t.Errorf("ResourceID = %q, want %q", err.ResourceID, "auth-api")
	}
	if !err.IsUserFacing() {
		t.Error("IsUserFacing() = false, want true")
	}
}

func TestNotFoundError_WithCause(t *testing.T) {
	err := NewNotFoundError("task", "x").WithCause(ErrTaskNotFound)

	want := "task 'x' not found: task not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrTaskNotFound) {
		t.Error("Is(ErrTaskNotFound) = false, want true")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "basic",
			err:  NewValidationError("id must not be empty"),
			want: "validation error: id must not be empty",
		},
		{
			name: "with field",
			err:  NewValidationError("id must not be empty").WithField("id"),
			want: "validation error [field=id]: id must not be empty",
		},
		{
			name: "with task and field",
			err:  NewValidationError("bad value").WithTaskID("t1").WithField("deps"),
			want: "validation error [task=t1, field=deps]: bad value",
		},
		{
			name: "with value",
			err:  NewValidationError("bad weight").WithField("dep_weight").WithValue(-1.5),
			want: "validation error [field=dep_weight, value=-1.5]: bad weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := NewValidationError("nope")
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("IsRetryable(nil) = true, want false")
	}
	if !IsRetryable(NewWatchError("transient", nil)) {
		t.Error("watch errors should be retryable by default")
	}
	if IsRetryable(NewTaskFileError("broken", nil)) {
		t.Error("task file errors should not be retryable")
	}
	if IsRetryable(New("plain")) {
		t.Error("plain errors should not be retryable")
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true, want false")
	}
	if !IsUserFacing(NewValidationError("bad")) {
		t.Error("validation errors should be user-facing")
	}
	if IsUserFacing(New("internal detail")) {
		t.Error("plain errors should not be user-facing")
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want %v", got, SeverityDebug)
	}
	if got := GetSeverity(NewTaskFileError("x", nil)); got != SeverityError {
		t.Errorf("GetSeverity(TaskFileError) = %v, want %v", got, SeverityError)
	}
	if got := GetSeverity(NewValidationError("x")); got != SeverityWarning {
		t.Errorf("GetSeverity(ValidationError) = %v, want %v", got, SeverityWarning)
	}
	if got := GetSeverity(New("plain")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want %v", got, SeverityError)
	}
}

func TestGetSeverity_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewValidationError("inner"))
	if got := GetSeverity(err); got != SeverityWarning {
		t.Errorf("GetSeverity(wrapped) = %v, want %v", got, SeverityWarning)
	}
}

// -----------------------------------------------------------------------------
// Wrap Tests
// -----------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := ErrDependencyCycle
	err := Wrap(base, "failed to sequence")
	want := "failed to sequence: dependency cycle detected"
	if err.Error() != want {
		t.Errorf("Wrap() = %q, want %q", err.Error(), want)
	}
	if !Is(err, base) {
		t.Error("wrapped error should match its base")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %s", "x") != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrTaskFileNotFound, "failed to load %s", "tasks.json")
	want := "failed to load tasks.json: task file not found"
	if err.Error() != want {
		t.Errorf("Wrapf() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrTaskFileNotFound) {
		t.Error("wrapped error should match its base")
	}
}
