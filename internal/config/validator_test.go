package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "scoring.dep_weight",
		Value:   -0.5,
		Message: "must be non-negative",
	}
	want := "scoring.dep_weight: must be non-negative (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("empty errors = %q, want empty string", errs.Error())
		}
	})

	t.Run("single", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "watch.debounce_ms", Value: -1, Message: "must be non-negative"},
		}
		want := "watch.debounce_ms: must be non-negative (got: -1)"
		if errs.Error() != want {
			t.Errorf("Error() = %q, want %q", errs.Error(), want)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "a", Value: 1, Message: "bad"},
			{Field: "b", Value: 2, Message: "worse"},
		}
		got := errs.Error()
		if !strings.Contains(got, "2 validation errors") {
			t.Errorf("Error() = %q, want error count header", got)
		}
		if !strings.Contains(got, "1. a: bad") || !strings.Contains(got, "2. b: worse") {
			t.Errorf("Error() = %q, want numbered entries", got)
		}
	})
}

// hasFieldError reports whether errs contains an error for the given field
// (prefix match, so map and slice entries qualify too).
func hasFieldError(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if strings.HasPrefix(err.Field, field) {
			return true
		}
	}
	return false
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate_Scoring(t *testing.T) {
	t.Run("non-positive default_base", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.DefaultBase = 0
		if !hasFieldError(cfg.Validate(), "scoring.default_base") {
			t.Error("expected error for zero default_base")
		}
	})

	t.Run("negative dep_weight", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.DepWeight = -0.1
		if !hasFieldError(cfg.Validate(), "scoring.dep_weight") {
			t.Error("expected error for negative dep_weight")
		}
	})

	t.Run("negative dependent_weight", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.DependentWeight = -0.1
		if !hasFieldError(cfg.Validate(), "scoring.dependent_weight") {
			t.Error("expected error for negative dependent_weight")
		}
	})

	t.Run("max below min", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.MinScore = 2.0
		cfg.Scoring.MaxScore = 1.0
		if !hasFieldError(cfg.Validate(), "scoring.max_score") {
			t.Error("expected error for max below min")
		}
	})

	t.Run("unrecognized base weight type", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.BaseWeights["deployment"] = 1.5
		if !hasFieldError(cfg.Validate(), "scoring.base_weights") {
			t.Error("expected error for unrecognized type key")
		}
	})

	t.Run("alias base weight type is valid", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.BaseWeights["documentation"] = 0.7
		if hasFieldError(cfg.Validate(), "scoring.base_weights") {
			t.Errorf("alias key should be valid, got: %v", cfg.Validate())
		}
	})

	t.Run("non-positive base weight", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.BaseWeights["code"] = 0
		if !hasFieldError(cfg.Validate(), "scoring.base_weights.code") {
			t.Error("expected error for zero base weight")
		}
	})

	t.Run("empty keyword", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.Keywords = append(cfg.Scoring.Keywords, KeywordWeight{Word: "  ", Bonus: 0.1})
		if !hasFieldError(cfg.Validate(), "scoring.keywords[8].word") {
			t.Error("expected error for blank keyword")
		}
	})

	t.Run("negative keyword bonus", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.Keywords[0].Bonus = -0.3
		if !hasFieldError(cfg.Validate(), "scoring.keywords[0].bonus") {
			t.Error("expected error for negative bonus")
		}
	})
}

func TestConfig_Validate_Parallel(t *testing.T) {
	t.Run("unrecognized parallel type", func(t *testing.T) {
		cfg := Default()
		cfg.Parallel.ParallelTypes = append(cfg.Parallel.ParallelTypes, "deployment")
		if !hasFieldError(cfg.Validate(), "parallel.parallel_types") {
			t.Error("expected error for unrecognized parallel type")
		}
	})

	t.Run("alias parallel type is valid", func(t *testing.T) {
		cfg := Default()
		cfg.Parallel.ParallelTypes = []string{"configuration", "command-line"}
		if hasFieldError(cfg.Validate(), "parallel.parallel_types") {
			t.Errorf("alias types should be valid, got: %v", cfg.Validate())
		}
	})
}

func TestConfig_Validate_Report(t *testing.T) {
	t.Run("negative top_tasks", func(t *testing.T) {
		cfg := Default()
		cfg.Report.TopTasks = -1
		if !hasFieldError(cfg.Validate(), "report.top_tasks") {
			t.Error("expected error for negative top_tasks")
		}
	})

	t.Run("zero top_tasks is valid", func(t *testing.T) {
		cfg := Default()
		cfg.Report.TopTasks = 0
		if hasFieldError(cfg.Validate(), "report.top_tasks") {
			t.Error("zero should be valid (hides the section)")
		}
	})

	t.Run("excessive top_tasks", func(t *testing.T) {
		cfg := Default()
		cfg.Report.TopTasks = 500
		if !hasFieldError(cfg.Validate(), "report.top_tasks") {
			t.Error("expected error for excessive top_tasks")
		}
	})
}

func TestConfig_Validate_Watch(t *testing.T) {
	t.Run("negative debounce", func(t *testing.T) {
		cfg := Default()
		cfg.Watch.DebounceMs = -100
		if !hasFieldError(cfg.Validate(), "watch.debounce_ms") {
			t.Error("expected error for negative debounce")
		}
	})

	t.Run("excessive debounce", func(t *testing.T) {
		cfg := Default()
		cfg.Watch.DebounceMs = 120_000
		if !hasFieldError(cfg.Validate(), "watch.debounce_ms") {
			t.Error("expected error for excessive debounce")
		}
	})

	t.Run("extension without dot", func(t *testing.T) {
		cfg := Default()
		cfg.Watch.Extensions = []string{"json"}
		if !hasFieldError(cfg.Validate(), "watch.extensions") {
			t.Error("expected error for extension without dot")
		}
	})
}

func TestConfig_Validate_Logging(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "verbose"
		if !hasFieldError(cfg.Validate(), "logging.level") {
			t.Error("expected error for invalid log level")
		}
	})

	t.Run("all valid levels", func(t *testing.T) {
		for _, level := range ValidLogLevels() {
			cfg := Default()
			cfg.Logging.Level = level
			if hasFieldError(cfg.Validate(), "logging.level") {
				t.Errorf("level %q should be valid", level)
			}
		}
	})

	t.Run("non-positive max size", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.MaxSizeMB = 0
		if !hasFieldError(cfg.Validate(), "logging.max_size_mb") {
			t.Error("expected error for zero max size")
		}
	})

	t.Run("excessive max size", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.MaxSizeMB = 5000
		if !hasFieldError(cfg.Validate(), "logging.max_size_mb") {
			t.Error("expected error for excessive max size")
		}
	})

	t.Run("negative max backups", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.MaxBackups = -1
		if !hasFieldError(cfg.Validate(), "logging.max_backups") {
			t.Error("expected error for negative max backups")
		}
	})
}

func TestConfig_Validate_TUI(t *testing.T) {
	t.Run("valid sidebar widths", func(t *testing.T) {
		for _, width := range []int{0, 20, 32, 45, 60} {
			cfg := Default()
			cfg.TUI.SidebarWidth = width
			if hasFieldError(cfg.Validate(), "tui.sidebar_width") {
				t.Errorf("width %d should be valid", width)
			}
		}
	})

	t.Run("sidebar width too small", func(t *testing.T) {
		cfg := Default()
		cfg.TUI.SidebarWidth = 10
		if !hasFieldError(cfg.Validate(), "tui.sidebar_width") {
			t.Error("expected error for narrow sidebar")
		}
	})

	t.Run("sidebar width too large", func(t *testing.T) {
		cfg := Default()
		cfg.TUI.SidebarWidth = 100
		if !hasFieldError(cfg.Validate(), "tui.sidebar_width") {
			t.Error("expected error for wide sidebar")
		}
	})
}

func TestValidLogLevels(t *testing.T) {
	levels := ValidLogLevels()
	if len(levels) != 4 {
		t.Errorf("got %d levels, want 4", len(levels))
	}
	for _, want := range []string{"debug", "info", "warn", "error"} {
		found := false
		for _, level := range levels {
			if level == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing level %q", want)
		}
	}
}

func TestValidTaskTypes(t *testing.T) {
	types := ValidTaskTypes()
	if len(types) != 7 {
		t.Errorf("got %d types, want 7", len(types))
	}
	for _, typ := range types {
		if typ == "unknown" {
			t.Error("unknown must not be an accepted config type")
		}
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Scoring.DefaultBase = -1
	cfg.Watch.DebounceMs = -5
	cfg.Logging.Level = "nope"

	errs := cfg.Validate()
	if len(errs) < 3 {
		t.Errorf("got %d errors, want at least 3: %v", len(errs), errs)
	}
}
