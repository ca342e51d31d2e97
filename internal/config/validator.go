package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/taskreflect/taskreflect/internal/reflection"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "scoring.dep_weight")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidTaskTypes returns the canonical task types accepted in scoring and
// parallel sections
func ValidTaskTypes() []string {
	types := reflection.KnownTypes()
	out := make([]string, len(types))
	for i, typ := range types {
		out[i] = string(typ)
	}
	return out
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Scoring config
	errors = append(errors, c.validateScoring()...)

	// Validate Parallel config
	errors = append(errors, c.validateParallel()...)

	// Validate Report config
	errors = append(errors, c.validateReport()...)

	// Validate Watch config
	errors = append(errors, c.validateWatch()...)

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	// Validate TUI config
	errors = append(errors, c.validateTUI()...)

	return errors
}

// validateScoring validates the ScoringConfig
func (c *Config) validateScoring() []ValidationError {
	var errors []ValidationError

	if c.Scoring.DefaultBase <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scoring.default_base",
			Value:   c.Scoring.DefaultBase,
			Message: "must be positive",
		})
	}

	// Negative edge weights would let adding dependencies lower a score
	if c.Scoring.DepWeight < 0 {
		errors = append(errors, ValidationError{
			Field:   "scoring.dep_weight",
			Value:   c.Scoring.DepWeight,
			Message: "must be non-negative",
		})
	}
	if c.Scoring.DependentWeight < 0 {
		errors = append(errors, ValidationError{
			Field:   "scoring.dependent_weight",
			Value:   c.Scoring.DependentWeight,
			Message: "must be non-negative",
		})
	}

	if c.Scoring.MinScore <= 0 {
		errors = append(errors, ValidationError{
			Field:   "scoring.min_score",
			Value:   c.Scoring.MinScore,
			Message: "must be positive",
		})
	}
	if c.Scoring.MaxScore < c.Scoring.MinScore {
		errors = append(errors, ValidationError{
			Field:   "scoring.max_score",
			Value:   c.Scoring.MaxScore,
			Message: "must be at least scoring.min_score",
		})
	}

	for typ, weight := range c.Scoring.BaseWeights {
		if reflection.NormalizeType(typ) == reflection.TypeUnknown {
			errors = append(errors, ValidationError{
				Field:   "scoring.base_weights",
				Value:   typ,
				Message: fmt.Sprintf("unrecognized task type, must be one of: %s", strings.Join(ValidTaskTypes(), ", ")),
			})
		}
		if weight <= 0 {
			errors = append(errors, ValidationError{
				Field:   "scoring.base_weights." + typ,
				Value:   weight,
				Message: "must be positive",
			})
		}
	}

	for i, kw := range c.Scoring.Keywords {
		if strings.TrimSpace(kw.Word) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("scoring.keywords[%d].word", i),
				Value:   kw.Word,
				Message: "cannot be empty",
			})
		}
		if kw.Bonus < 0 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("scoring.keywords[%d].bonus", i),
				Value:   kw.Bonus,
				Message: "must be non-negative",
			})
		}
	}

	return errors
}

// validateParallel validates the ParallelConfig
func (c *Config) validateParallel() []ValidationError {
	var errors []ValidationError

	for _, typ := range c.Parallel.ParallelTypes {
		if reflection.NormalizeType(typ) == reflection.TypeUnknown {
			errors = append(errors, ValidationError{
				Field:   "parallel.parallel_types",
				Value:   typ,
				Message: fmt.Sprintf("unrecognized task type, must be one of: %s", strings.Join(ValidTaskTypes(), ", ")),
			})
		}
	}

	return errors
}

// validateReport validates the ReportConfig
func (c *Config) validateReport() []ValidationError {
	var errors []ValidationError

	if c.Report.TopTasks < 0 {
		errors = append(errors, ValidationError{
			Field:   "report.top_tasks",
			Value:   c.Report.TopTasks,
			Message: "must be non-negative (0 hides the ranking section)",
		})
	}

	const maxTopTasks = 100
	if c.Report.TopTasks > maxTopTasks {
		errors = append(errors, ValidationError{
			Field:   "report.top_tasks",
			Value:   c.Report.TopTasks,
			Message: fmt.Sprintf("exceeds maximum of %d", maxTopTasks),
		})
	}

	return errors
}

// validateWatch validates the WatchConfig
func (c *Config) validateWatch() []ValidationError {
	var errors []ValidationError

	if c.Watch.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must be non-negative",
		})
	}

	// Reasonable upper bound so watch mode never looks frozen
	const maxDebounceMs = 60_000
	if c.Watch.DebounceMs > maxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxDebounceMs),
		})
	}

	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errors = append(errors, ValidationError{
				Field:   "watch.extensions",
				Value:   ext,
				Message: "must start with a dot (e.g. \".json\")",
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// Sidebar width validation (0 means use default, which is valid)
	const minSidebarWidth = 20
	const maxSidebarWidth = 60
	if c.TUI.SidebarWidth != 0 {
		if c.TUI.SidebarWidth < minSidebarWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.sidebar_width",
				Value:   c.TUI.SidebarWidth,
				Message: fmt.Sprintf("must be at least %d columns", minSidebarWidth),
			})
		}
		if c.TUI.SidebarWidth > maxSidebarWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.sidebar_width",
				Value:   c.TUI.SidebarWidth,
				Message: fmt.Sprintf("exceeds maximum of %d columns", maxSidebarWidth),
			})
		}
	}

	return errors
}
