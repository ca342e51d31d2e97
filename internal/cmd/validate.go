package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskreflect/taskreflect/internal/config"
	"github.com/taskreflect/taskreflect/internal/reflection"
	"github.com/taskreflect/taskreflect/internal/taskfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [tasks-file]",
	Short: "Check a tasks file for structural defects",
	Long: `Validate a tasks file without reflecting it.

This command checks:
  - Valid JSON syntax and tasks array shape
  - Unique, non-empty task ids
  - Dependency validity (no missing references, no cycles)
  - Unrecognized task types (reported as warnings)

All defects are collected and reported in one pass, so a single run
shows everything that needs fixing.

The exit code indicates the result:
  0 - Graph is valid (may have warnings)
  1 - Graph has structural defects or could not be parsed

Examples:
  # Validate the default tasks file
  taskreflect validate

  # Validate a specific file with JSON output
  taskreflect validate --json backlog.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation result as JSON")
	rootCmd.AddCommand(validateCmd)
}

// ValidationOutput represents the JSON output format for validation results.
type ValidationOutput struct {
	Valid        bool                 `json:"valid"`
	FilePath     string               `json:"file_path"`
	TaskCount    int                  `json:"task_count"`
	DefectCount  int                  `json:"defect_count"`
	WarningCount int                  `json:"warning_count"`
	Defects      []reflection.Defect  `json:"defects,omitempty"`
	Warnings     []reflection.Warning `json:"warnings,omitempty"`
	ParseError   string               `json:"parse_error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := tasksFilePath(cfg, args)

	f, err := taskfile.Load(path)
	if err != nil {
		if validateJSON {
			return outputJSON(ValidationOutput{
				Valid:      false,
				FilePath:   path,
				ParseError: err.Error(),
			})
		}
		return err
	}

	g, err := f.Graph()
	if err != nil {
		if validateJSON {
			return outputJSON(ValidationOutput{
				Valid:      false,
				FilePath:   path,
				TaskCount:  len(f.Tasks),
				ParseError: err.Error(),
			})
		}
		return fmt.Errorf("invalid tasks in %s: %w", path, err)
	}

	result := reflection.Validate(g)

	if validateJSON {
		return outputJSON(ValidationOutput{
			Valid:        result.Valid,
			FilePath:     path,
			TaskCount:    len(g),
			DefectCount:  len(result.Defects),
			WarningCount: len(result.Warnings),
			Defects:      result.Defects,
			Warnings:     result.Warnings,
		})
	}

	return outputHuman(path, g, result)
}

// outputJSON marshals and prints the validation output as formatted JSON.
// Returns a silentError if validation failed to signal exit code 1.
// Always outputs valid JSON, even if marshaling fails (uses fallback format).
func outputJSON(output ValidationOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		// Fallback: a minimal valid JSON error response, so --json mode
		// stays machine-readable for CI pipelines
		fallback := fmt.Sprintf(`{"valid": false, "file_path": %q, "parse_error": "internal error: failed to marshal output: %s"}`,
			output.FilePath, err.Error())
		fmt.Println(fallback)
		return &silentError{}
	}
	fmt.Println(string(data))

	if !output.Valid {
		return &silentError{}
	}
	return nil
}

// outputHuman prints validation results in a human-readable format.
func outputHuman(path string, g reflection.TaskGraph, result *reflection.ValidationResult) error {
	fmt.Printf("Validating: %s\n", path)
	fmt.Println()

	fmt.Printf("Graph Summary:\n")
	fmt.Printf("  Tasks: %d\n", len(g))
	fmt.Println()

	if result.Valid {
		fmt.Println("Status: VALID")
	} else {
		fmt.Println("Status: INVALID")
	}
	if len(result.Defects) > 0 || len(result.Warnings) > 0 {
		fmt.Printf("  Defects: %d, Warnings: %d\n", len(result.Defects), len(result.Warnings))
	}
	fmt.Println()

	if len(result.Defects) > 0 {
		fmt.Println("Defects:")
		printDefects(result.Defects)
		fmt.Println()
	}
	if len(result.Warnings) > 0 {
		fmt.Println("Warnings:")
		printWarnings(result.Warnings)
		fmt.Println()
	}

	if !result.Valid {
		return fmt.Errorf("validation failed with %d defect(s)", len(result.Defects))
	}
	return nil
}
