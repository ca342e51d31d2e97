package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskreflect/taskreflect/internal/config"
	"github.com/taskreflect/taskreflect/internal/errors"
	"github.com/taskreflect/taskreflect/internal/reflection"
	"github.com/taskreflect/taskreflect/internal/report"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect [tasks-file]",
	Short: "Validate, score, and order a tasks file",
	Long: `Run the full reflection pipeline over a tasks file.

The graph is validated for missing dependencies and cycles, every task
gets a complexity score, and the tasks are written back in topological
order together with parallel execution groups under "meta".

The exit code indicates the result:
  0 - Reflection succeeded
  1 - The graph has structural defects or the file could not be read

Examples:
  # Reflect the default tasks file in place of tasks.reflected.json
  taskreflect reflect

  # Reflect a specific file and update it in place
  taskreflect reflect backlog.json --out backlog.json

  # Also render a markdown report
  taskreflect reflect --report TASKS.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReflect,
}

var (
	reflectOut    string
	reflectReport string
)

func init() {
	reflectCmd.Flags().StringVar(&reflectOut, "out", "tasks.reflected.json", "Where to write the reflected tasks file")
	reflectCmd.Flags().StringVar(&reflectReport, "report", "", "Also write a markdown report to this path")
	rootCmd.AddCommand(reflectCmd)
}

func runReflect(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := tasksFilePath(cfg, args)

	f, g, err := loadGraph(path)
	if err != nil {
		return err
	}

	engine := reflection.NewEngine(cfg.ToEngine())
	res, err := engine.Reflect(g)
	if err != nil {
		printReflectionFailure(path, err)
		return &silentError{}
	}

	f.ApplyResult(res)
	if err := f.Save(reflectOut); err != nil {
		return err
	}

	if reflectReport != "" {
		an, err := reflection.Analyze(g)
		if err != nil {
			return err
		}
		md := report.Build(res, an, report.Options{TopTasks: cfg.Report.TopTasks})
		if err := os.WriteFile(reflectReport, []byte(md), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	printReflectSummary(path, res)
	return nil
}

// printReflectionFailure unpacks the typed pipeline errors into the
// defect listing users act on; anything else prints as-is.
func printReflectionFailure(path string, err error) {
	fmt.Printf("Reflection failed: %s\n\n", path)

	known := false
	var missing *reflection.MissingDependencyError
	if errors.As(err, &missing) {
		fmt.Println("Missing dependencies:")
		for _, ref := range missing.Refs {
			fmt.Printf("  - [%s] depends on %q, which does not exist\n", ref.TaskID, ref.MissingID)
		}
		known = true
	}
	var cycle *reflection.CycleError
	if errors.As(err, &cycle) {
		fmt.Println("Dependency cycles:")
		for _, ids := range cycle.Cycles {
			fmt.Printf("  - %s\n", strings.Join(ids, " -> "))
		}
		known = true
	}
	if !known {
		fmt.Printf("  %v\n", err)
	}
}

func printReflectSummary(path string, res *reflection.Result) {
	fmt.Printf("Reflected %s\n", path)
	fmt.Printf("  Tasks:  %d\n", len(res.Tasks))
	fmt.Printf("  Groups: %d\n", len(res.Groups))
	fmt.Printf("  Output: %s\n", reflectOut)
	if reflectReport != "" {
		fmt.Printf("  Report: %s\n", reflectReport)
	}
	if len(res.Meta.Warnings) > 0 {
		fmt.Println()
		fmt.Println("Warnings:")
		printWarnings(res.Meta.Warnings)
	}
}
