package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskreflect/taskreflect/internal/config"
	"github.com/taskreflect/taskreflect/internal/reflection"
)

var statsCmd = &cobra.Command{
	Use:   "stats [tasks-file]",
	Short: "Show complexity and structure statistics for a tasks file",
	Long: `Display statistics for a tasks file.

Shows:
- Task, edge, and group counts
- Complexity summary (average, min, max)
- Per-type and per-module breakdowns
- Critical path and parallelism score`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

// StatsOutput is the JSON output format of the stats command.
type StatsOutput struct {
	FilePath      string               `json:"file_path"`
	AvgComplexity float64              `json:"avg_complexity"`
	MinComplexity float64              `json:"min_complexity"`
	MaxComplexity float64              `json:"max_complexity"`
	Analysis      *reflection.Analysis `json:"analysis"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := tasksFilePath(cfg, args)

	_, g, err := loadGraph(path)
	if err != nil {
		return err
	}

	engine := reflection.NewEngine(cfg.ToEngine())
	res, err := engine.Reflect(g)
	if err != nil {
		printReflectionFailure(path, err)
		return &silentError{}
	}
	an, err := reflection.Analyze(g)
	if err != nil {
		return err
	}

	avg, lo, hi := complexityRange(res)

	if statsJSON {
		data, err := json.MarshalIndent(StatsOutput{
			FilePath:      path,
			AvgComplexity: avg,
			MinComplexity: lo,
			MaxComplexity: hi,
			Analysis:      an,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printStatsText(path, res, an, avg, lo, hi)
	return nil
}

func complexityRange(res *reflection.Result) (avg, lo, hi float64) {
	if len(res.Tasks) == 0 {
		return 0, 0, 0
	}
	lo = res.Tasks[0].Complexity
	hi = res.Tasks[0].Complexity
	sum := 0.0
	for _, task := range res.Tasks {
		sum += task.Complexity
		if task.Complexity < lo {
			lo = task.Complexity
		}
		if task.Complexity > hi {
			hi = task.Complexity
		}
	}
	return sum / float64(len(res.Tasks)), lo, hi
}

func printStatsText(path string, res *reflection.Result, an *reflection.Analysis, avg, lo, hi float64) {
	fmt.Println()
	fmt.Println("GRAPH SUMMARY")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("File:   %s\n", path)
	fmt.Printf("Tasks:  %d\n", an.TaskCount)
	fmt.Printf("Edges:  %d\n", an.EdgeCount)
	fmt.Printf("Groups: %d\n", an.GroupCount)
	fmt.Println()

	fmt.Println("COMPLEXITY")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("Average: %.2f\n", avg)
	fmt.Printf("Min:     %.2f\n", lo)
	fmt.Printf("Max:     %.2f\n", hi)
	fmt.Println()

	if len(an.TypeCounts) > 0 {
		fmt.Println("BY TYPE")
		fmt.Println(strings.Repeat("─", 50))
		for _, typ := range sortedTypes(an.TypeCounts) {
			fmt.Printf("%-8s %d\n", typ, an.TypeCounts[typ])
		}
		fmt.Println()
	}

	if len(an.ModuleCounts) > 0 {
		fmt.Println("BY MODULE")
		fmt.Println(strings.Repeat("─", 50))
		modules := make([]string, 0, len(an.ModuleCounts))
		for module := range an.ModuleCounts {
			modules = append(modules, module)
		}
		sort.Strings(modules)
		for _, module := range modules {
			fmt.Printf("%-20s %d\n", module, an.ModuleCounts[module])
		}
		fmt.Println()
	}

	fmt.Println("STRUCTURE")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("Parallelism score: %.1f\n", an.ParallelismScore)
	if len(an.CriticalPath) > 0 {
		fmt.Printf("Critical path:     %s\n", strings.Join(an.CriticalPath, " -> "))
	}
	if len(an.Bottlenecks) > 0 {
		fmt.Printf("Bottlenecks:       %s\n", strings.Join(an.Bottlenecks, ", "))
	}
	fmt.Println()
}

func sortedTypes(counts map[reflection.TaskType]int) []reflection.TaskType {
	types := make([]reflection.TaskType, 0, len(counts))
	for typ := range counts {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
