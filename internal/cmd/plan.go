package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taskreflect/taskreflect/internal/config"
	"github.com/taskreflect/taskreflect/internal/reflection"
	"github.com/taskreflect/taskreflect/internal/tui"
	"github.com/taskreflect/taskreflect/internal/tui/styles"
	"github.com/taskreflect/taskreflect/internal/util"
)

var planCmd = &cobra.Command{
	Use:   "plan [tasks-file]",
	Short: "Show the execution plan for a tasks file",
	Long: `Compute and display the execution plan: topological order and
parallel groups. Tasks inside a group have no dependency relationship,
so the parallel subset of each group is safe to dispatch concurrently.

The dispatch strategy decides which ready task goes first:
  dependency - smallest id first (default)
  complexity - hardest task first
  efficiency - parallelizable types first, hardest first within each

Examples:
  # Show the plan for the default tasks file
  taskreflect plan

  # Front-load the hardest tasks
  taskreflect plan --strategy complexity

  # Browse the plan interactively
  taskreflect plan --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

var (
	planStrategy    string
	planInteractive bool
)

func init() {
	planCmd.Flags().StringVar(&planStrategy, "strategy", "dependency", "Dispatch strategy: dependency, complexity, or efficiency")
	planCmd.Flags().BoolVarP(&planInteractive, "interactive", "i", false, "Browse the plan in an interactive viewer")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := tasksFilePath(cfg, args)

	strategy, err := reflection.ParseStrategy(planStrategy)
	if err != nil {
		return err
	}

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

	if planInteractive {
		return tui.Run(res, an, tui.Config{SidebarWidth: cfg.TUI.SidebarWidth})
	}

	printPlan(path, g, res, an, strategy, cfg)
	return nil
}

func printPlan(path string, g reflection.TaskGraph, res *reflection.Result, an *reflection.Analysis, strategy reflection.Strategy, cfg *config.Config) {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.PrimaryColor)
	muted := lipgloss.NewStyle().Foreground(styles.MutedColor)
	parallelBadge := lipgloss.NewStyle().Foreground(styles.SecondaryColor)
	sequentialBadge := lipgloss.NewStyle().Foreground(styles.WarningColor)

	fmt.Println(title.Render(fmt.Sprintf("Execution Plan: %s", path)))
	fmt.Println(muted.Render(fmt.Sprintf("%d tasks, %d groups, parallelism %.1f",
		an.TaskCount, an.GroupCount, an.ParallelismScore)))
	fmt.Println()

	for i, group := range res.Groups {
		fmt.Println(title.Render(fmt.Sprintf("Group %d (level %d)", i+1, group.Level)))
		for _, id := range group.Parallelizable {
			printPlanTask(res, id, parallelBadge.Render("parallel"))
		}
		for _, id := range group.Sequential {
			printPlanTask(res, id, sequentialBadge.Render("sequential"))
		}
		fmt.Println()
	}

	if strategy != reflection.StrategyDependency {
		order, err := reflection.DispatchOrder(g, res.Scores, cfg.Parallel.ToPolicy(), strategy)
		if err != nil {
			// Reflect already validated the graph, so this never fires
			fmt.Println(muted.Render(fmt.Sprintf("dispatch order unavailable: %v", err)))
			return
		}
		fmt.Println(title.Render(fmt.Sprintf("Dispatch Order (%s)", strategy)))
		fmt.Printf("  %s\n", strings.Join(order, " -> "))
	}
}

func printPlanTask(res *reflection.Result, id, badge string) {
	task := res.Task(id)
	if task == nil {
		return
	}
	line := fmt.Sprintf("  %-12s [%s] %.2f", id, badge, task.Complexity)
	if len(task.Deps) > 0 {
		line += fmt.Sprintf("  deps: %s", strings.Join(task.Deps, ", "))
	}
	if task.Title != "" {
		line += "  " + util.TruncateString(task.Title, 40)
	}
	fmt.Println(line)
}
