package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskreflect/taskreflect/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View taskreflect configuration",
	Long: `View the effective taskreflect configuration.

Without arguments, displays the current configuration with defaults,
config file, and environment overrides applied.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Current configuration:")
	fmt.Println()

	fmt.Println("scoring:")
	fmt.Printf("  default_base:     %.2f\n", cfg.Scoring.DefaultBase)
	fmt.Printf("  dep_weight:       %.2f\n", cfg.Scoring.DepWeight)
	fmt.Printf("  dependent_weight: %.2f\n", cfg.Scoring.DependentWeight)
	fmt.Printf("  min_score:        %.2f\n", cfg.Scoring.MinScore)
	fmt.Printf("  max_score:        %.2f\n", cfg.Scoring.MaxScore)
	fmt.Println("  base_weights:")
	for _, typ := range config.ValidTaskTypes() {
		if weight, ok := cfg.Scoring.BaseWeights[typ]; ok {
			fmt.Printf("    %-8s %.2f\n", typ+":", weight)
		}
	}
	fmt.Println("  keywords:")
	for _, kw := range cfg.Scoring.Keywords {
		fmt.Printf("    %-14s +%.2f\n", kw.Word+":", kw.Bonus)
	}
	fmt.Println()

	fmt.Println("parallel:")
	fmt.Printf("  parallel_types: %s\n", strings.Join(cfg.Parallel.ParallelTypes, ", "))
	fmt.Println()

	fmt.Println("report:")
	fmt.Printf("  top_tasks: %d\n", cfg.Report.TopTasks)
	fmt.Println()

	fmt.Println("watch:")
	fmt.Printf("  debounce_ms: %d\n", cfg.Watch.DebounceMs)
	fmt.Printf("  extensions:  %s\n", strings.Join(cfg.Watch.Extensions, ", "))
	fmt.Println()

	fmt.Println("logging:")
	fmt.Printf("  enabled:     %t\n", cfg.Logging.Enabled)
	fmt.Printf("  level:       %s\n", cfg.Logging.Level)
	fmt.Printf("  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Printf("  max_backups: %d\n", cfg.Logging.MaxBackups)
	fmt.Println()

	fmt.Println("tui:")
	fmt.Printf("  sidebar_width: %d\n", cfg.TUI.SidebarWidth)
	fmt.Println()

	fmt.Println("paths:")
	fmt.Printf("  tasks_file: %s\n", cfg.Paths.TasksFile)
	fmt.Println()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Printf("Config file: %s\n", used)
	} else {
		fmt.Println("Config file: (none, using defaults)")
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := config.ConfigFile()
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("%s (does not exist yet)\n", path)
		return nil
	}
	fmt.Println(path)
	return nil
}
