// Package cmd implements the taskreflect command-line interface.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskreflect/taskreflect/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "taskreflect",
	Short: "Task dependency graph reflection",
	Long: `Taskreflect analyzes a task dependency graph: it validates referential
integrity and acyclicity, scores every task's complexity, computes a
deterministic execution order, and groups tasks into batches that are
safe to dispatch concurrently.

The tasks file is a JSON object with a "tasks" array; reflection writes
the tasks back in execution order with their computed complexity.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskreflect/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if _, err := os.Stat("taskreflect.yaml"); err == nil {
		// A taskreflect.yaml next to the tasks file wins over the user config
		viper.SetConfigFile("taskreflect.yaml")
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/taskreflect")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKREFLECT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TASKREFLECT_WATCH_DEBOUNCE_MS for watch.debounce_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
