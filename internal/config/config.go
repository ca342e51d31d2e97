package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/taskreflect/taskreflect/internal/reflection"
)

// Config represents the complete taskreflect configuration
type Config struct {
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Parallel ParallelConfig `mapstructure:"parallel"`
	Report   ReportConfig   `mapstructure:"report"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// ScoringConfig controls complexity scoring. Every constant the scorer uses
// lives here, so scoring behavior is fully configurable without code changes.
type ScoringConfig struct {
	// BaseWeights maps canonical task types to their base complexity
	// (e.g. "doc": 0.8). Unlisted types fall back to DefaultBase.
	BaseWeights map[string]float64 `mapstructure:"base_weights"`
	// DefaultBase is the base complexity for types without a weight entry
	DefaultBase float64 `mapstructure:"default_base"`
	// DepWeight is added to a task's score per direct dependency
	DepWeight float64 `mapstructure:"dep_weight"`
	// DependentWeight is added to a task's score per direct dependent
	DependentWeight float64 `mapstructure:"dependent_weight"`
	// Keywords add a bonus when found in a task title. Order matters:
	// bonuses are accumulated in list order
	Keywords []KeywordWeight `mapstructure:"keywords"`
	// MinScore and MaxScore clamp the final score
	MinScore float64 `mapstructure:"min_score"`
	MaxScore float64 `mapstructure:"max_score"`
}

// KeywordWeight is one title keyword and its score bonus
type KeywordWeight struct {
	Word  string  `mapstructure:"word"`
	Bonus float64 `mapstructure:"bonus"`
}

// ParallelConfig controls which task types may run concurrently
type ParallelConfig struct {
	// ParallelTypes lists the task types safe to run in parallel with
	// their group peers. Types not listed here run sequentially
	ParallelTypes []string `mapstructure:"parallel_types"`
}

// ReportConfig controls the markdown report output
type ReportConfig struct {
	// TopTasks is how many tasks the complexity ranking section shows (default: 5)
	TopTasks int `mapstructure:"top_tasks"`
}

// WatchConfig controls watch mode behavior
type WatchConfig struct {
	// DebounceMs is how long to wait after the last file event before
	// re-reflecting, in milliseconds (default: 2000)
	DebounceMs int `mapstructure:"debounce_ms"`
	// Extensions limits watching to files with these extensions
	// (default: .json, .md, .yaml, .yml)
	Extensions []string `mapstructure:"extensions"`
}

// Debounce returns the debounce window as a time.Duration
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// SidebarWidth is the width of the groups sidebar in columns (default: 32, min: 20, max: 60)
	SidebarWidth int `mapstructure:"sidebar_width"`
}

// PathsConfig controls default file locations
type PathsConfig struct {
	// TasksFile is the tasks file used when no path argument is given (default: "tasks.json")
	TasksFile string `mapstructure:"tasks_file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	scoring := reflection.DefaultScoringConfig()

	baseWeights := make(map[string]float64, len(scoring.BaseWeights))
	for typ, weight := range scoring.BaseWeights {
		baseWeights[string(typ)] = weight
	}
	keywords := make([]KeywordWeight, len(scoring.Keywords))
	for i, kw := range scoring.Keywords {
		keywords[i] = KeywordWeight{Word: kw.Word, Bonus: kw.Bonus}
	}

	policy := reflection.DefaultParallelPolicy()
	var parallelTypes []string
	for _, typ := range reflection.KnownTypes() {
		if policy.Parallelizable(typ) {
			parallelTypes = append(parallelTypes, string(typ))
		}
	}

	return &Config{
		Scoring: ScoringConfig{
			BaseWeights:     baseWeights,
			DefaultBase:     scoring.DefaultBase,
			DepWeight:       scoring.DepWeight,
			DependentWeight: scoring.DependentWeight,
			Keywords:        keywords,
			MinScore:        scoring.Min,
			MaxScore:        scoring.Max,
		},
		Parallel: ParallelConfig{
			ParallelTypes: parallelTypes,
		},
		Report: ReportConfig{
			TopTasks: 5,
		},
		Watch: WatchConfig{
			DebounceMs: 2000,
			Extensions: []string{".json", ".md", ".yaml", ".yml"},
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		TUI: TUIConfig{
			SidebarWidth: 32,
		},
		Paths: PathsConfig{
			TasksFile: "tasks.json",
		},
	}
}

// ToScoring converts the scoring section into the engine's scoring config
func (c *ScoringConfig) ToScoring() reflection.ScoringConfig {
	baseWeights := make(map[reflection.TaskType]float64, len(c.BaseWeights))
	for raw, weight := range c.BaseWeights {
		baseWeights[reflection.NormalizeType(raw)] = weight
	}
	keywords := make([]reflection.KeywordBonus, len(c.Keywords))
	for i, kw := range c.Keywords {
		keywords[i] = reflection.KeywordBonus{Word: kw.Word, Bonus: kw.Bonus}
	}
	return reflection.ScoringConfig{
		BaseWeights:     baseWeights,
		DefaultBase:     c.DefaultBase,
		DepWeight:       c.DepWeight,
		DependentWeight: c.DependentWeight,
		Keywords:        keywords,
		Min:             c.MinScore,
		Max:             c.MaxScore,
	}
}

// ToPolicy converts the parallel section into the engine's parallel policy
func (c *ParallelConfig) ToPolicy() reflection.ParallelPolicy {
	policy := make(reflection.ParallelPolicy, len(c.ParallelTypes))
	for _, raw := range c.ParallelTypes {
		policy[reflection.NormalizeType(raw)] = true
	}
	return policy
}

// ToEngine converts the config into an engine configuration
func (c *Config) ToEngine() reflection.Config {
	return reflection.Config{
		Scoring: c.Scoring.ToScoring(),
		Policy:  c.Parallel.ToPolicy(),
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Scoring defaults
	viper.SetDefault("scoring.base_weights", defaults.Scoring.BaseWeights)
	viper.SetDefault("scoring.default_base", defaults.Scoring.DefaultBase)
	viper.SetDefault("scoring.dep_weight", defaults.Scoring.DepWeight)
	viper.SetDefault("scoring.dependent_weight", defaults.Scoring.DependentWeight)
	viper.SetDefault("scoring.keywords", defaults.Scoring.Keywords)
	viper.SetDefault("scoring.min_score", defaults.Scoring.MinScore)
	viper.SetDefault("scoring.max_score", defaults.Scoring.MaxScore)

	// Parallel defaults
	viper.SetDefault("parallel.parallel_types", defaults.Parallel.ParallelTypes)

	// Report defaults
	viper.SetDefault("report.top_tasks", defaults.Report.TopTasks)

	// Watch defaults
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	viper.SetDefault("watch.extensions", defaults.Watch.Extensions)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// TUI defaults
	viper.SetDefault("tui.sidebar_width", defaults.TUI.SidebarWidth)

	// Paths defaults
	viper.SetDefault("paths.tasks_file", defaults.Paths.TasksFile)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskreflect")
	}
	// Fall back to ~/.config/taskreflect
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskreflect"
	}
	return filepath.Join(home, ".config", "taskreflect")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
