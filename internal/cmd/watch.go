package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskreflect/taskreflect/internal/config"
	"github.com/taskreflect/taskreflect/internal/logging"
	"github.com/taskreflect/taskreflect/internal/reflection"
	"github.com/taskreflect/taskreflect/internal/report"
	"github.com/taskreflect/taskreflect/internal/taskfile"
	"github.com/taskreflect/taskreflect/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [tasks-file]",
	Short: "Re-reflect the tasks file whenever it changes",
	Long: `Watch the tasks file and re-run reflection on every settled change.

Editor save bursts are debounced and writes that do not change the file
content are ignored. Each pass is independent: the file is re-read, the
graph rebuilt, and the outputs rewritten. Press Ctrl-C to stop.

Examples:
  # Watch the default tasks file
  taskreflect watch

  # Keep a markdown report current as well
  taskreflect watch backlog.json --report TASKS.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var (
	watchOut      string
	watchReport   string
	watchDebounce time.Duration
)

func init() {
	watchCmd.Flags().StringVar(&watchOut, "out", "tasks.reflected.json", "Where to write the reflected tasks file")
	watchCmd.Flags().StringVar(&watchReport, "report", "", "Keep a markdown report up to date at this path")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Settle window after the last change (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := tasksFilePath(cfg, args)

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve tasks file: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("tasks file not accessible: %w", err)
	}

	logger, err := watchLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	logger = logger.WithTasksFile(path)

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = cfg.Watch.Debounce()
	}

	watcher, err := watch.New(watch.Config{
		Debounce:   debounce,
		Extensions: cfg.Watch.Extensions,
	}, logger)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.AddDir(filepath.Dir(abs)); err != nil {
		return err
	}
	watcher.Prime(abs)

	engine := reflection.NewEngine(cfg.ToEngine())
	watcher.SetChangeCallback(func(changed string) {
		if changed != abs {
			return
		}
		reflectOnce(engine, cfg, path, logger)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run once up front so the outputs exist before the first edit
	reflectOnce(engine, cfg, path, logger)

	fmt.Printf("Watching %s (debounce %s, Ctrl-C to stop)\n", path, debounce)
	logger.Info("watch started", "debounce", debounce.String())

	watcher.Start(ctx)
	<-ctx.Done()

	stats := watcher.Stats()
	logger.Info("watch stopped", "events", stats.TotalEvents, "triggered", stats.Triggered, "skipped", stats.Skipped)
	fmt.Printf("\nStopped after %d reflection(s)\n", stats.Triggered)
	return nil
}

// watchLogger builds the session logger; disabled logging gets a no-op.
func watchLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logDir := filepath.Join(config.ConfigDir(), "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return logging.NewLogger(logDir, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

// reflectOnce runs one full pass and reports the outcome on stdout and
// in the log. Defects are not fatal in watch mode; the next edit gets a
// fresh pass.
func reflectOnce(engine *reflection.Engine, cfg *config.Config, path string, logger *logging.Logger) {
	f, err := taskfile.Load(path)
	if err != nil {
		logger.Error("load failed", "error", err.Error())
		fmt.Printf("[%s] load failed: %v\n", timestamp(), err)
		return
	}
	g, err := f.Graph()
	if err != nil {
		logger.Error("graph construction failed", "error", err.Error())
		fmt.Printf("[%s] invalid tasks: %v\n", timestamp(), err)
		return
	}

	res, err := engine.Reflect(g)
	if err != nil {
		logger.Warn("reflection rejected graph", "error", err.Error())
		fmt.Printf("[%s] defects found:\n", timestamp())
		printReflectionFailure(path, err)
		return
	}

	f.ApplyResult(res)
	if err := f.Save(watchOut); err != nil {
		logger.Error("save failed", "error", err.Error())
		fmt.Printf("[%s] save failed: %v\n", timestamp(), err)
		return
	}

	if watchReport != "" {
		an, err := reflection.Analyze(g)
		if err == nil {
			md := report.Build(res, an, report.Options{TopTasks: cfg.Report.TopTasks})
			if err := os.WriteFile(watchReport, []byte(md), 0644); err != nil {
				logger.Error("report write failed", "error", err.Error())
			}
		}
	}

	logger.Info("reflected", "tasks", len(res.Tasks), "groups", len(res.Groups))
	fmt.Printf("[%s] reflected %d tasks into %d groups -> %s\n",
		timestamp(), len(res.Tasks), len(res.Groups), watchOut)
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
