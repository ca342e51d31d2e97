// Package logging provides structured JSON logging for taskreflect.
//
// # Features
//
//   - JSON-formatted log entries via log/slog
//   - Context propagation: component, tasks file, and strategy attributes
//     carry through child loggers
//   - Log rotation with configurable size limits and backup counts
//   - Level filtering: DEBUG, INFO, WARN, ERROR
//
// # Thread Safety
//
// Logger and RotatingWriter are safe for concurrent use. Child loggers
// created via With* methods share the underlying writer.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(logDir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//
//	logger.Info("reflection complete", "tasks", 12, "groups", 4)
//
// # Context Propagation
//
// Child loggers attach context that appears on every entry:
//
//	watchLog := logger.WithComponent("watch").WithTasksFile("tasks.json")
//	watchLog.Debug("change detected", "event", "write")
//
// produces entries like:
//
//	{"time":"...","level":"DEBUG","msg":"change detected","component":"watch","tasks_file":"tasks.json","event":"write"}
package logging
