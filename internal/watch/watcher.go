// Package watch triggers re-reflection when the tasks file or its
// neighbors change on disk. It debounces editor save bursts and hashes
// file content so no-op writes never fire the callback.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/taskreflect/taskreflect/internal/errors"
	"github.com/taskreflect/taskreflect/internal/logging"
)

// DefaultDebounce is how long the watcher waits after the last event
// before firing, matching the original reflector's settle window.
const DefaultDebounce = 2 * time.Second

// DefaultExtensions returns the file extensions that trigger callbacks
// when no explicit list is configured.
func DefaultExtensions() []string {
	return []string{".json", ".md", ".yaml", ".yml"}
}

// Stats counts watcher activity since Start.
type Stats struct {
	// TotalEvents is every filesystem event seen, including filtered ones.
	TotalEvents int
	// Triggered is the number of callback invocations.
	Triggered int
	// Skipped counts events dropped by the extension filter or the
	// content hash check.
	Skipped int
}

// Config controls debounce and filtering.
type Config struct {
	// Debounce is the settle window after the last event. Zero uses
	// DefaultDebounce.
	Debounce time.Duration
	// Extensions filters which files fire the callback (matched
	// case-insensitively). Empty uses DefaultExtensions.
	Extensions []string
}

// Watcher observes directories and invokes a callback once per settled,
// content-changing write to a matching file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	exts     map[string]bool

	// Callback for settled changes
	onChange func(path string)

	// Map of path -> last seen content digest
	hashes map[string]string

	stats  Stats
	logger *logging.Logger

	mu       sync.RWMutex
	closed   bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. A nil logger discards watch logs.
func New(cfg Config, logger *logging.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewWatchError("failed to create watcher", err)
	}

	if logger == nil {
		logger = logging.NopLogger()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}

	return &Watcher{
		watcher:  watcher,
		debounce: debounce,
		exts:     exts,
		hashes:   make(map[string]string),
		logger:   logger.WithComponent("watch"),
		stopCh:   make(chan struct{}),
	}, nil
}

// SetChangeCallback sets the callback invoked for each settled change.
// The callback runs on the watch goroutine.
func (w *Watcher) SetChangeCallback(cb func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = cb
}

// AddDir starts watching a directory. Events fire for files directly
// inside it; watch the tasks file's directory rather than the file
// itself so atomic save-by-rename is still observed.
func (w *Watcher) AddDir(dir string) error {
	w.mu.RLock()
	closed := w.closed
	w.mu.RUnlock()
	if closed {
		return errors.NewWatchError("cannot add directory", errors.ErrWatchClosed).WithPath(dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return errors.NewWatchError("watch path does not exist", err).WithPath(dir)
	}
	if !info.IsDir() {
		return errors.NewWatchError("watch path is not a directory", fmt.Errorf("%s is a file", dir)).WithPath(dir)
	}

	if err := w.watcher.Add(dir); err != nil {
		return errors.NewWatchError("failed to watch directory", err).WithPath(dir)
	}
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Prime records the current content hash of a file so the first watch
// event only fires if the content actually differs from it.
func (w *Watcher) Prime(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hashes[path] = digest(data)
}

// Start begins processing events until Stop is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

// Stop stops the watcher and releases resources. Safe to call more
// than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.stopCh)
		_ = w.watcher.Close()
	})
}

// Stats returns a snapshot of the activity counters.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// watchLoop processes filesystem events with debouncing. Editors
// produce several events per save; changes are collected until the
// debounce window passes without a new one.
func (w *Watcher) watchLoop(ctx context.Context) {
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about operations that change file content
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			w.stats.TotalEvents++
			w.mu.Unlock()

			if !w.shouldProcess(event.Name) {
				w.recordSkip()
				continue
			}

			pending[event.Name] = struct{}{}
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})

			for _, path := range paths {
				w.dispatch(path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err.Error())
		}
	}
}

// shouldProcess filters events down to existing regular files with a
// configured extension.
func (w *Watcher) shouldProcess(path string) bool {
	if !w.exts[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

// dispatch fires the callback for a settled change, unless the file
// content is identical to what was seen last time.
func (w *Watcher) dispatch(path string) {
	if !w.contentChanged(path) {
		w.recordSkip()
		w.logger.Debug("content unchanged, skipping", "file", path)
		return
	}

	w.mu.Lock()
	w.stats.Triggered++
	cb := w.onChange
	w.mu.Unlock()

	w.logger.Info("change detected", "file", path)
	if cb != nil {
		cb(path)
	}
}

// contentChanged hashes the file and compares against the previous
// digest. Unreadable files count as changed so the caller can surface
// the problem.
func (w *Watcher) contentChanged(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("failed to hash file", "file", path, "error", err.Error())
		return true
	}
	sum := digest(data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hashes[path] == sum {
		return false
	}
	w.hashes[path] = sum
	return true
}

func (w *Watcher) recordSkip() {
	w.mu.Lock()
	w.stats.Skipped++
	w.mu.Unlock()
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
