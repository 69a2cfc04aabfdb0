package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReanalyzeHandler is invoked, debounced, whenever the watched log grows or
// is replaced.
type ReanalyzeHandler func() error

// LogWatcher watches a single compilation log. The JVM appends to the log
// while running, so a write burst is coalesced into one re-analysis.
type LogWatcher struct {
	watcher   *fsnotify.Watcher
	path      string
	debouncer *debouncer
}

func NewLogWatcher(path string, debounce time.Duration) (*LogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve log path %s: %w", path, err)
	}

	return &LogWatcher{
		watcher:   watcher,
		path:      abs,
		debouncer: newDebouncer(debounce),
	}, nil
}

// Watch starts the event loop. Watching the parent directory instead of the
// file itself survives the rename-and-recreate pattern some JVM wrappers
// use when rotating logs.
func (lw *LogWatcher) Watch(handler ReanalyzeHandler) error {
	dir := filepath.Dir(lw.path)
	if err := lw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	go lw.eventLoop(handler)
	return nil
}

func (lw *LogWatcher) eventLoop(handler ReanalyzeHandler) {
	for {
		select {
		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			lw.handleEvent(event, handler)
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("File watcher error: %v\n", err)
		}
	}
}

func (lw *LogWatcher) handleEvent(event fsnotify.Event, handler ReanalyzeHandler) {
	if filepath.Clean(event.Name) != lw.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	lw.debouncer.trigger(handler)
}

func (lw *LogWatcher) Path() string {
	return lw.path
}

func (lw *LogWatcher) Close() error {
	lw.debouncer.stop()
	return lw.watcher.Close()
}
