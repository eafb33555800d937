package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce groups a burst of write events for one file into a single rescan.
const debounce = 100 * time.Millisecond

// Watcher re-runs a scan on files as they change. It owns the fsnotify
// watcher and calls back into the scan logic; it knows nothing about modes
// or patterns.
type Watcher struct {
	watcher    *fsnotify.Watcher
	logger     *zap.Logger
	extensions []string
	onChange   func(path string)
	isWatching bool
}

// NewWatcher creates a watcher that invokes onChange for every changed file
// with one of the given extensions.
func NewWatcher(logger *zap.Logger, extensions []string, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{
		watcher:    fw,
		logger:     logger,
		extensions: extensions,
		onChange:   onChange,
	}, nil
}

// StartWatching registers the given files and directories (directories
// recursively) and starts the watch loop.
func (w *Watcher) StartWatching(paths []string) error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	for _, p := range paths {
		err := filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("adding %s to watcher: %w", p, err)
		}
		// a plain file is watched directly
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				return fmt.Errorf("adding %s to watcher: %w", p, err)
			}
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

// StopWatching ends the watch loop and releases the watcher.
func (w *Watcher) StopWatching() error {
	if !w.isWatching {
		w.logger.Debug("not watching")
	}
	w.isWatching = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !w.hasWatchedExtension(event.Name) {
		return
	}
	// wait for a while after the change so a burst of writes is one rescan
	time.Sleep(debounce)
	w.onChange(event.Name)
}

func (w *Watcher) hasWatchedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
