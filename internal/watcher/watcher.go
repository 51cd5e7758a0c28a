// Package watcher monitors the library root for newly arrived media-event
// folders.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains watcher settings.
type Config struct {
	DebounceSeconds int      // Delay before processing a new folder (default: 2)
	IgnorePatterns  []string // Glob patterns for folder names to ignore
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DebounceSeconds: 2,
		IgnorePatterns:  DefaultIgnorePatterns(),
	}
}

// Summary contains stats from a watch session.
type Summary struct {
	FoldersSeen    int
	FoldersIgnored int
	Errors         int
	Duration       time.Duration
}

// FolderHandler processes one newly arrived folder. It is invoked
// sequentially; a new folder is never handled while another is in flight.
type FolderHandler func(path string) error

// Watcher monitors the library root for new child directories.
type Watcher struct {
	config    *Config
	handler   FolderHandler
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	filter    *FolderFilter
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	mu             sync.Mutex
	foldersSeen    int
	foldersIgnored int
	errors         int
}

// New creates a Watcher. If config is nil, defaults are used. The handler is
// called for each new folder after its events settle.
func New(config *Config, handler FolderHandler) *Watcher {
	if config == nil {
		config = DefaultConfig()
	}
	return &Watcher{
		config:  config,
		handler: handler,
		filter:  NewFolderFilter(config.IgnorePatterns),
		done:    make(chan struct{}),
	}
}

// Start begins watching the library root. The watcher runs until Stop is
// called.
func (w *Watcher) Start(root string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		w.fsWatcher.Close()
		return err
	}
	if err := w.fsWatcher.Add(absRoot); err != nil {
		w.fsWatcher.Close()
		return err
	}

	delay := time.Duration(w.config.DebounceSeconds) * time.Second
	w.debouncer = NewDebouncer(delay, w.handleFolder)

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop shuts down the watcher and returns a summary of the session.
func (w *Watcher) Stop() *Summary {
	close(w.done)
	w.wg.Wait()

	if w.debouncer != nil {
		w.debouncer.Stop()
	}
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return &Summary{
		FoldersSeen:    w.foldersSeen,
		FoldersIgnored: w.foldersIgnored,
		Errors:         w.errors,
		Duration:       time.Since(w.startTime),
	}
}

// processEvents handles filesystem events from fsnotify.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Create covers both fresh folders and folders moved into the
			// root; Rename/Remove of a pending folder cancels it.
			if event.Op&fsnotify.Create != 0 {
				w.handleCreate(event.Name)
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && w.debouncer != nil {
				w.debouncer.Cancel(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.errors++
			w.mu.Unlock()
		}
	}
}

// handleCreate schedules a newly created directory for processing.
func (w *Watcher) handleCreate(path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return
	}

	if w.filter.ShouldIgnore(filepath.Base(path)) {
		w.mu.Lock()
		w.foldersIgnored++
		w.mu.Unlock()
		return
	}

	w.debouncer.Add(path)
}

// handleFolder runs the handler for one settled folder.
func (w *Watcher) handleFolder(path string) {
	w.mu.Lock()
	w.foldersSeen++
	w.mu.Unlock()

	if w.handler == nil {
		return
	}
	if err := w.handler(path); err != nil {
		w.mu.Lock()
		w.errors++
		w.mu.Unlock()
	}
}

// IsRunning reports whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	select {
	case <-w.done:
		return false
	default:
		return w.fsWatcher != nil
	}
}
