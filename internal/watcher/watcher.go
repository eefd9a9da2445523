// file: internal/watcher/watcher.go
// version: 1.0.0
// guid: 3ab00cec-e932-40a7-b5b3-991899093a0a

// Package watcher monitors mission folders and triggers re-validation when
// mission content changes.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// missionExtensions are the mission file extensions that trigger a run.
var missionExtensions = map[string]bool{
	".sqm": true,
	".sqf": true,
	".ext": true,
}

// missionListFiles are the sidecar list files that trigger a run.
var missionListFiles = map[string]bool{
	"equipment.txt": true,
	"assets.txt":    true,
}

const (
	// DefaultDebounce is how long events must settle before a run.
	DefaultDebounce = 2 * time.Second
	// DefaultMinInterval is the minimum spacing between two runs.
	DefaultMinInterval = 10 * time.Second
)

// Callback is invoked after changes settle, with the watched root.
type Callback func(rootDir string)

// Watcher monitors a mission tree for relevant changes and invokes a
// callback after a debounce period, rate limited so editor save bursts and
// long validation runs cannot stack up.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	rootDir   string
	debounce  time.Duration
	limiter   *rate.Limiter
	callback  Callback
	stop      chan struct{}
	stopped   chan struct{}
	mu        sync.Mutex
	timer     *time.Timer
	running   bool
}

// New creates a Watcher. Zero durations select the defaults.
func New(callback Callback, debounce, minInterval time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Watcher{
		debounce: debounce,
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		callback: callback,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins watching rootDir recursively. Calling Start on a watcher
// that is already running is a no-op.
func (w *Watcher) Start(rootDir string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsWatcher = fsw
	w.rootDir = rootDir

	if err := w.addRecursive(rootDir); err != nil {
		fsw.Close()
		return err
	}

	go w.eventLoop()
	return nil
}

// Stop shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stop)
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}
	<-w.stopped

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible dirs
		}
		if d.IsDir() {
			if watchErr := w.fsWatcher.Add(path); watchErr != nil {
				log.Printf("[WARN] watcher: cannot watch %s: %v", path, watchErr)
			}
		}
		return nil
	})
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ERROR] watcher: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New mission folders need their own watches.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
		}
	}

	relevant := event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0
	if !relevant || !IsMissionFile(event.Name) {
		return
	}

	w.scheduleRun()
}

func (w *Watcher) scheduleRun() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.timer == nil {
		w.mu.Unlock()
		return
	}
	if !w.limiter.Allow() {
		// A run happened too recently; try again after another debounce.
		w.timer.Reset(w.debounce)
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	log.Printf("[INFO] watcher: mission content changed under %s", w.rootDir)
	if w.callback != nil {
		w.callback(w.rootDir)
	}
}

// IsMissionFile reports whether name is mission content worth re-validating.
func IsMissionFile(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	if missionListFiles[base] {
		return true
	}
	return missionExtensions[filepath.Ext(base)]
}
