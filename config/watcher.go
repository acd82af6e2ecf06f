package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultWatchDebounce is how long a watched file must stay quiet before the
// change callback runs.
const DefaultWatchDebounce = 150 * time.Millisecond

// Watcher reports changes to a fixed set of configuration files.
//
// fsnotify is pointed at the parent directories rather than the files, so
// editors that save by writing a temp file and renaming it over the original
// are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	onChange func(file string)
	logger   *logrus.Entry

	mu      sync.Mutex
	timer   *time.Timer
	pending string
}

// NewWatcher watches files and calls onChange with the last changed file once
// writes have settled for debounce. Files that do not exist yet are still
// watched if their directory exists.
func NewWatcher(files []string, debounce time.Duration, onChange func(string), logger *logrus.Entry) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	w := &Watcher{
		watcher:  watcher,
		files:    make(map[string]bool),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		if file == "" {
			continue
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			continue
		}
		// Symlinked config files are tracked through their targets.
		if target, err := filepath.EvalSymlinks(abs); err == nil && target != abs {
			w.files[target] = true
			w.addDir(filepath.Dir(target), watchedDirs)
		}
		w.files[abs] = true
		w.addDir(filepath.Dir(abs), watchedDirs)
	}
	if len(watchedDirs) == 0 {
		watcher.Close()
		return nil, os.ErrNotExist
	}
	return w, nil
}

func (w *Watcher) addDir(dir string, watched map[string]bool) {
	if watched[dir] {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.WithError(err).Debugf("Not watching %s", dir)
		return
	}
	watched[dir] = true
	w.logger.Debugf("Watching config directory: %s", dir)
}

// Watched reports whether path is one of the watched files.
func (w *Watcher) Watched(path string) bool {
	return w.files[filepath.Clean(path)]
}

// Start processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !w.Watched(event.Name) {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			w.handleChange(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.Close()
			return
		}
	}
}

// handleChange restarts the quiet period; the callback runs when it ends.
func (w *Watcher) handleChange(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = file
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		file := w.pending
		w.timer = nil
		w.mu.Unlock()

		w.logger.Infof("Config changed: %s", filepath.Base(file))
		if w.onChange != nil {
			w.onChange(file)
		}
	})
}

// Close stops the watcher and any pending callback.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
