package conf

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/logger"
)

// Watcher watches the config file for changes and triggers reload callbacks.
// Long-running commands (none of the core write paths) use it to pick up
// query limit changes without a restart.
type Watcher struct {
	configPath     string
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	done           chan struct{}
}

// ReloadCallback is called with the freshly loaded config after a file change
type ReloadCallback func(*Config) error

// NewWatcher creates a config file watcher for the given path
func NewWatcher(configPath string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch config file %s", configPath)
	}

	return &Watcher{
		configPath:     configPath,
		watcher:        watcher,
		debouncePeriod: 500 * time.Millisecond, // editors fire several events per save
		done:           make(chan struct{}),
	}, nil
}

// OnReload registers a callback to run when the config file changes
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching in a goroutine. Stop terminates it.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Logger.Warnw("config watcher error",
				logger.FieldError, err,
				"path", w.configPath,
			)
		}
	}
}

// scheduleReload debounces rapid file change events into a single reload
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.reload)
}

func (w *Watcher) reload() {
	config, err := LoadFromFile(w.configPath)
	if err != nil {
		logger.Logger.Warnw("config reload failed",
			logger.FieldError, err,
			"path", w.configPath,
		)
		return
	}
	config.Normalize()

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		if err := cb(config); err != nil {
			logger.Logger.Warnw("config reload callback failed",
				logger.FieldError, err,
			)
		}
	}
}

// Stop terminates the watcher and releases the underlying fsnotify resources
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
