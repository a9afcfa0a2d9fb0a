// Package watch reports changes to the database file so views can recompute.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/logger"
)

// Watcher emits a debounced event whenever the database file or its
// journal files change.
type Watcher struct {
	fs       *fsnotify.Watcher
	base     string
	debounce time.Duration
	events   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once
}

// New watches the directory holding dbPath.
func New(dbPath string) (*Watcher, error) {
	return newWatcher(dbPath, constants.WatchDebounce)
}

func newWatcher(dbPath string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fs:       fw,
		base:     filepath.Base(abs),
		debounce: debounce,
		events:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	logger.Debug("watching database", "path", abs)
	return w, nil
}

// Events delivers one value per burst of changes. The channel is closed by Close.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.events)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("database watcher error", "error", err)

		case <-fire:
			fire = nil
			select {
			case w.events <- struct{}{}:
			default:
				// A change is already pending for the reader.
			}
		}
	}
}

// relevant matches the db file itself and its -wal, -journal and -shm siblings.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), w.base)
}
