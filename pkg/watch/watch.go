/*
Package watch reports edits of a project's .insightsIgnore file.

The root directory itself is watched, not the file, so that creating,
replacing or deleting the rules file is seen as well. Bursts of events are
coalesced into a single callback.
*/
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sonemaro/insights/pkg/ignore"
	"github.com/sonemaro/insights/pkg/logger"
)

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 200 * time.Millisecond

// Watcher calls OnChange after the rules file of a root changed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	log      logger.Logger

	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// New starts watching root. onChange runs on an internal goroutine.
func New(root string, delay time.Duration, onChange func(), log logger.Logger) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(root); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}

	w := &Watcher{
		watcher:  fw,
		path:     filepath.Clean(ignore.Path(root)),
		onChange: onChange,
		log:      log.Named("watch"),
		delay:    delay,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processEvents()

	w.log.WithFields(logger.Fields{
		"path":  w.path,
		"delay": delay,
	}).Debug("Watching rules file")

	return w, nil
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithFields(logger.Fields{
				"error": err,
			}).Warn("Watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.log.WithFields(logger.Fields{
		"op": event.Op.String(),
	}).Debug("Rules file changed")

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.timer = nil
	w.mu.Unlock()

	if !closed {
		w.onChange()
	}
}

// Close stops watching. No callback starts after Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
