package store

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-jobflow/internal/core/constants"
	"github.com/penwyp/go-jobflow/internal/util"
)

const fixturePattern = "*.json"

// Watcher signals when the JSON files of a fixture directory change.
// Bursts of writes are coalesced, and a reload is only signalled when the
// directory's content fingerprint actually changed.
type Watcher struct {
	dir         string
	watcher     *fsnotify.Watcher
	reloads     chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
	debounce    time.Duration
	fingerprint string
	logger      util.LoggerInterface
}

// NewWatcher starts watching dir.
func NewWatcher(dir string) (*Watcher, error) {
	return newWatcher(dir, constants.ReloadDebounce)
}

func newWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	fingerprint, err := util.CalculateDirFingerprint(dir, fixturePattern)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		dir:         dir,
		watcher:     fsw,
		reloads:     make(chan struct{}, 1),
		done:        make(chan struct{}),
		debounce:    debounce,
		fingerprint: fingerprint,
	}
	if l := util.GetLogger(); l != nil {
		w.logger = l.Named("watcher").With(util.F("dir", dir))
	}

	w.wg.Add(1)
	go w.processEvents()
	return w, nil
}

// Reloads delivers one value per detected change. Signals that arrive
// while a previous one is still pending are merged.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			w.debugf("fixture event %s %s", event.Op.String(), filepath.Base(event.Name))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.checkChanged()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("fixture watch error", util.F("dir", w.dir), util.F("error", err.Error()))
		}
	}
}

func (w *Watcher) checkChanged() {
	fingerprint, err := util.CalculateDirFingerprint(w.dir, fixturePattern)
	if err != nil {
		util.LogWarn("fingerprint failed", util.F("dir", w.dir), util.F("error", err.Error()))
		return
	}
	if fingerprint == w.fingerprint {
		w.debugf("fixtures unchanged, skipping reload")
		return
	}
	w.fingerprint = fingerprint

	select {
	case w.reloads <- struct{}{}:
	default:
	}
}

func (w *Watcher) debugf(format string, args ...interface{}) {
	if w.logger != nil {
		w.logger.Debugf(format, args...)
	}
}
