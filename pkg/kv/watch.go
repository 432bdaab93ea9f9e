package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay collapses bursts of writes (temp file create, chmod,
// rename) into a single event per key.
const debounceDelay = 50 * time.Millisecond

// Watch reports changes to keys matching pattern (doublestar syntax, e.g.
// "token" or "*"). The returned channel is closed when ctx is done.
func (s *FileStore) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}
	if err := os.MkdirAll(s.config.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.config.Dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.config.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.config.Dir, err)
	}

	events := make(chan Event)
	w := &watchLoop{
		store:     s,
		pattern:   pattern,
		watcher:   watcher,
		events:    events,
		debouncer: newDebouncer(debounceDelay),
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(fmt.Errorf("watcher: %w", err))
		} else if s.config.Logger != nil {
			s.config.Logger.Error("watcher stopped", "error", err)
		}
	}))
	return events, nil
}

type watchLoop struct {
	store     *FileStore
	pattern   string
	watcher   *fsnotify.Watcher
	events    chan Event
	debouncer *debouncer
}

func (w *watchLoop) run(ctx context.Context) error {
	defer close(w.events)
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err := w.loop(ctx)
	w.debouncer.stopAndWait()
	return err
}

func (w *watchLoop) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case werr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.store.config.Logger != nil {
				w.store.config.Logger.Error("fsnotify error", "error", werr)
			}
			if w.store.config.ErrorHandler != nil {
				w.store.config.ErrorHandler(werr)
			}
		}
	}
}

func (w *watchLoop) handle(ctx context.Context, event fsnotify.Event) {
	if isTempFile(event.Name) {
		return
	}
	key := filepath.Base(event.Name)
	if ValidateKey(key) != nil {
		return
	}
	if ok, err := doublestar.Match(w.pattern, key); err != nil || !ok {
		return
	}

	var typ EventType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		typ = EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		typ = EventSet
	default:
		return
	}

	if w.store.config.Logger != nil {
		w.store.config.Logger.Debug("kv event", "key", key, "type", typ)
	}

	w.debouncer.add(key, func() {
		// The final state of the file decides the event type; a rename
		// onto the key reports as a remove of the temp name and a create
		// of the key, in either order.
		e := Event{Type: typ, Key: key, Timestamp: time.Now().Unix()}
		if _, err := os.Stat(w.store.Path(key)); err == nil {
			e.Type = EventSet
		} else {
			e.Type = EventDelete
		}
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, timers: make(map[string]*time.Timer)}
}

func (d *debouncer) add(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok && t.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		if d.timers[key] == t {
			delete(d.timers, key)
		}
		d.mu.Unlock()
		fn()
	})
	d.timers[key] = t
}

// stopAndWait drops pending events and waits for in-flight callbacks.
func (d *debouncer) stopAndWait() {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
