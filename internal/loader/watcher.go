package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/collisiondb/collisiondb/internal/metrics"
	"github.com/collisiondb/collisiondb/internal/store"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/fsnotify/fsnotify"
)

// Reload loads l and publishes the result as the store's new snapshot. On
// failure the current snapshot stays in place.
func Reload(ctx context.Context, l Loader, s *store.Store) (*store.Snapshot, error) {
	records, err := l.Load(ctx)
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load %s: %w", l.Source(), err)
	}

	snap, err := s.Replace(records)
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ReloadsTotal.WithLabelValues("ok").Inc()
	metrics.RecordsLoaded.Set(float64(snap.Len()))
	return snap, nil
}

const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads the store whenever the loader's source file is written.
// Bursts of writes within Debounce trigger a single reload.
type Watcher struct {
	Debounce time.Duration
	// OnReload, if set, is called after every reload attempt.
	OnReload func(*store.Snapshot, error)

	loader  Loader
	store   *store.Store
	path    string
	watcher *fsnotify.Watcher

	// one reload at a time, so snapshots are published in load order
	reloading sync.Mutex
}

func NewWatcher(l Loader, s *store.Store) (*Watcher, error) {
	path, err := filepath.Abs(l.Source())
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// editors and exporters often replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		Debounce: DefaultDebounce,
		loader:   l,
		store:    s,
		path:     path,
		watcher:  watcher,
	}, nil
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != w.path {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, func() { w.reload(ctx) })
			mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			pkg.ErrorLog("data watcher:", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	w.reloading.Lock()
	defer w.reloading.Unlock()

	if ctx.Err() != nil {
		return
	}
	pkg.InfoLog("data file changed, reloading", w.path)
	snap, err := Reload(ctx, w.loader, w.store)
	if err != nil {
		pkg.ErrorLog("reload failed:", err)
	}
	if w.OnReload != nil {
		w.OnReload(snap, err)
	}
}

func (w *Watcher) Close() error { return w.watcher.Close() }
