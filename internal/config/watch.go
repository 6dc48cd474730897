package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits for a burst of file events to end
// before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file into a Store when it changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	store    *Store
	loader   *Loader
	logger   *zap.Logger
	debounce time.Duration

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithWatchLogger sets the logger for reload diagnostics.
func WithWatchLogger(logger *zap.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets the debounce interval.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLoader sets the loader used for reloads.
func WithLoader(l *Loader) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.loader = l
		}
	}
}

// Watch starts watching path and replaces the contents of store on every
// successful reload. The directory is watched rather than the file so that
// editors which save by renaming are picked up. A reload that fails is
// logged and the previous configuration stays in place.
//
// The watcher stops when ctx is done or Close is called.
func Watch(ctx context.Context, path string, store *Store, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		store:    store,
		loader:   &Loader{},
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
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
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous settings",
			zap.String("path", w.path),
			zap.Error(err),
		)
		return
	}
	w.store.Replace(cfg)
	w.logger.Info("config reloaded",
		zap.String("path", w.path),
		zap.String("default", cfg.Heading.Default),
		zap.Int("formats", len(cfg.Heading.Options)),
	)
}
