package jsondata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-jsondata/pkg/activity"
)

const (
	defaultDebounce     = 200 * time.Millisecond
	defaultPollInterval = time.Second
)

// WatchOption configures document watching.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce     time.Duration
	pollInterval time.Duration
	onReload     func(error)
	forcePolling bool
}

// WithDebounce sets how long a burst of file events is coalesced before the
// store reloads.
func WithDebounce(d time.Duration) WatchOption {
	return func(cfg *watchConfig) {
		cfg.debounce = d
	}
}

// WithPollInterval sets the scan interval used when file notifications are
// unavailable and the watcher falls back to polling.
func WithPollInterval(d time.Duration) WatchOption {
	return func(cfg *watchConfig) {
		cfg.pollInterval = d
	}
}

// OnReload registers a callback invoked after every watcher-triggered reload
// with the result of Load.
func OnReload(fn func(error)) WatchOption {
	return func(cfg *watchConfig) {
		cfg.onReload = fn
	}
}

// withPolling forces the polling fallback. Test hook.
func withPolling() WatchOption {
	return func(cfg *watchConfig) {
		cfg.forcePolling = true
	}
}

// Watcher reloads a store when its backing document is modified externally.
type Watcher struct {
	store *Store
	cfg   watchConfig

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	fw *fsnotify.Watcher
}

// Watch starts watching the backing document for external modification.
// The parent directory is watched rather than the file itself so editors
// that replace the file by rename are still observed. When notifications
// cannot be established the watcher degrades to mtime/size polling.
func (s *Store) Watch(opts ...WatchOption) (*Watcher, error) {
	if s.path == "" {
		return nil, wrapStoreError("watch", s.path, s.keys, errors.New("empty document path"))
	}

	cfg := watchConfig{
		debounce:     defaultDebounce,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.debounce <= 0 {
		cfg.debounce = defaultDebounce
	}
	if cfg.pollInterval <= 0 {
		cfg.pollInterval = defaultPollInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:  s,
		cfg:    cfg,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	if !cfg.forcePolling {
		if fw, err := fsnotify.NewWatcher(); err == nil {
			if addErr := fw.Add(filepath.Dir(s.path)); addErr == nil {
				w.fw = fw
				go w.runNotify(ctx)
				return w, nil
			}
			fw.Close()
		}
	}

	go w.runPolling(ctx)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit. Safe to call
// more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(w.cancel)
	<-w.done
	return nil
}

func (w *Watcher) runNotify(ctx context.Context) {
	defer close(w.done)
	defer w.fw.Close()

	target := filepath.Clean(w.store.path)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.debounce)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.cfg.debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.store.storeLogger().LogStoreEvent(LogEvent{
				Op:   "watch",
				Path: w.store.path,
				Keys: w.store.keys.String(),
				Err:  err,
			})
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) runPolling(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.pollInterval)
	defer ticker.Stop()

	last := w.stamp()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := w.stamp()
			if current != last {
				last = current
				w.reload()
			}
		}
	}
}

type fileStamp struct {
	exists  bool
	size    int64
	modTime int64
}

func (w *Watcher) stamp() fileStamp {
	info, err := os.Stat(w.store.path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, size: info.Size(), modTime: info.ModTime().UnixNano()}
}

func (w *Watcher) reload() {
	err := w.store.Load()
	w.store.emit(activity.BuildDocumentChangedEvent(activity.StoreEventInput{
		Path:   w.store.path,
		Reason: "external_modify",
		Err:    err,
	}))
	if w.cfg.onReload != nil {
		w.cfg.onReload(err)
	}
}
