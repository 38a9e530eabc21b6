// Package watch reloads the task store when its storage file changes on disk,
// so edits from another process show up in a running board or watch session.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the watcher waits for writes to settle.
const DefaultDelay = 200 * time.Millisecond

// Reloader is implemented by *store.Store. A failed Reload must leave
// the current state in place.
type Reloader interface {
	Reload() error
}

// Config configures a Watcher.
type Config struct {
	// Path is the storage file to watch. Its directory must exist.
	Path string
	// Delay overrides DefaultDelay.
	Delay  time.Duration
	Logger *slog.Logger
	// OnReload is called after every successful reload.
	OnReload func()
}

// Watcher reloads a Reloader whenever Path (or its sidecar files) change.
type Watcher struct {
	path     string
	target   Reloader
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	hashes   *ContentHashTracker
	logger   *slog.Logger
	onReload func()
}

// New creates a Watcher for cfg.Path. Call Run to start it.
func New(target Reloader, cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: no file to watch (in-memory storage?)")
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	// Writes replace the file by rename, so watch the directory.
	dir := filepath.Dir(cfg.Path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:     cfg.Path,
		target:   target,
		watcher:  fw,
		hashes:   NewContentHashTracker(),
		logger:   cfg.Logger,
		onReload: cfg.OnReload,
	}
	w.debounce = NewDebouncer(cfg.Delay, w.reload)
	// Seed the tracker so the first real change is detected.
	w.hashes.HasChanged(w.files()...)
	return w, nil
}

// Run processes events until ctx is cancelled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.debounce.Stop()
		_ = w.watcher.Close()
	}()

	w.logger.Debug("watching task storage", "path", w.path)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(w.path)
	switch filepath.Base(name) {
	case base, base + ".checksum", base + "-wal":
		return true
	}
	return false
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.relevant(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.logger.Debug("storage changed", "file", event.Name, "op", event.Op.String())
	w.debounce.Trigger()
}

// files are the paths whose combined content defines the stored state.
// SQLite commits land in the WAL before they reach the main file.
func (w *Watcher) files() []string {
	return []string{w.path, w.path + "-wal"}
}

func (w *Watcher) reload() {
	// Events that leave the content unchanged, such as a sidecar rename, are skipped.
	if !w.hashes.HasChanged(w.files()...) {
		return
	}
	if err := w.target.Reload(); err != nil {
		// Forget the hash so the next event retries instead of being skipped.
		w.hashes.Forget(w.path)
		w.logger.Warn("reload failed, keeping current state", "path", w.path, "error", err)
		return
	}
	w.logger.Info("reloaded task state", "path", w.path)
	if w.onReload != nil {
		w.onReload()
	}
}

// Debouncer coalesces bursts of triggers into one call.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	fn      func()
	stopped bool
}

// NewDebouncer returns a debouncer that calls fn delay after the last Trigger.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the timer.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if !stopped {
		d.fn()
	}
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// ContentHashTracker remembers file content hashes to detect real changes.
type ContentHashTracker struct {
	mu     sync.Mutex
	hashes map[string]string
}

// NewContentHashTracker creates an empty tracker.
func NewContentHashTracker() *ContentHashTracker {
	return &ContentHashTracker{hashes: make(map[string]string)}
}

// HasChanged reports whether the combined content of paths differs from
// the last call with the same first path. Missing files contribute nothing,
// so removal counts as a change.
func (t *ContentHashTracker) HasChanged(paths ...string) bool {
	if len(paths) == 0 {
		return false
	}
	hash, err := computeHash(paths)
	if err != nil {
		// Unreadable: assume changed and let the store decide.
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	old, seen := t.hashes[paths[0]]
	t.hashes[paths[0]] = hash
	return !seen || hash != old
}

// Forget drops the remembered hash for path, so the next HasChanged
// call with it reports a change.
func (t *ContentHashTracker) Forget(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.hashes, path)
}

func computeHash(paths []string) (string, error) {
	h := sha256.New()
	for _, path := range paths {
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			_, _ = io.WriteString(h, "\x00absent:"+path)
			continue
		}
		if err != nil {
			return "", err
		}
		_, err = io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
