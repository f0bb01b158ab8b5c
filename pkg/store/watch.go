package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType describes the nature of a persistence change notification.
type ChangeType int

const (
	// ChangeEvents indicates trip events were added, edited or removed.
	ChangeEvents ChangeType = iota

	// ChangeCatalog indicates the destinations or offers catalog changed.
	ChangeCatalog
)

// Change is emitted by Persistence.Watch when underlying storage changes.
type Change struct {
	Type ChangeType
}

// Watch streams change notifications until ctx is cancelled. Callers should
// drain the returned channel; it is closed once ctx is done or the watcher
// hits an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Change, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	for _, dir := range []string{p.basePath, filepath.Join(p.basePath, eventsBucket), filepath.Join(p.basePath, catalogBucket)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	changes := make(chan Change, 16)

	go func() {
		defer close(changes)
		defer closeWatcher()

		send := func(c Change) {
			select {
			case changes <- c:
			default:
				// Consumer is busy; the next flush reloads everything anyway.
			}
		}

		throttle := newChangeThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(ChangeEvents, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if p.isCatalogPath(evt.Name) {
					throttle.Enqueue(ChangeCatalog, send)
					continue
				}
				throttle.Enqueue(ChangeEvents, send)
			}
		}
	}()

	return changes, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

func (p *persistence) isCatalogPath(path string) bool {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return false
	}
	return strings.HasPrefix(rel, catalogBucket)
}

// changeThrottle coalesces bursts of filesystem writes into one notification
// per change type.
type changeThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[ChangeType]struct{}
	delay   time.Duration
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{
		delay:   delay,
		pending: make(map[ChangeType]struct{}),
	}
}

func (t *changeThrottle) Enqueue(ct ChangeType, send func(Change)) {
	t.mu.Lock()
	t.pending[ct] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *changeThrottle) flush(send func(Change)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[ChangeType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for ct := range pending {
		send(Change{Type: ct})
	}
}

func (t *changeThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
