// Package watcher reports new screenshots in a capture directory
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/shotdrop/core"
)

// DefaultSettle is how long a file must stay unchanged before it is reported
const DefaultSettle = 500 * time.Millisecond

// imageExts are the capture formats worth filing
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether path has a capture extension, case-insensitive
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Capture is a screenshot that finished writing
type Capture struct {
	Path string
	Size int64
	At   time.Time
}

// Watcher emits a Capture once per settled image file in one directory
type Watcher struct {
	fs     *fsnotify.Watcher
	dir    string
	settle time.Duration

	// path -> time of last write event
	pending map[string]time.Time
	mu      sync.Mutex

	events chan Capture
	errors chan error

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a watcher over dir; settle <= 0 uses DefaultSettle
func New(dir string, settle time.Duration) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve capture dir: %w", err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fs:      fs,
		dir:     abs,
		settle:  settle,
		pending: make(map[string]time.Time),
		events:  make(chan Capture, 64),
		errors:  make(chan error, 8),
		done:    make(chan struct{}),
	}, nil
}

// Dir returns the watched directory
func (w *Watcher) Dir() string { return w.dir }

// Events delivers settled captures
func (w *Watcher) Events() <-chan Capture { return w.events }

// Errors delivers watcher failures; full buffers drop errors
func (w *Watcher) Errors() <-chan error { return w.errors }

// Start creates the directory if needed, queues images already present, and begins watching
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create capture dir: %w", err)
	}
	if err := w.fs.Add(w.dir); err != nil {
		return fmt.Errorf("watch capture dir: %w", err)
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("scan capture dir: %w", err)
	}
	// Existing files are already settled
	stale := time.Now().Add(-w.settle)
	w.mu.Lock()
	for _, e := range entries {
		if !e.IsDir() && IsImage(e.Name()) {
			w.pending[filepath.Join(w.dir, e.Name())] = stale
		}
	}
	w.mu.Unlock()

	w.wg.Add(2)
	core.Go(w.eventLoop)
	core.Go(w.settleLoop)
	return nil
}

// Close stops watching and closes the channels
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.events)
		close(w.errors)
	})
	return err
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !IsImage(ev.Name) {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				w.mu.Lock()
				w.pending[ev.Name] = time.Now()
				w.mu.Unlock()
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				w.mu.Lock()
				delete(w.pending, ev.Name)
				w.mu.Unlock()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) settleLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(max(w.settle/4, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

// flush emits every pending file unchanged for the settle period
func (w *Watcher) flush(now time.Time) {
	threshold := now.Add(-w.settle)

	w.mu.Lock()
	var ready []string
	for path, last := range w.pending {
		if !last.After(threshold) {
			ready = append(ready, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		info, err := os.Stat(path)

		w.mu.Lock()
		last, still := w.pending[path]
		if !still || last.After(threshold) {
			// Removed or rewritten while we looked
			w.mu.Unlock()
			continue
		}
		if err != nil || info.IsDir() {
			delete(w.pending, path)
			w.mu.Unlock()
			continue
		}
		w.mu.Unlock()

		select {
		case w.events <- Capture{Path: path, Size: info.Size(), At: info.ModTime()}:
			w.mu.Lock()
			if cur, ok := w.pending[path]; ok && cur.Equal(last) {
				delete(w.pending, path)
			}
			w.mu.Unlock()
		case <-w.done:
			return
		default:
			// Consumer is behind; retry on the next tick
		}
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
