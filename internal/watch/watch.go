// Package watch re-runs a callback when a model file or directory changes
// on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/pulsartime/internal/ctxlog"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors one model path using fsnotify.
type Watcher struct {
	path     string
	match    func(name string) bool
	debounce time.Duration
	tree     bool
	fw       *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New watches path. For a file the parent directory is watched, so that
// editors which replace the file by renaming are still seen. For a
// directory the whole tree is watched, subdirectories created later
// included, and every file with the given extension counts.
func New(path, extension string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{path: path, debounce: DefaultDebounce, tree: info.IsDir(), fw: fw}
	if w.tree {
		ext := strings.ToLower(extension)
		w.match = func(name string) bool { return strings.HasSuffix(strings.ToLower(name), ext) }
		err = w.addTree(path)
	} else {
		want := filepath.Clean(path)
		w.match = func(name string) bool { return filepath.Clean(name) == want }
		err = fw.Add(filepath.Dir(path))
	}
	if err != nil {
		fw.Close()
		return nil, err
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.fw.Add(path)
	})
}

// Run calls onChange after each burst of changes until ctx is done. The
// watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	defer w.fw.Close()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Watching model path.", "path", w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if w.tree && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.match(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Model change detected.", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(ctx)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watch error.", "error", err)
		}
	}
}
