// Package watch reports when unit files on disk are rewritten so the
// runtime can reload them.
package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher follows a fixed set of files. Directories are watched rather than
// the files themselves because build tools usually replace a file instead of
// writing it in place.
type Watcher struct {
	fs      *fsnotify.Watcher
	targets map[string]string // cleaned absolute path -> path as given
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
	logger  *log.Logger

	closeOnce sync.Once
}

// New starts watching paths. Paths that do not name a file on disk
// (builtin units) are skipped.
func New(paths []string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		fs:      fsw,
		targets: make(map[string]string),
		changes: make(chan string, 16),
		done:    make(chan struct{}),
		logger:  logger.WithPrefix("watch"),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		w.targets[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: add %s: %w", dir, err)
		}
		w.logger.Debug("watching", "dir", dir)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			orig, ok := w.targets[abs]
			if !ok {
				continue
			}
			select {
			case w.changes <- orig:
			default:
				// Pending already holds enough to trigger a reload.
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)

		case <-w.done:
			return
		}
	}
}

// Changes delivers the path of each watched file that was written.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Pending drains every change reported so far without blocking. Each path
// appears at most once, in the order it was first seen.
func (w *Watcher) Pending() []string {
	var out []string
	seen := make(map[string]bool)
	for {
		select {
		case p := <-w.changes:
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		default:
			return out
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		if errors.Is(err, fsnotify.ErrClosed) {
			err = nil
		}
	})
	return err
}
