// Package watch keeps the pipeline running after the initial pass, feeding
// it files that appear in the input directory while cameratouch is up.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/logging"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/pipeline"
)

// Handler processes one newly settled photo.
type Handler func(ctx context.Context, path string)

// reprocessWindow suppresses duplicate events for the same path; editors and
// cameras often emit several writes while producing one file.
const reprocessWindow = time.Minute

// Watcher monitors the input directory tree and hands settled photo files to
// its handler. Directories created during the run are watched too.
type Watcher struct {
	fsw     *fsnotify.Watcher
	root    string
	minAge  time.Duration
	handler Handler
	log     *logging.Logger

	mu        sync.Mutex
	processed map[string]time.Time
}

// New creates a watcher over root. minAge is how long a file must sit
// unmodified before it is considered fully written.
func New(root string, minAge time.Duration, handler Handler, log *logging.Logger) (*Watcher, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, &fs.PathError{Op: "watch", Path: root, Err: fs.ErrInvalid}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:       fsw,
		root:      root,
		minAge:    minAge,
		handler:   handler,
		log:       log,
		processed: make(map[string]time.Time),
	}, nil
}

// Run watches until ctx is cancelled. It blocks; callers run it last.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.log.Info("Watching %s (settle time %s, Ctrl-C to stop)", w.root, w.minAge)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.handleEvent(ctx, event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watcher error: %v", err)
		}
	}
}

// addTree registers root and every non-hidden subdirectory.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Warn("Cannot access %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Warn("Cannot watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(ctx context.Context, path string) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		if !strings.HasPrefix(filepath.Base(path), ".") {
			_ = w.addTree(path)
		}
		return
	}
	if !pipeline.IsPhoto(path) {
		return
	}
	if !w.claim(path) {
		return
	}

	// Let the file settle before reading it; cameras and network copies
	// write in bursts.
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.settleDelay(path)):
		}
		if _, err := os.Stat(path); err != nil {
			return
		}
		w.handler(ctx, path)
	}()
}

// settleDelay returns how much longer the file needs to reach minAge.
func (w *Watcher) settleDelay(path string) time.Duration {
	if w.minAge <= 0 {
		return 0
	}
	fi, err := os.Stat(path)
	if err != nil {
		return w.minAge
	}
	if age := time.Since(fi.ModTime()); age < w.minAge {
		return w.minAge - age
	}
	return 0
}

// claim records path as in-flight, suppressing duplicate events within the
// reprocess window. Stale entries are pruned as a side effect.
func (w *Watcher) claim(path string) bool {
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()

	if last, ok := w.processed[path]; ok && now.Sub(last) < reprocessWindow {
		return false
	}
	for p, t := range w.processed {
		if now.Sub(t) >= reprocessWindow {
			delete(w.processed, p)
		}
	}
	w.processed[path] = now
	return true
}
