// Package worker runs background index maintenance.
package worker

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Rebuilder triggers a serialized knowledge-index rebuild.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// IndexUpdateWorker watches the uploads directory and rebuilds the index
// when PDFs land there out-of-band (scp, volume mounts, manual copies).
// Uploads through the HTTP API also pass through here, but the rebuild
// itself is serialized inside the index service, so double triggers only
// cost a cheap no-op pass over unchanged content hashes.
type IndexUpdateWorker struct {
	dir      string
	index    Rebuilder
	debounce time.Duration

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewIndexUpdateWorker(dir string, index Rebuilder, debounce time.Duration) *IndexUpdateWorker {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &IndexUpdateWorker{
		dir:      dir,
		index:    index,
		debounce: debounce,
	}
}

func (w *IndexUpdateWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create upload watcher failed: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch uploads directory failed: %w", err)
	}
	w.watcher = watcher

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-workerCtx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(event) {
					continue
				}
				// collapse bursts of writes into one rebuild
				if timer == nil {
					timer = time.NewTimer(w.debounce)
					timerC = timer.C
				} else {
					timer.Reset(w.debounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("worker: upload watcher error: %v", err)
			case <-timerC:
				timer = nil
				timerC = nil
				if err := w.index.Rebuild(workerCtx); err != nil {
					log.Printf("worker: index rebuild failed: %v", err)
				}
			}
		}
	}()

	return nil
}

func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		// in-flight temp files from the document store
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func (w *IndexUpdateWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
	w.wg.Wait()
}
