package source

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to a course export on disk. It watches the
// parent directory so editors that save by rename are still seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
	log     *zap.Logger
}

// WatchFile starts watching path. Close must be called to stop it.
func WatchFile(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
	}
	go w.run()
	return w, nil
}

// Changes delivers one value per burst of writes to the file. The channel
// is closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("course export changed",
				zap.String("path", w.path),
				zap.String("op", event.Op.String()),
			)
			// Coalesce: one pending notification is enough.
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("course export watcher error", zap.Error(err))
		}
	}
}
