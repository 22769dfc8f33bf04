// Package watch reports changes to a single file so the variable form can be
// rebuilt when variables.tf is edited.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logger"
)

// Event reports that the watched file was written or recreated.
type Event struct {
	Path string
	Time time.Time
}

// ChangeSource delivers change events until closed.
type ChangeSource interface {
	Events() <-chan Event
	Close() error
}

// FileWatcher watches one file by watching its directory. Editors that save
// by rename-and-replace still produce an event.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	log     logger.Logger
	events  chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileWatcher starts watching name inside dir.
func NewFileWatcher(dir, name string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWatch,
			"Can't start file watcher",
			"Disable watching with ui.watch: false")
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, errors.WrapWithCode(err, errors.ErrWatch,
			"Can't watch "+dir,
			"Disable watching with ui.watch: false")
	}

	fw := &FileWatcher{
		watcher: w,
		path:    filepath.Join(dir, name),
		log:     logger.Default(),
		events:  make(chan Event, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

// Events returns the event channel. Bursts of writes collapse into one
// pending event.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

// Close stops the watcher and waits for its goroutine.
func (fw *FileWatcher) Close() error {
	select {
	case <-fw.stopCh:
		return nil
	default:
	}
	close(fw.stopCh)
	err := fw.watcher.Close()
	<-fw.doneCh
	return err
}

func (fw *FileWatcher) loop() {
	defer close(fw.doneCh)
	defer close(fw.events)

	for {
		select {
		case <-fw.stopCh:
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			fw.log.Debug("watch: %s %s", ev.Op, ev.Name)
			select {
			case fw.events <- Event{Path: fw.path, Time: time.Now()}:
			default:
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watch: %v", err)
		}
	}
}
