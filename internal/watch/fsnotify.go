package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSNotifyWatcher implements Watcher using OS-native notifications
type FSNotifyWatcher struct {
	w    *fsnotify.Watcher
	evC  chan Event
	erC  chan error
	done chan struct{}
	once sync.Once
}

// NewFSWatcher creates a new FSNotifyWatcher
func NewFSWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FSNotifyWatcher{
		w:    w,
		evC:  make(chan Event, 128),
		erC:  make(chan error, 1),
		done: make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *FSNotifyWatcher) loop() {
	defer close(fw.evC)

	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			select {
			case fw.evC <- Event{Path: ev.Name, Op: translate(ev.Op), Time: time.Now()}:
			case <-fw.done:
				return
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			// drop errors nobody is reading
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

func translate(in fsnotify.Op) Op {
	var op Op
	if in.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if in.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if in.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if in.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if in.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

func (fw *FSNotifyWatcher) Events() <-chan Event  { return fw.evC }
func (fw *FSNotifyWatcher) Errors() <-chan error  { return fw.erC }
func (fw *FSNotifyWatcher) Add(name string) error { return fw.w.Add(name) }

// Close stops the watcher. It is safe to call more than once.
func (fw *FSNotifyWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.w.Close()
	})
	return err
}
