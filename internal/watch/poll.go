package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PollWatcher is a timestamp-based watcher for filesystems without native
// notifications. Directories are scanned one level deep.
type PollWatcher struct {
	interval time.Duration

	mu    sync.Mutex
	roots []string
	seen  map[string]time.Time

	evC    chan Event
	erC    chan error
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewPollWatcher starts polling at interval until ctx is cancelled or Close is called
func NewPollWatcher(ctx context.Context, interval time.Duration) *PollWatcher {
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(ctx)

	w := &PollWatcher{
		interval: interval,
		seen:     make(map[string]time.Time),
		evC:      make(chan Event, 64),
		erC:      make(chan error, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.loop(ctx)
	return w
}

func (w *PollWatcher) Events() <-chan Event { return w.evC }
func (w *PollWatcher) Errors() <-chan error { return w.erC }

// Add registers a file or directory. Its current state is the baseline, so
// only later changes are reported.
func (w *PollWatcher) Add(name string) error {
	files, err := list(name)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.roots = append(w.roots, name)
	for path, mod := range files {
		w.seen[path] = mod
	}
	return nil
}

// Close stops polling and waits for the poll loop to exit
func (w *PollWatcher) Close() error {
	w.once.Do(func() {
		w.cancel()
		<-w.done
	})
	return nil
}

func (w *PollWatcher) loop(ctx context.Context) {
	defer close(w.done)
	defer close(w.evC)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, ev := range w.scan() {
				select {
				case w.evC <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// scan compares the registered roots against the last snapshot
func (w *PollWatcher) scan() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	current := make(map[string]time.Time)
	for _, root := range w.roots {
		files, err := list(root)
		if err != nil {
			select {
			case w.erC <- err:
			default:
			}
			continue
		}
		for path, mod := range files {
			current[path] = mod
		}
	}

	var events []Event
	for path, mod := range current {
		prev, ok := w.seen[path]
		switch {
		case !ok:
			events = append(events, Event{Path: path, Op: OpCreate, Time: now})
		case mod.After(prev):
			events = append(events, Event{Path: path, Op: OpWrite, Time: now})
		}
	}
	for path := range w.seen {
		if _, ok := current[path]; !ok {
			events = append(events, Event{Path: path, Op: OpRemove, Time: now})
		}
	}

	w.seen = current
	return events
}

// list returns the modification times of name, or of the regular files
// directly inside it when name is a directory
func list(name string) (map[string]time.Time, error) {
	info, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]time.Time{}, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return map[string]time.Time{name: info.ModTime()}, nil
	}

	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, err
	}
	files := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		files[filepath.Join(name, entry.Name())] = fi.ModTime()
	}
	return files, nil
}
