package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches the quickcap config directory and invokes onChange
// when one of the tracked files is written. Events for unrelated files
// (editor temp files, the atomic-write temp names) are ignored.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	tracked  map[string]bool
	debounce time.Duration
	onChange func(filename string)
}

// NewConfigWatcher creates a watcher for the named files inside dir.
func NewConfigWatcher(dir string, files []string, debounce time.Duration, onChange func(filename string)) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	tracked := make(map[string]bool, len(files))
	for _, f := range files {
		tracked[f] = true
	}
	return &ConfigWatcher{
		watcher:  w,
		dir:      dir,
		tracked:  tracked,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	var lastFile string
	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange(lastFile)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !w.tracked[name] {
				continue
			}
			lastFile = name
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
