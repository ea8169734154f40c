package configsource

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/atomic"
)

// DefaultDebounce coalesces the burst of events editors emit for one save.
const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc is called after every rebuild attempt. On failure root is the
// configuration still being served and err says why the rebuild failed.
type ReloadFunc func(root *Root, err error)

// Watcher keeps a Root current while reload-enabled files change.
type Watcher struct {
	builder  *Builder
	current  *atomic.Pointer[Root]
	debounce time.Duration
}

// NewWatcher serves initial until the first successful reload.
func NewWatcher(b *Builder, initial *Root) *Watcher {
	return &Watcher{
		builder:  b,
		current:  atomic.NewPointer(initial),
		debounce: DefaultDebounce,
	}
}

// WithDebounce overrides DefaultDebounce.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Current returns the latest successfully built root.
func (w *Watcher) Current() *Root {
	return w.current.Load()
}

// Paths returns the absolute paths of reload-enabled file sources.
func (w *Watcher) Paths() []string {
	var paths []string
	for _, s := range w.builder.Sources() {
		fs, ok := s.(*FileSource)
		if !ok || !fs.ReloadOnChange {
			continue
		}
		abs, err := filepath.Abs(fs.Path)
		if err != nil {
			abs = filepath.Clean(fs.Path)
		}
		paths = append(paths, abs)
	}
	return paths
}

// Reload rebuilds the root now. The previous root stays current on failure.
func (w *Watcher) Reload(ctx context.Context) (*Root, error) {
	root, err := w.builder.Build(ctx)
	if err != nil {
		return w.Current(), err
	}
	w.current.Store(root)
	return root, nil
}

// Run watches the directories of reload-enabled files until ctx is done.
// Directories rather than files are watched so that atomic replace-by-rename
// saves are seen.
func (w *Watcher) Run(ctx context.Context, onReload ReloadFunc) error {
	paths := w.Paths()
	if len(paths) == 0 {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		watched[p] = true
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] || event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onReload(w.Current(), fmt.Errorf("file watcher: %w", err))
		case <-fire:
			fire = nil
			root, err := w.Reload(ctx)
			onReload(root, err)
		}
	}
}
