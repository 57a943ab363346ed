package assets

import (
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"coverflow/quarkgl"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// BackgroundIndex marks a Reload of the background texture.
const BackgroundIndex = -1

const DefaultDebounce = 250 * time.Millisecond

// Reload carries a freshly decoded texture for slide Index, or for the
// background when Index is BackgroundIndex.
type Reload struct {
	Index   int
	Texture *quarkgl.Texture
}

// Watcher re-decodes slide files when they change on disk. Reloads are handed
// over on a channel so textures are swapped on the render goroutine.
type Watcher struct {
	loader   *Loader
	slides   int
	debounce time.Duration
	fsw      *fsnotify.Watcher
	log      *zap.Logger

	pending map[string]time.Time
	reloads chan Reload
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// Watch starts watching the loader directory for changes to the first n
// slides and the background. Close stops it.
func (l *Loader) Watch(n int, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(l.dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		loader:   l,
		slides:   n,
		debounce: debounce,
		fsw:      fsw,
		log:      l.log.Named("watch"),
		pending:  make(map[string]time.Time),
		reloads:  make(chan Reload, 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	w.log.Info("watching assets", zap.String("dir", l.dir))
	return w, nil
}

// Reloads delivers decoded textures. It is never closed.
func (w *Watcher) Reloads() <-chan Reload { return w.reloads }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	tick := time.NewTicker(max(w.debounce/4, time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if w.indexOf(ev.Name) == nil {
				continue
			}
			w.pending[ev.Name] = time.Now()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case now := <-tick.C:
			if !w.flush(now) {
				return
			}
		}
	}
}

// flush reloads every path that has been quiet for the debounce interval.
// It returns false if the watcher was stopped while handing a reload over.
func (w *Watcher) flush(now time.Time) bool {
	for path, seen := range w.pending {
		if now.Sub(seen) < w.debounce {
			continue
		}
		delete(w.pending, path)

		idx := w.indexOf(path)
		if idx == nil {
			continue
		}
		r := Reload{Index: *idx}
		var err error
		if r.Index == BackgroundIndex {
			r.Texture, err = w.loader.loadBackground()
		} else {
			r.Texture, err = w.loader.LoadSlide(r.Index)
		}
		if err != nil {
			// Editors often write in several steps; a later event retries.
			w.log.Debug("reload failed", zap.String("path", path), zap.Error(err))
			continue
		}
		w.log.Info("reloaded", zap.Int("index", r.Index), zap.String("path", path))

		select {
		case w.reloads <- r:
		case <-w.stopCh:
			return false
		}
	}
	return true
}

// indexOf maps a file name to a slide index, BackgroundIndex, or nil.
func (w *Watcher) indexOf(path string) *int {
	name := filepath.Base(path)
	if name == BackgroundName {
		idx := BackgroundIndex
		return &idx
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".jpg" && ext != ".png" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
	if err != nil || i < 0 || i >= w.slides {
		return nil
	}
	return &i
}
