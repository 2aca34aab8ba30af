package render

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reloads library shaders when their source files change.
//
// File events arrive on a background goroutine; reloads are posted to the
// library's Context and run on the render thread at the next RunPending.
type ShaderWatcher struct {
	lib      *ShaderLibrary
	watcher  *fsnotify.Watcher
	onReload func(name string, err error)

	dirs map[string]bool // Watched directories, render thread only

	mu        sync.Mutex
	queued    map[string]bool // Paths with a reload already posted
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// WatchOption configures a ShaderWatcher.
type WatchOption func(*ShaderWatcher)

// WithReloadHandler sets a function called on the render thread after each
// reload attempt, with the shader name and the reload error.
func WithReloadHandler(fn func(name string, err error)) WatchOption {
	return func(w *ShaderWatcher) { w.onReload = fn }
}

// Watch starts watching the directories of every file-backed shader in the
// library. Shaders loaded or added while the watcher is open are watched too.
// Call it on the render thread; Close stops the watcher.
func (l *ShaderLibrary) Watch(opts ...WatchOption) (*ShaderWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &ShaderWatcher{
		lib:     l,
		watcher: fw,
		dirs:    make(map[string]bool),
		queued:  make(map[string]bool),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, s := range l.shaders {
		if err := w.watchShader(s); err != nil {
			fw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.loop()

	l.watcher = w
	l.ctx.logger.Debug("watching shader sources", "dirs", len(w.dirs))
	return w, nil
}

// watchShader adds the directory of a file-backed shader. Runs on the render thread.
func (w *ShaderWatcher) watchShader(s *Shader) error {
	if s.path == "" {
		return nil
	}
	dir := filepath.Dir(absPath(s.path))
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = true
	return nil
}

func (w *ShaderWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.queue(ev.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.lib.ctx.logger.Warn("shader watcher error", "err", err)
		}
	}
}

// queue posts one reload per path until that reload has run.
func (w *ShaderWatcher) queue(path string) {
	path = absPath(path)

	w.mu.Lock()
	if w.queued[path] {
		w.mu.Unlock()
		return
	}
	w.queued[path] = true
	w.mu.Unlock()

	w.lib.ctx.Post(func() {
		w.mu.Lock()
		delete(w.queued, path)
		w.mu.Unlock()
		w.reload(path)
	})
}

// reload runs on the render thread.
func (w *ShaderWatcher) reload(path string) {
	for _, s := range w.lib.byPath(path) {
		err := s.ReloadFile()
		if err != nil {
			w.lib.ctx.logger.Error("shader reload failed", "name", s.Name(), "err", err)
		}
		if w.onReload != nil {
			w.onReload(s.Name(), err)
		}
	}
}

// Close stops watching. Reloads already posted still run at the next RunPending.
// Call it on the render thread.
func (w *ShaderWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		if w.lib.watcher == w {
			w.lib.watcher = nil
		}
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func samePath(a, b string) bool {
	return absPath(a) == absPath(b)
}
