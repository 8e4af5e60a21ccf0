package content

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"Hollowmere/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 100 * time.Millisecond

// Watcher reports changed content files on Events.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isContentFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isContentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ReloadHook reloads a Table on the main thread when its file changes.
// It satisfies behaviour.FrameHook.
type ReloadHook struct {
	table   *Table
	watcher *Watcher
	load    func(path string) (*Table, error)
}

func NewReloadHook(table *Table, watcher *Watcher) *ReloadHook {
	return &ReloadHook{table: table, watcher: watcher, load: Load}
}

func (h *ReloadHook) Start() {}

func (h *ReloadHook) Update(float32) {
	target, err := filepath.Abs(h.table.Path())
	if err != nil {
		return
	}
	for {
		select {
		case name := <-h.watcher.Events:
			changed, err := filepath.Abs(name)
			if err != nil || changed != target {
				continue
			}
			fresh, err := h.load(target)
			if err != nil {
				logger.Log.Warn("Content reload failed, keeping previous table", zap.String("path", target), zap.Error(err))
				continue
			}
			h.table.Replace(fresh)
			logger.Log.Info("Content reloaded", zap.String("path", target))
		case err := <-h.watcher.Errors:
			logger.Log.Warn("Content watcher error", zap.Error(err))
		default:
			return
		}
	}
}

func (h *ReloadHook) UpdateFixed(float32) {}

// Close stops the underlying watcher.
func (h *ReloadHook) Close() error {
	return h.watcher.Close()
}
