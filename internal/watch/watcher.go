package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"visionboard/internal/logging"
)

// Handler processes one settled image file dropped into the inbox.
type Handler func(ctx context.Context, path string) error

// imageExtensions lists the formats the encoder can decode.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// Watcher monitors an inbox directory and hands settled image files to the
// handler. Files are considered settled once their size stops changing and no
// write event has arrived for the debounce window, so half-copied files never
// reach analysis.
type Watcher struct {
	dir      string
	logger   *slog.Logger
	handler  Handler
	debounce time.Duration
	poll     time.Duration
}

// Option customizes the watcher.
type Option func(*Watcher)

// WithDebounce overrides the settle window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithPollInterval overrides how often pending files are checked for
// settlement.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.poll = d
		}
	}
}

// New constructs a watcher for the given inbox directory.
func New(dir string, logger *slog.Logger, handler Handler, opts ...Option) (*Watcher, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("watch: inbox directory required")
	}
	if handler == nil {
		return nil, errors.New("watch: handler required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	w := &Watcher{
		dir:      dir,
		logger:   logging.WithComponent(logger, "watch"),
		handler:  handler,
		debounce: time.Second,
		poll:     250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

type pendingFile struct {
	lastEvent time.Time
	lastSize  int64
	stable    bool
}

// Run watches the inbox until the context is canceled. Existing files in the
// inbox are queued at startup so drops that happened while the watcher was
// down are not lost.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer notifier.Close()

	if err := notifier.Add(w.dir); err != nil {
		return fmt.Errorf("watch inbox %q: %w", w.dir, err)
	}
	w.logger.Info("watching inbox", slog.String("dir", w.dir))

	pending := make(map[string]*pendingFile)
	w.seedExisting(pending)

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-notifier.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			if !isImagePath(event.Name) {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
				pending[event.Name] = &pendingFile{lastEvent: time.Now(), lastSize: -1}
			case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
				delete(pending, event.Name)
			}

		case err, ok := <-notifier.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			w.logger.Warn("watch error", slog.Any("error", err))

		case <-ticker.C:
			w.flushSettled(ctx, pending)
		}
	}
}

func (w *Watcher) seedExisting(pending map[string]*pendingFile) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("read inbox", slog.Any("error", err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if isImagePath(path) {
			pending[path] = &pendingFile{lastEvent: time.Now(), lastSize: -1}
		}
	}
}

// flushSettled promotes pending files whose size held steady across two polls
// and whose last event predates the debounce window.
func (w *Watcher) flushSettled(ctx context.Context, pending map[string]*pendingFile) {
	now := time.Now()
	for path, state := range pending {
		info, err := os.Stat(path)
		if err != nil {
			delete(pending, path)
			continue
		}
		if info.Size() != state.lastSize {
			state.lastSize = info.Size()
			state.stable = false
			continue
		}
		if !state.stable {
			state.stable = true
			continue
		}
		if now.Sub(state.lastEvent) < w.debounce {
			continue
		}
		delete(pending, path)
		w.logger.Info("processing inbox image", slog.String("image", path))
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error("inbox image failed", slog.String("image", path), slog.Any("error", err))
		}
	}
}

func isImagePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := imageExtensions[ext]
	return ok
}
