package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"visionboard/internal/testsupport"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcherPicksUpDroppedImage(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	watcher, err := New(dir, nil, rec.handle,
		WithDebounce(30*time.Millisecond),
		WithPollInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watcher.Run(ctx)
	}()

	imagePath := filepath.Join(dir, "board.png")
	testsupport.WriteImage(t, imagePath, 8, 8)

	waitFor(t, 5*time.Second, func() bool {
		return len(rec.snapshot()) == 1
	})
	if got := rec.snapshot(); got[0] != imagePath {
		t.Fatalf("handled %q, want %q", got[0], imagePath)
	}

	cancel()
	<-done
}

func TestWatcherIgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	watcher, err := New(dir, nil, rec.handle,
		WithDebounce(30*time.Millisecond),
		WithPollInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	imagePath := filepath.Join(dir, "board.jpg")
	testsupport.WriteImage(t, imagePath, 8, 8)

	waitFor(t, 5*time.Second, func() bool {
		return len(rec.snapshot()) == 1
	})
	if got := rec.snapshot(); got[0] != imagePath {
		t.Fatalf("handled %v", got)
	}
}

func TestWatcherSeedsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "already-there.png")
	testsupport.WriteImage(t, imagePath, 8, 8)

	rec := &recorder{}
	watcher, err := New(dir, nil, rec.handle,
		WithDebounce(30*time.Millisecond),
		WithPollInterval(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	waitFor(t, 5*time.Second, func() bool {
		return len(rec.snapshot()) == 1
	})
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New("", nil, func(context.Context, string) error { return nil }); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if _, err := New(t.TempDir(), nil, nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestIsImagePath(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.gif", true},
		{"a.txt", false},
		{"a", false},
	}
	for _, tc := range cases {
		if got := isImagePath(tc.path); got != tc.want {
			t.Fatalf("isImagePath(%q) = %v", tc.path, got)
		}
	}
}
