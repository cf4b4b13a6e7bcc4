package jsondata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-jsondata/document"
	"github.com/goliatone/go-jsondata/pkg/activity"
	"github.com/goliatone/go-jsondata/pkg/docfile"
)

func TestWatcherReloadsOnExternalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	store := New(document.NewPath("volume"), document.Int(0), path)
	if err := store.Set(document.Int(1), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := make(chan error, 4)
	watcher, err := store.Watch(
		WithDebounce(30*time.Millisecond),
		OnReload(func(err error) { reloaded <- err }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, []byte(`{"volume": 42}`), 0o644); err != nil {
		t.Fatalf("failed to rewrite document: %v", err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("unexpected reload error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the reload")
	}

	if got := store.Get(); !got.Equal(document.Int(42)) {
		t.Errorf("expected the external value, got %v", got)
	}
}

func TestWatcherPollingFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	store := New(document.NewPath("volume"), document.Int(0), path)
	if err := store.Set(document.Int(1), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := make(chan error, 4)
	watcher, err := store.Watch(
		withPolling(),
		WithPollInterval(20*time.Millisecond),
		OnReload(func(err error) { reloaded <- err }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, []byte(`{"volume": 123456}`), 0o644); err != nil {
		t.Fatalf("failed to rewrite document: %v", err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("unexpected reload error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the poll to notice")
	}

	if got := store.Get(); !got.Equal(document.Int(123456)) {
		t.Errorf("expected the external value, got %v", got)
	}
}

func TestWatcherReportsFailedReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	store := New(document.NewPath("volume"), document.Int(0), path)
	if err := store.Set(document.Int(1), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := make(chan error, 4)
	watcher, err := store.Watch(
		withPolling(),
		WithPollInterval(20*time.Millisecond),
		OnReload(func(err error) { reloaded <- err }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer watcher.Close()

	if err := os.WriteFile(path, []byte(`{"volume":`), 0o644); err != nil {
		t.Fatalf("failed to corrupt document: %v", err)
	}

	select {
	case err := <-reloaded:
		if err == nil {
			t.Fatalf("expected the reload to report the parse failure")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the poll to notice")
	}

	if !store.LoadFailed() {
		t.Errorf("expected the store to be marked load-failed")
	}
	if got := store.Get(); !got.Equal(document.Int(0)) {
		t.Errorf("expected the default after a failed reload, got %v", got)
	}
}

func TestWatcherEmitsDocumentChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	capture := &activity.CaptureHook{}
	store := New(document.NewPath("volume"), document.Int(0), path,
		WithActivityHooks(activity.Hooks{capture}))
	if err := store.Set(document.Int(1), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := make(chan error, 4)
	watcher, err := store.Watch(
		withPolling(),
		WithPollInterval(20*time.Millisecond),
		OnReload(func(err error) { reloaded <- err }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"volume": 42}`), 0o644); err != nil {
		t.Fatalf("failed to rewrite document: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the reload")
	}
	watcher.Close()

	verbs := capture.Verbs()
	if len(verbs) == 0 || verbs[len(verbs)-1] != "document.changed" {
		t.Errorf("expected document.changed to be emitted, got %v", verbs)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	store := New(document.NewPath("volume"), document.Int(0), path)
	watcher, err := store.Watch(withPolling(), WithPollInterval(50*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := watcher.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := watcher.Close(); err != nil {
		t.Fatalf("expected a second close to be a no-op, got %v", err)
	}
}

func TestWatchEmptyPathFails(t *testing.T) {
	store := New(document.NewPath("a"), document.Int(0), "", WithSource(docfile.NewMemorySource()))
	if _, err := store.Watch(); err == nil {
		t.Fatalf("expected watching an empty path to fail")
	}
}
