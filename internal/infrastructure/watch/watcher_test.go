package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcher_ReportsTrackedFileWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "categories.yaml")
	if err := os.WriteFile(target, []byte("categories: []\n"), 0600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	changed := make(chan string, 1)
	w, err := NewConfigWatcher(dir, []string{"categories.yaml"}, 20*time.Millisecond, func(filename string) {
		select {
		case changed <- filename:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(target, []byte("categories: [{key: x}]\n"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case got := <-changed:
		if got != "categories.yaml" {
			t.Errorf("changed file = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestConfigWatcher_IgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()

	changed := make(chan string, 1)
	w, err := NewConfigWatcher(dir, []string{"categories.yaml"}, 20*time.Millisecond, func(filename string) {
		select {
		case changed <- filename:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, ".tmp-123"), []byte("x"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case got := <-changed:
		t.Errorf("unexpected callback for %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}
