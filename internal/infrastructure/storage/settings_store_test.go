package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkessler/quickcap/internal/domain/settings"
)

func TestResolvePath(t *testing.T) {
	root := t.TempDir()

	path, err := ResolvePath(root, "settings.yaml")
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if path != filepath.Join(root, ConfigDir, "settings.yaml") {
		t.Errorf("path = %q", path)
	}

	for _, bad := range []string{"", "../escape.yaml", "sub/dir.yaml", "/etc/passwd"} {
		if _, err := ResolvePath(root, bad); err == nil {
			t.Errorf("ResolvePath(%q) succeeded, want error", bad)
		}
	}
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewSettingsStore(root)

	if err := store.EnsureInstalled(); err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}

	if err := store.Set(settings.KeyProvider, "openai"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.SetAll(map[string]string{
		settings.KeyOpenAIModel: "gpt-4o",
		settings.KeyTimeout:     "45",
	}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}

	got, err := store.Get(settings.KeyOpenAIModel)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "gpt-4o" {
		t.Errorf("Get = %q", got)
	}

	values, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if values.Provider() != "openai" {
		t.Errorf("provider = %q", values.Provider())
	}
	if values.Timeout().Seconds() != 45 {
		t.Errorf("timeout = %v", values.Timeout())
	}
}

func TestSettingsStore_MissingFileReadsEmpty(t *testing.T) {
	store := NewSettingsStore(t.TempDir())

	values, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("values = %v, want empty", values)
	}
}

func TestSettingsStore_EnsureInstalledKeepsExisting(t *testing.T) {
	root := t.TempDir()
	store := NewSettingsStore(root)

	if err := store.Set("provider", "openai"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.EnsureInstalled(); err != nil {
		t.Fatalf("EnsureInstalled: %v", err)
	}

	got, err := store.Get("provider")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "openai" {
		t.Errorf("existing settings overwritten: %q", got)
	}
}

func TestSettingsStore_NoTempFileLeftBehind(t *testing.T) {
	root := t.TempDir()
	store := NewSettingsStore(root)

	if err := store.Set("provider", "ollama"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, ConfigDir))
	if err != nil {
		t.Fatalf("read config dir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != SettingsFile {
			t.Errorf("unexpected file in config dir: %s", e.Name())
		}
	}
}
