// Package wiring assembles the application services from their
// infrastructure backends.
package wiring

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mkessler/quickcap/internal/application"
	"github.com/mkessler/quickcap/internal/domain/settings"
	"github.com/mkessler/quickcap/internal/domain/tracker"
	infraai "github.com/mkessler/quickcap/internal/infrastructure/ai"
	"github.com/mkessler/quickcap/internal/infrastructure/storage"
	infratracker "github.com/mkessler/quickcap/internal/infrastructure/tracker"
)

// Services bundles everything a command surface needs.
type Services struct {
	Settings   settings.Store
	Categories *application.CategoryService
	Analyze    *application.AnalyzeService
	Captures   *application.CaptureService
	Tracker    tracker.Tracker
	Logger     *slog.Logger
	Root       string
}

// BuildServices wires the full stack rooted at the given config root. The
// tracker client is built from the stored settings; an unconfigured tracker
// still yields a client whose calls fail with a clear error.
func BuildServices(root string) (*Services, error) {
	logger := NewLogger()

	settingsStore := storage.NewSettingsStore(root)
	if err := settingsStore.EnsureInstalled(); err != nil {
		return nil, fmt.Errorf("install settings store: %w", err)
	}
	categoryStore := storage.NewCategoryStore(root)
	if err := categoryStore.EnsureInstalled(); err != nil {
		return nil, fmt.Errorf("install category store: %w", err)
	}

	values, err := settingsStore.All()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	categories := application.NewCategoryService(categoryStore, logger)
	analyze := application.NewAnalyzeService(settingsStore, infraai.NewProviderFromSettings, categories, logger)

	leantime := infratracker.NewLeantimeClient(values.TrackerURL(), values.TrackerAPIKey())
	captures := application.NewCaptureService(leantime, categories, logger)

	return &Services{
		Settings:   settingsStore,
		Categories: categories,
		Analyze:    analyze,
		Captures:   captures,
		Tracker:    leantime,
		Logger:     logger,
		Root:       root,
	}, nil
}

// NewLogger builds the process logger. QUICKCAP_DEBUG=1 enables debug level.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("QUICKCAP_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
