package cli

import (
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkessler/quickcap/internal/infrastructure/storage"
	"github.com/mkessler/quickcap/internal/infrastructure/watch"
	"github.com/mkessler/quickcap/internal/infrastructure/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	Long: `Serve starts the quickcap HTTP API for browser extensions and other
capture surfaces. Category edits on disk are picked up without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		configDir := filepath.Join(services.Root, storage.ConfigDir)
		watcher, err := watch.NewConfigWatcher(configDir,
			[]string{storage.CategoriesFile},
			500*time.Millisecond,
			func(filename string) {
				if err := services.Categories.Reload(); err != nil {
					services.Logger.Warn("category reload failed", "file", filename, "error", err)
					return
				}
				services.Logger.Info("category catalog reloaded", "file", filename)
			})
		if err != nil {
			return err
		}
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				services.Logger.Warn("config watcher stopped", "error", err)
			}
		}()

		server := web.NewServer(web.Deps{
			Analyze:    services.Analyze,
			Captures:   services.Captures,
			Categories: services.Categories,
			Settings:   services.Settings,
			Tracker:    services.Tracker,
			Logger:     services.Logger,
		})
		return server.ListenAndServe(ctx, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8713", "Listen address")
	RootCmd.AddCommand(serveCmd)
}
