// Package cli implements the quickcap command surface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkessler/quickcap/internal/infrastructure/storage"
	"github.com/mkessler/quickcap/internal/infrastructure/wiring"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "quickcap",
	Version: Version,
	Short:   "Turn free-form notes into structured tracker tasks",
	Long: `Quickcap turns free-form notes into structured tasks in your tracker.
A note is analyzed by a local (Ollama) or cloud (OpenAI-compatible) model,
normalized into a task preview with category, priority, deadline and
subtasks, and committed to the tracker on confirmation.`,
}

var configRoot string

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// buildServices wires the full stack for a command invocation.
func buildServices() (*wiring.Services, error) {
	root := configRoot
	if root == "" {
		var err error
		root, err = storage.DefaultRoot()
		if err != nil {
			return nil, err
		}
	}
	return wiring.BuildServices(root)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configRoot, "config", "", "Config root directory (default $HOME or $QUICKCAP_CONFIG)")
}
