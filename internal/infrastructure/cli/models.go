package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available on the configured AI provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}

		models, err := services.Analyze.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		if len(models) == 0 {
			fmt.Println("No models available.")
			return nil
		}
		for _, m := range models {
			fmt.Println(m)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(modelsCmd)
}
