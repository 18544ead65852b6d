package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the quickcap environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Running Quickcap Doctor...")

		services, err := buildServices()
		if err != nil {
			return err
		}

		hasIssues := false
		check := func(name string, fn func() error) {
			fmt.Printf("Checking %s... ", name)
			if err := fn(); err != nil {
				fmt.Printf("FAIL\n  Error: %v\n", err)
				hasIssues = true
			} else {
				fmt.Printf("PASS\n")
			}
		}

		check("Settings Store", func() error {
			_, err := services.Settings.All()
			return err
		})

		check("Category Catalog", func() error {
			cats, err := services.Categories.All()
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				return fmt.Errorf("no categories configured")
			}
			return nil
		})

		check("AI Provider", func() error {
			return services.Analyze.TestProvider(cmd.Context())
		})

		check("Tracker Connection", func() error {
			return services.Tracker.TestConnection(cmd.Context())
		})

		check("Default Project", func() error {
			values, err := services.Settings.All()
			if err != nil {
				return err
			}
			if values.DefaultProject() == 0 {
				return fmt.Errorf("default_project is not set")
			}
			return nil
		})

		if hasIssues {
			fmt.Println("\nIssues found! Please fix them before continuing.")
			return fmt.Errorf("doctor found issues")
		}
		fmt.Println("\nEverything looks good!")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
