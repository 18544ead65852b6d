package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mkessler/quickcap/internal/domain/settings"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Inspect and change quickcap settings",
}

var configureListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings (secrets redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}
		values, err := services.Settings.All()
		if err != nil {
			return err
		}

		redacted := values.Redacted()
		keys := make([]string, 0, len(redacted))
		for k := range redacted {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s = %s\n", k, redacted[k])
		}
		return nil
	},
}

var configureGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting (secrets redacted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}
		values, err := services.Settings.All()
		if err != nil {
			return err
		}
		fmt.Println(values.Redacted()[args[0]])
		return nil
	},
}

var configureSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}
		if err := services.Settings.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Set %s\n", args[0])
		return nil
	},
}

var configureProviderCmd = &cobra.Command{
	Use:   "provider <ollama|openai>",
	Short: "Select the AI provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case settings.ProviderOllama, settings.ProviderOpenAI:
		default:
			return fmt.Errorf("unsupported provider %q (use ollama or openai)", args[0])
		}

		services, err := buildServices()
		if err != nil {
			return err
		}
		if err := services.Settings.Set(settings.KeyProvider, args[0]); err != nil {
			return err
		}
		fmt.Printf("AI provider set to %s\n", args[0])
		return nil
	},
}

func init() {
	configureCmd.AddCommand(configureListCmd)
	configureCmd.AddCommand(configureGetCmd)
	configureCmd.AddCommand(configureSetCmd)
	configureCmd.AddCommand(configureProviderCmd)
	RootCmd.AddCommand(configureCmd)
}
