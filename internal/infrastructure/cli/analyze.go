package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [note]",
	Short: "Analyze a note and print the task preview without creating anything",
	Long: `Analyze sends a note to the configured AI provider and prints the
structured task preview. The note is taken from the arguments, or from
stdin when no argument is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := noteFromArgsOrStdin(args)
		if err != nil {
			return err
		}

		services, err := buildServices()
		if err != nil {
			return err
		}

		draft, _, err := services.Analyze.Analyze(cmd.Context(), text)
		if err != nil {
			return err
		}
		preview := services.Analyze.Preview(draft)

		if analyzeJSON {
			return json.NewEncoder(os.Stdout).Encode(preview)
		}

		fmt.Printf("Title:    %s\n", preview.Title)
		fmt.Printf("Category: %s %s\n", preview.CategoryIcon, preview.CategoryName)
		fmt.Printf("Priority: %s (%d)\n", preview.PriorityLabel, preview.Priority)
		if preview.Deadline != "" {
			fmt.Printf("Deadline: %s\n", preview.Deadline)
		}
		if preview.Description != "" {
			fmt.Printf("\n%s\n", preview.Description)
		}
		if len(preview.Subtasks) > 0 {
			fmt.Println("\nSubtasks:")
			for _, sub := range preview.Subtasks {
				fmt.Printf("  - %s\n", sub)
			}
		}
		if len(preview.Tags) > 0 {
			fmt.Printf("\nTags: %s\n", strings.Join(preview.Tags, ", "))
		}
		return nil
	},
}

func noteFromArgsOrStdin(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read note from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the preview as JSON")
	RootCmd.AddCommand(analyzeCmd)
}
