package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkessler/quickcap/internal/domain/category"
)

var (
	categoryName     string
	categoryIcon     string
	categoryColor    string
	categoryKeywords []string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the task category catalog",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}
		cats, err := services.Categories.All()
		if err != nil {
			return err
		}
		for _, c := range cats {
			marker := " "
			if c.Default {
				marker = "*"
			}
			fmt.Printf("%s %s %-20s %s\n", marker, c.Icon, c.Key, strings.Join(c.Keywords, ", "))
		}
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Add or update a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}
		err = services.Categories.Save(category.Category{
			Key:      args[0],
			Name:     categoryName,
			Icon:     categoryIcon,
			Color:    categoryColor,
			Keywords: categoryKeywords,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved category %s\n", args[0])
		return nil
	},
}

var categoriesRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a category (the default category is protected)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}
		if err := services.Categories.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed category %s\n", args[0])
		return nil
	},
}

func init() {
	categoriesAddCmd.Flags().StringVar(&categoryName, "name", "", "Display name (defaults to the capitalized key)")
	categoriesAddCmd.Flags().StringVar(&categoryIcon, "icon", "", "Display icon")
	categoriesAddCmd.Flags().StringVar(&categoryColor, "color", "", "Display color (hex)")
	categoriesAddCmd.Flags().StringSliceVar(&categoryKeywords, "keywords", nil, "Classification keywords")

	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesRemoveCmd)
	RootCmd.AddCommand(categoriesCmd)
}
