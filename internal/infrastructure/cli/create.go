package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	createProjectID int
	createUserID    int
)

var createCmd = &cobra.Command{
	Use:   "create [note]",
	Short: "Analyze a note and create the resulting task in the tracker",
	Long: `Create runs the full pipeline in one shot: analyze the note, then
commit the resulting task and its subtasks to the tracker. Use 'quickcap
capture' for an interactive preview before committing.`,
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

		values, err := services.Settings.All()
		if err != nil {
			return err
		}
		projectID := createProjectID
		if projectID == 0 {
			projectID = values.DefaultProject()
		}
		if projectID == 0 {
			return fmt.Errorf("no project id: pass --project or set default_project")
		}
		userID := createUserID
		if userID == 0 {
			userID = values.DefaultUser()
		}

		draft.ProjectID = projectID
		result, err := services.Captures.Materialize(cmd.Context(), draft, userID)
		if err != nil {
			return err
		}

		fmt.Printf("Created task #%d: %s\n", result.MainTaskID, draft.Title)
		for _, id := range result.SubtaskIDs {
			fmt.Printf("  subtask #%d\n", id)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().IntVar(&createProjectID, "project", 0, "Target project id (defaults to the configured default_project)")
	createCmd.Flags().IntVar(&createUserID, "user", 0, "Acting user id (defaults to the configured default_user)")
	RootCmd.AddCommand(createCmd)
}
