package cmd

import (
	"fmt"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/lib"
	"github.com/spf13/cobra"
)

var newWorkspaceTitle string
var newWorkspaceDescription string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create resources",
}

// createWorkspaceCmd creates the workspace a proxy session or discovery run stores its history in
var createWorkspaceCmd = &cobra.Command{
	Use:   "workspace CODE",
	Short: "Create a workspace, or show it when the code already exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workspace := &db.Workspace{
			Code:        args[0],
			Title:       newWorkspaceTitle,
			Description: newWorkspaceDescription,
		}
		if workspace.Title == "" {
			workspace.Title = workspace.Code
		}
		if workspace.Description == "" {
			workspace.Description = fmt.Sprintf("WSDL discovery workspace for %s", workspace.Title)
		}

		workspace, err := db.Connection().GetOrCreateWorkspace(workspace)
		if err != nil {
			return fmt.Errorf("error creating workspace: %w", err)
		}
		output, err := lib.FormatSingleOutput(*workspace, lib.Pretty)
		if err != nil {
			return err
		}
		fmt.Println(output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createWorkspaceCmd)
	createWorkspaceCmd.Flags().StringVarP(&newWorkspaceTitle, "title", "t", "", "Workspace title, defaults to the code")
	createWorkspaceCmd.Flags().StringVarP(&newWorkspaceDescription, "description", "d", "", "Workspace description")
}
