package cmd

import (
	"github.com/pyneda/wsdlwizard/db"
	"github.com/spf13/cobra"
)

var reportsTarget string
var reportsWorkspaceID uint

// getReportsCmd represents the get reports command
var getReportsCmd = &cobra.Command{
	Use:     "reports",
	Aliases: []string{"report", "r"},
	Short:   "List stored wsdl discovery reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, count, err := db.Connection().ListWsdlDiscoveries(db.WsdlDiscoveryFilter{
			WorkspaceID: reportsWorkspaceID,
			Target:      reportsTarget,
			Pagination: db.Pagination{
				PageSize: pageSize,
				Page:     page,
			},
		})
		if err != nil {
			return err
		}
		return printFormatted(items, count)
	},
}

func init() {
	getCmd.AddCommand(getReportsCmd)
	getReportsCmd.Flags().StringVarP(&reportsTarget, "target", "t", "", "Filter by target origin")
	getReportsCmd.Flags().UintVarP(&reportsWorkspaceID, "workspace", "w", 0, "Workspace ID")
}
