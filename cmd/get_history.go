package cmd

import (
	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/pkg/discovery"
	"github.com/spf13/cobra"
)

var historyHost string
var historyStatusCodes []int
var historyMethods []string
var historySources []string
var historyWorkspaceID uint

// getHistoryCmd represents the get history command
var getHistoryCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List recorded HTTP history",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := db.HistoryFilter{
			WorkspaceID: historyWorkspaceID,
			StatusCodes: historyStatusCodes,
			Methods:     historyMethods,
			Sources:     historySources,
			Pagination: db.Pagination{
				PageSize: pageSize,
				Page:     page,
			},
		}
		if historyHost != "" {
			target, err := discovery.TargetFromURL(historyHost)
			if err != nil {
				return err
			}
			filter.URLPrefix = target.Origin()
		}

		items, count, err := db.Connection().ListHistory(filter)
		if err != nil {
			return err
		}
		return printFormatted(items, count)
	},
}

func init() {
	getCmd.AddCommand(getHistoryCmd)
	getHistoryCmd.Flags().StringVar(&historyHost, "host", "", "Only list history for this origin (e.g. https://example.com)")
	getHistoryCmd.Flags().IntSliceVar(&historyStatusCodes, "status", nil, "Filter by status code")
	getHistoryCmd.Flags().StringSliceVar(&historyMethods, "method", nil, "Filter by HTTP method")
	getHistoryCmd.Flags().StringSliceVar(&historySources, "source", nil, "Filter by source (Proxy, WSDLWizard, Import)")
	getHistoryCmd.Flags().UintVarP(&historyWorkspaceID, "workspace", "w", 0, "Workspace ID")
}
