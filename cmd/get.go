package cmd

import (
	"fmt"
	"strings"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/lib"
	"github.com/spf13/cobra"
)

var (
	pageSize int
	page     int
	format   string
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "List resources",
	Long:  `Get is used to retrieve workspaces, recorded history or stored wsdl discovery reports.`,
}

var getWorkspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"workspace", "w"},
	Short:   "List workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, count, err := db.Connection().ListWorkspaces()
		if err != nil {
			return err
		}
		return printFormatted(items, count)
	},
}

// printFormatted writes items in the --format of the get command, followed by a
// count line for the human readable formats
func printFormatted[T lib.Formattable](items []T, total int64) error {
	formatType, err := lib.ParseFormatType(format)
	if err != nil {
		return err
	}
	output, err := lib.FormatOutput(items, formatType)
	if err != nil {
		return err
	}
	fmt.Println(output)
	if formatType == lib.Table || formatType == lib.Pretty {
		fmt.Printf("Showing %d of %d\n", len(items), total)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.AddCommand(getWorkspacesCmd)
	getCmd.PersistentFlags().IntVarP(&pageSize, "page-size", "s", 100, "Size of each page")
	getCmd.PersistentFlags().IntVarP(&page, "page", "p", 1, "Page number")
	getCmd.PersistentFlags().StringVarP(&format, "format", "f", string(lib.Table), "Output format ("+strings.Join(lib.FormatNames(), ", ")+")")
}
