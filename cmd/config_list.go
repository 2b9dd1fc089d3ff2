package cmd

import (
	"github.com/brogergvhs/mangatown/internal/config"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, c := range list {
			active := ""
			if c.Active {
				active = "yes"
			}
			rows = append(rows, []string{c.Label, c.Path, active})
		}

		return renderTable(cmd, []string{"LABEL", "PATH", "ACTIVE"}, rows)
	},
}

func renderTable(cmd *cobra.Command, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}

	return table.Render()
}

func init() {
	configCmd.AddCommand(configListCmd)
}
