package main

import (
	"fmt"

	"github.com/Esubaalew/2merkato/internal/export"

	"github.com/spf13/cobra"
)

// NewConvertCmd creates the convert subcommand, which turns an existing CSV
// export into a spreadsheet without crawling.
func NewConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <csv-file> <xlsx-file>",
		Short: "Convert a CSV export to an Excel spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := export.ConvertCSVToXLSX(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Excel file '%s' created successfully (%d rows).\n", args[1], rows)
			return nil
		},
	}
}
