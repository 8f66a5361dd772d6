package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/placestree/internal/export"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <fixture>",
	Short: "Print the rows a fixture shows",
	Long: `Print one line per visible row, indented by level.

Examples:
  placesctl dump history.yaml
  placesctl dump --collapse --sort date-desc history.yaml
  placesctl dump --open-all bookmarks.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := openView(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for row := 0; row < view.RowCount(); row++ {
			fmt.Fprintln(out, rowLine(view, row))
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <fixture> [file.md]",
	Short: "Export the visible rows as a markdown list",
	Long: `Export the visible rows as a markdown list, to a file or to stdout.

Examples:
  placesctl export --open-all bookmarks.json bookmarks.md
  placesctl export history.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := openView(args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return export.WriteMarkdown(cmd.OutOrStdout(), view)
		}
		if err := export.ExportToMarkdown(view, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", view.RowCount(), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(exportCmd)
}
