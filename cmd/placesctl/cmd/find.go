package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/placestree/internal/search"
)

var fuzzy bool

var findCmd = &cobra.Command{
	Use:   "find <fixture> <query>",
	Short: "List the visible rows matching a query",
	Long: `List the visible rows matching a query, prefixed with their row number.

Queries combine words with filters such as kind:visit, host:go.dev, d:>1
and v:>=3. With --fuzzy the query is matched loosely against titles and
the closest rows come first.

Examples:
  placesctl find history.yaml "kind:visit host:go.dev"
  placesctl find --fuzzy bookmarks.json gdoc`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := openView(args[0])
		if err != nil {
			return err
		}
		query := strings.Join(args[1:], " ")

		var rows []int
		if fuzzy {
			rows = search.RankRows(view, query)
		} else if rows, err = search.FindRows(view, query); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, row := range rows {
			fmt.Fprintf(out, "%4d %s\n", row, strings.TrimLeft(rowLine(view, row), " "))
		}
		if len(rows) == 0 {
			fmt.Fprintln(out, "no matches")
		}
		return nil
	},
}

func init() {
	findCmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "rank rows by fuzzy title match")
	rootCmd.AddCommand(findCmd)
}
