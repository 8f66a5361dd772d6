package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/placestree/internal/config"
	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/projection"
	"github.com/pstuifzand/placestree/internal/storage"
)

var (
	showRoot bool
	flatList bool
	collapse bool
	openAll  bool
	sortMode string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "placesctl",
	Short: "Inspect places trees and control a running placestree",
	Long: `placesctl lists the rows a places tree shows, exactly as the viewer
would, and sends commands to a running placestree instance.

Fixtures are JSON files, or YAML files ending in .yaml or .yml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("show-root") {
			loaded.ShowRoot = showRoot
		}
		if flags.Changed("flat") {
			loaded.FlatList = flatList
		}
		if flags.Changed("collapse") {
			loaded.CollapseDuplicates = collapse
		}
		if flags.Changed("sort") {
			loaded.Sort = sortMode
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&showRoot, "show-root", false, "show the root container as the first row")
	flags.BoolVar(&flatList, "flat", false, "list containers as leaves")
	flags.BoolVar(&collapse, "collapse", true, "collapse adjacent duplicate visits")
	flags.BoolVar(&openAll, "open-all", false, "open every container before listing")
	flags.StringVar(&sortMode, "sort", "", "sorting, e.g. title-asc or date-desc")
}

// openView loads a fixture and attaches a tree view to it that draws nothing
func openView(path string) (*projection.TreeView, error) {
	tree, err := storage.Open(path).Load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if openAll {
		tree.RootItem().Walk(func(it *model.Item) { it.SetContainerOpen(true) })
	}
	if mode := cfg.SortingMode(); mode != model.SortNone {
		tree.SetSorting(mode, "")
	}

	view, err := projection.New(cfg.ProjectionOptions()...)
	if err != nil {
		return nil, err
	}
	view.SetHost(projection.Discard)
	view.SetResult(tree)
	return view, nil
}

// rowLine renders a row the way the viewer lists it, date last. Visits
// shown in sessions get a gutter marking where each session starts.
func rowLine(view *projection.TreeView, row int) string {
	level, err := view.Level(row)
	if err != nil {
		return ""
	}
	indent := strings.Repeat("  ", max(level, 0))
	switch status, _ := view.SessionStatus(row); status {
	case projection.SessionStart:
		indent = "┌ " + indent
	case projection.SessionContinue:
		indent = "│ " + indent
	}
	if sep, _ := view.IsSeparator(row); sep {
		return indent + "───"
	}

	marker := "•"
	if container, _ := view.IsContainer(row); container {
		marker = "▶"
		if open, _ := view.IsContainerOpen(row); open {
			marker = "▼"
		}
	}
	title, _ := view.CellText(row, projection.ColumnTitle)
	line := indent + marker + " " + title
	if date, _ := view.CellText(row, projection.ColumnDate); date != "" {
		line += "  " + date
	}
	return line
}
