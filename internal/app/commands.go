package app

import (
	"sort"
	"strings"

	"github.com/pstuifzand/placestree/internal/export"
	"github.com/pstuifzand/placestree/internal/model"
)

// commandHelp is shown on the help screen
var commandHelp = []string{
	":w [file]           save the tree",
	":q  :wq             quit, save and quit",
	":sort <mode>        sort, e.g. title-asc, date-desc, none",
	":collapse [on|off]  collapse duplicate visits",
	":export <file.md>   export the visible rows as markdown",
	":search <query>     highlight matching rows",
	":reload             read the file again",
	":set [key [value]]  show or change session settings",
}

// parseCommand splits a command line into words. Double quotes group words
// and honour backslash escapes, single quotes group words literally.
func parseCommand(input string) []string {
	var (
		parts   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}
	args := parts[1:]

	switch parts[0] {
	case "q", "quit", "q!", "quit!":
		a.quit = true
	case "w", "write":
		if len(args) > 0 {
			a.saveAs(args[0])
			return
		}
		a.saveWithStatus()
	case "wq":
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: %v", err)
			return
		}
		a.quit = true
	case "sort":
		a.sortCommand(args)
	case "collapse":
		a.collapseCommand(args)
	case "export":
		if len(args) != 1 {
			a.SetStatus("Usage: export <file.md>")
			return
		}
		if err := export.ExportToMarkdown(a.view, args[0]); err != nil {
			a.SetStatus("Export failed: %v", err)
			return
		}
		a.SetStatus("Exported %d rows to %s", a.view.RowCount(), args[0])
	case "search":
		a.search.SetQuery(strings.Join(args, " "), a.view)
		a.nextMatch()
	case "reload":
		a.reload()
	case "set":
		a.setCommand(args)
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetStatus("Unknown command: %s", parts[0])
	}
}

func (a *App) sortCommand(args []string) {
	if len(args) == 0 {
		a.SetStatus("Sorted: %s", a.result.SortingMode())
		return
	}
	mode := model.ParseSortingMode(args[0])
	if mode == model.SortNone && args[0] != model.SortNone.String() {
		a.SetStatus("Unknown sort mode: %s", args[0])
		return
	}
	annotation := ""
	if len(args) > 1 {
		annotation = args[1]
	}
	a.result.SetSorting(mode, annotation)
	a.SetStatus("Sorted: %s", mode)
}

func (a *App) collapseCommand(args []string) {
	if len(args) == 0 {
		a.toggleCollapse()
		return
	}
	switch args[0] {
	case "on", "true":
		a.view.SetCollapseDuplicates(true)
	case "off", "false":
		a.view.SetCollapseDuplicates(false)
	default:
		a.SetStatus("Usage: collapse [on|off]")
		return
	}
	a.SetStatus("Collapse duplicates: %v", a.view.CollapseDuplicates())
}

// setCommand shows or changes session settings. They are never written
// to the config file.
func (a *App) setCommand(args []string) {
	switch len(args) {
	case 0:
		all := a.cfg.GetAll()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + all[k]
		}
		if len(pairs) == 0 {
			a.SetStatus("No settings")
			return
		}
		a.SetStatus("%s", strings.Join(pairs, " "))
	case 1:
		a.SetStatus("%s=%s", args[0], a.cfg.Get(args[0]))
	default:
		a.cfg.Set(args[0], strings.Join(args[1:], " "))
		a.SetStatus("%s=%s", args[0], a.cfg.Get(args[0]))
	}
}

func (a *App) saveAs(path string) {
	a.setFile(path)
	a.saveWithStatus()
}

func (a *App) saveWithStatus() {
	if err := a.Save(); err != nil {
		a.SetStatus("Failed to save: %v", err)
		return
	}
	a.SetStatus("Saved %s", a.filePath)
}
