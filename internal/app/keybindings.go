package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/placestree/internal/projection"
	"github.com/pstuifzand/placestree/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Name        string // shown in help instead of Key when set
	Description string
	Handler     func(*App)
}

// GetKey returns the key as shown in the help screen
func (kb *KeyBinding) GetKey() string {
	if kb.Name != "" {
		return kb.Name
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{Key: 'j', Description: "Move down", Handler: func(app *App) { app.tree.MoveDown() }},
		{Key: 'k', Description: "Move up", Handler: func(app *App) { app.tree.MoveUp() }},
		{Key: 'g', Description: "First row", Handler: func(app *App) { app.tree.First() }},
		{Key: 'G', Description: "Last row", Handler: func(app *App) { app.tree.Last() }},
		{Key: 'h', Description: "Go to parent container", Handler: func(app *App) { app.tree.SelectParent() }},
		{Key: ' ', Name: "space", Description: "Open or close container", Handler: (*App).toggleSelected},
		{Key: 'c', Description: "Toggle duplicate collapsing", Handler: (*App).toggleCollapse},
		{Key: 's', Description: "Sort by title", Handler: func(app *App) { app.cycleHeader(projection.ColumnTitle) }},
		{Key: 'd', Description: "Sort by date", Handler: func(app *App) { app.cycleHeader(projection.ColumnDate) }},
		{Key: 'v', Description: "Sort by visit count", Handler: func(app *App) { app.cycleHeader(projection.ColumnVisitCount) }},
		{Key: '/', Description: "Search", Handler: func(app *App) { app.search.Start() }},
		{Key: 'n', Description: "Next match", Handler: (*App).nextMatch},
		{Key: 'N', Description: "Previous match", Handler: (*App).prevMatch},
		{Key: '?', Description: "Toggle help", Handler: func(app *App) { app.help.Toggle() }},
		{Key: ':', Description: "Command line", Handler: func(app *App) { app.command.Start() }},
		{Key: 'q', Description: "Quit", Handler: func(app *App) { app.Quit() }},
	}
}

// helpKeybindings lists the bindings for the help screen
func (a *App) helpKeybindings() []ui.KeyBindingInfo {
	infos := make([]ui.KeyBindingInfo, len(a.keybindings))
	for i := range a.keybindings {
		infos[i] = &a.keybindings[i]
	}
	return infos
}

// handleKeypress handles a single keypress on the tree
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers())
	}

	_, height := a.treeArea()
	switch ev.Key() {
	case tcell.KeyDown:
		a.tree.MoveDown()
		return
	case tcell.KeyUp:
		a.tree.MoveUp()
		return
	case tcell.KeyPgDn:
		a.tree.PageDown(height - 1)
		return
	case tcell.KeyPgUp:
		a.tree.PageUp(height - 1)
		return
	case tcell.KeyHome:
		a.tree.First()
		return
	case tcell.KeyEnd:
		a.tree.Last()
		return
	case tcell.KeyEnter:
		a.toggleSelected()
		return
	case tcell.KeyLeft:
		a.closeOrParent()
		return
	case tcell.KeyRight:
		a.openSelected()
		return
	case tcell.KeyCtrlS:
		a.saveWithStatus()
		return
	case tcell.KeyRune:
	default:
		return
	}

	for i := range a.keybindings {
		if a.keybindings[i].Key == ev.Rune() {
			a.keybindings[i].Handler(a)
			return
		}
	}
}

func (a *App) toggleSelected() {
	if err := a.tree.Toggle(); err != nil {
		a.SetStatus("Error: %v", err)
	}
}

// openSelected opens a closed container under the cursor
func (a *App) openSelected() {
	row := a.tree.Cursor()
	if row < 0 {
		return
	}
	container, _ := a.view.IsContainer(row)
	open, _ := a.view.IsContainerOpen(row)
	if container && !open {
		a.toggleSelected()
	}
}

// closeOrParent closes an open container, or moves to the parent row
func (a *App) closeOrParent() {
	row := a.tree.Cursor()
	if row < 0 {
		return
	}
	container, _ := a.view.IsContainer(row)
	open, _ := a.view.IsContainerOpen(row)
	if container && open {
		a.toggleSelected()
		return
	}
	a.tree.SelectParent()
}

func (a *App) toggleCollapse() {
	collapse := !a.view.CollapseDuplicates()
	a.view.SetCollapseDuplicates(collapse)
	if collapse {
		a.SetStatus("Collapsing duplicate visits")
	} else {
		a.SetStatus("Showing every visit")
	}
}

func (a *App) cycleHeader(column projection.ColumnType) {
	if err := a.view.CycleHeader(column); err != nil {
		a.SetStatus("Cannot sort by %s: %v", column, err)
		return
	}
	a.SetStatus("Sorted: %s", a.result.SortingMode())
}

func (a *App) nextMatch() {
	if row := a.search.NextMatch(a.view, a.tree.Cursor()); row >= 0 {
		a.tree.Select(row)
	} else {
		a.SetStatus("No matches")
	}
}

func (a *App) prevMatch() {
	if row := a.search.PrevMatch(a.tree.Cursor()); row >= 0 {
		a.tree.Select(row)
	} else {
		a.SetStatus("No matches")
	}
}
