// Package app runs the places viewer: one goroutine owns the result, the
// tree view and the screen, and applies key presses, socket commands and
// file reloads to them in turn.
package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/placestree/internal/config"
	"github.com/pstuifzand/placestree/internal/debug"
	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/projection"
	"github.com/pstuifzand/placestree/internal/socket"
	"github.com/pstuifzand/placestree/internal/storage"
	"github.com/pstuifzand/placestree/internal/ui"
	"github.com/pstuifzand/placestree/internal/watcher"
)

var errNoFile = errors.New("no file name, use :w <file>")

// ownWriteGrace is how long after a save file changes are assumed to be
// our own write and not reloaded
const ownWriteGrace = time.Second

// Options configure a new App
type Options struct {
	FilePath   string
	Config     *config.Config
	OpenState  projection.OpenStateStore
	Screen     *ui.Screen // nil opens the terminal
	HistoryDir string     // where command and search history persist, empty keeps it in memory
	Socket     bool       // listen for commands on the instance socket
	Watch      bool       // reload the file when it changes on disk
}

// App is the main application controller
type App struct {
	screen   *ui.Screen
	cfg      *config.Config
	filePath string
	store    storage.Store
	result   *model.ResultTree
	view     *projection.TreeView
	tree     *ui.PlacesTree
	search   *ui.Search
	help     *ui.HelpScreen
	command  *ui.CommandMode

	keybindings []KeyBinding
	server      *socket.Server
	watcher     *watcher.Watcher
	useSocket   bool
	watch       bool

	statusMsg  string
	statusTime time.Time
	lastSave   time.Time
	quit       bool
	debugMode  bool
	redraw     bool
	now        func() time.Time
}

// NewApp loads the file and builds the tree view on top of it
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	viewOpts := cfg.ProjectionOptions()
	if opts.OpenState != nil {
		viewOpts = append(viewOpts, projection.WithOpenState(opts.OpenState))
	}
	view, err := projection.New(viewOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree view: %w", err)
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = ui.NewScreen(cfg.Theme)
		if err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
	}

	a := &App{
		screen:    screen,
		cfg:       cfg,
		view:      view,
		tree:      ui.NewPlacesTree(view),
		help:      ui.NewHelpScreen(),
		useSocket: opts.Socket,
		watch:     opts.Watch,
		statusMsg: "Ready",
		redraw:    true,
		now:       time.Now,
	}
	a.search = ui.NewSearchWithHistory(loadHistory(opts.HistoryDir, "search.toml"))
	a.command = ui.NewCommandModeWithHistory(loadHistory(opts.HistoryDir, "command.toml"))
	a.keybindings = a.InitializeKeybindings()
	a.help.SetKeybindings(a.helpKeybindings())
	a.help.SetCommands(commandHelp)
	a.tree.SetMatcher(a.search.IsMatch)

	a.setFile(opts.FilePath)
	result, err := a.load()
	if err != nil {
		if opts.Screen == nil {
			screen.Close()
		}
		return nil, fmt.Errorf("failed to load %s: %w", opts.FilePath, err)
	}
	a.setResult(result)
	return a, nil
}

func loadHistory(dir, name string) *ui.History {
	if dir == "" {
		return ui.NewHistory(50)
	}
	h, err := ui.LoadHistory(50, filepath.Join(dir, name))
	if err != nil {
		log.Printf("Failed to load history %s: %v", name, err)
	}
	return h
}

func (a *App) setFile(path string) {
	a.filePath = path
	if path == "" {
		a.store = nil
		return
	}
	a.store = storage.Open(path)
}

// load reads the file, or gives an empty tree when there is none yet. The
// configured sort replaces the file's own when set.
func (a *App) load() (*model.ResultTree, error) {
	if a.store == nil {
		return storage.NewEmptyTree(), nil
	}
	result, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if mode := a.cfg.SortingMode(); mode != model.SortNone {
		result.SetSorting(mode, "")
	}
	return result, nil
}

func (a *App) setResult(result *model.ResultTree) {
	a.result = result
	a.view.SetResult(result)
	a.search.Refresh(a.view)
	debug.Log("result %q: %d rows", result.RootItem().Title(), a.view.RowCount())
}

// reload swaps in the file's current contents
func (a *App) reload() {
	result, err := a.load()
	if err != nil {
		log.Printf("Reload of %s failed: %v", a.filePath, err)
		a.SetStatus("Reload failed: %v", err)
		return
	}
	a.setResult(result)
	a.SetStatus("Reloaded %s", a.filePath)
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	if a.useSocket {
		server, err := socket.NewServer(os.Getpid())
		if err != nil {
			log.Printf("Socket disabled: %v", err)
		} else {
			server.Start()
			a.server = server
		}
	}
	if a.watch && a.store != nil && a.store.FileExists() {
		w, err := watcher.NewWatcher(a.filePath, watcher.WithOnError(func(err error) {
			log.Printf("Watcher error: %v", err)
		}))
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			log.Printf("Not watching %s: %v", a.filePath, err)
		} else {
			a.watcher = w
		}
	}

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	var messages <-chan socket.Message
	if a.server != nil {
		messages = a.server.Messages()
	}
	var changes <-chan struct{}
	if a.watcher != nil {
		changes = a.watcher.Changed()
	}

	ticker := time.NewTicker(50 * time.Millisecond) // ~20 FPS
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleRawEvent(ev)
		case msg := <-messages:
			a.handleSocketMessage(msg)
			a.redraw = true
		case <-changes:
			if a.now().Sub(a.lastSave) > ownWriteGrace {
				a.reload()
			}
		case <-ticker.C:
			if a.redraw || a.tree.NeedsRedraw() {
				a.render()
			}
		}
	}
	return nil
}

// Close stops the background services and closes the screen
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.server != nil {
		a.server.Stop()
		a.server = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// treeArea returns the first line and height of the tree, column header
// included
func (a *App) treeArea() (startY, height int) {
	return 1, a.screen.GetHeight() - 3
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()

	if a.tree.NeedsRedraw() {
		a.search.Refresh(a.view)
	}

	header := " " + projection.BestTitle(a.result.Root())
	if a.filePath != "" {
		header += "  " + filepath.Base(a.filePath)
	}
	a.screen.FillLine(0, 0, a.screen.HeaderStyle())
	a.screen.DrawStringLimited(0, 0, header, width, a.screen.HeaderStyle())

	startY, treeHeight := a.treeArea()
	a.tree.Render(a.screen, startY, treeHeight)

	if a.search.IsActive() {
		a.search.Render(a.screen, height-2)
	}
	if a.command.IsActive() {
		a.command.Render(a.screen, height-2)
	}

	a.screen.DrawStringLimited(0, height-1, a.statusLine(), width, a.screen.StatusMessageStyle())
	a.help.Render(a.screen)
	a.screen.Show()
	a.redraw = false
}

// statusLine shows the row count, the sorting and the latest message for a
// few seconds
func (a *App) statusLine() string {
	line := fmt.Sprintf("-- %d rows | %s", a.view.RowCount(), a.result.SortingMode())
	if a.view.CollapseDuplicates() {
		line += " | collapsed"
	}
	line += " --"
	if a.statusMsg != "Ready" && a.now().Sub(a.statusTime) <= 3*time.Second {
		line += " " + a.statusMsg
	}
	return line
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	a.redraw = true
	if _, ok := ev.(*tcell.EventResize); ok {
		a.screen.Sync()
		return
	}
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	switch {
	case a.command.IsActive():
		if cmd, done := a.command.HandleKey(keyEv); done {
			a.handleCommand(cmd)
		}
	case a.search.IsActive():
		if a.search.HandleKey(keyEv, a.view) && a.search.MatchCount() > 0 {
			a.nextMatch()
		}
	case a.help.IsVisible():
		if keyEv.Key() == tcell.KeyEscape || keyEv.Rune() == '?' || keyEv.Rune() == 'q' {
			a.help.Toggle()
		}
	default:
		a.handleKeypress(keyEv)
	}
}

// Save writes the tree to its file
func (a *App) Save() error {
	if a.store == nil {
		return errNoFile
	}
	a.lastSave = a.now()
	if err := a.store.Save(a.result); err != nil {
		return err
	}
	a.lastSave = a.now()
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(format string, args ...any) {
	a.statusMsg = fmt.Sprintf(format, args...)
	a.statusTime = a.now()
	a.redraw = true
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(on bool) {
	a.debugMode = on
}
