package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpScreen manages the help display
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
	commands    []string
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// SetCommands sets the command line help lines
func (h *HelpScreen) SetCommands(commands []string) {
	h.commands = commands
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the help text
func (h *HelpScreen) Lines() []string {
	result := []string{"Keybindings:", ""}
	for _, kb := range h.keybindings {
		result = append(result, fmt.Sprintf("  %-8s %s", kb.GetKey(), kb.GetDescription()))
	}
	if len(h.commands) > 0 {
		result = append(result, "", "Commands:", "")
		for _, c := range h.commands {
			result = append(result, "  "+c)
		}
	}
	return result
}

// Render draws the help box over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.GetWidth(), screen.GetHeight()
	for y := 0; y < height; y++ {
		screen.FillLine(0, y, contentStyle)
	}

	startX, startY := 2, 1
	boxWidth := width - 4
	bottom := height - 2
	if boxWidth < 4 || bottom <= startY+3 {
		return
	}

	hline := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for i := 1; i < boxWidth-1; i++ {
			screen.SetCell(startX+i, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}
	side := func(y int) {
		screen.SetCell(startX, y, '│', borderStyle)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
	}

	hline(startY, '┌', '┐')
	side(startY + 1)
	screen.DrawStringLimited(startX+2, startY+1, " Help (? to close) ", boxWidth-4, titleStyle)
	hline(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.Lines() {
		if y >= bottom {
			break
		}
		side(y)
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}
	hline(y, '└', '┘')
}
