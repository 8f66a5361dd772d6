package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active bool
	input  lineInput
}

// NewCommandMode creates a command line with in-memory history
func NewCommandMode() *CommandMode {
	return NewCommandModeWithHistory(NewHistory(50))
}

// NewCommandModeWithHistory creates a command line recalling from h
func NewCommandModeWithHistory(h *History) *CommandMode {
	return &CommandMode{input: lineInput{history: h}}
}

// Start enters command mode
func (c *CommandMode) Start() {
	c.active = true
	c.input.reset()
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press. done is true when the command line
// closed; command is empty when it was cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input.text)
		c.input.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.input.text == "" {
			c.Stop()
			return "", true
		}
	}
	c.input.handleKey(ev)
	return "", false
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input.text)
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}
	c.input.render(screen, y, ":", screen.CommandPromptStyle(), screen.CommandTextStyle(), screen.CommandCursorStyle())
}
