package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchHighlightsAndJumps(t *testing.T) {
	result, _ := bookmarksTree(t)
	tree := newTestTree(t, result)
	view := tree.View()

	s := NewSearch()
	s.Start()
	for _, r := range "kind:uri" {
		s.HandleKey(keyRune(r), view)
	}
	assert.Equal(t, 2, s.MatchCount())
	assert.True(t, s.IsMatch(1))
	assert.True(t, s.IsMatch(3))
	assert.False(t, s.IsMatch(0))

	done := s.HandleKey(key(tcell.KeyEnter), view)
	require.True(t, done)
	assert.False(t, s.IsActive())
	assert.Equal(t, 2, s.MatchCount(), "results survive closing the bar")

	assert.Equal(t, 1, s.NextMatch(view, 0))
	assert.Equal(t, 3, s.NextMatch(view, 1))
	assert.Equal(t, 1, s.NextMatch(view, 3), "wraps around")
	assert.Equal(t, 3, s.PrevMatch(1), "wraps around backwards")
	assert.Equal(t, 1, s.PrevMatch(3))
}

func TestSearchEscapeClears(t *testing.T) {
	result, _ := bookmarksTree(t)
	view := newTestTree(t, result).View()

	s := NewSearch()
	s.Start()
	s.SetQuery("example", view)
	require.Equal(t, 1, s.MatchCount())

	s.HandleKey(key(tcell.KeyEscape), view)
	assert.Equal(t, 0, s.MatchCount())
	assert.Equal(t, -1, s.NextMatch(view, 0))
}

func TestSearchRender(t *testing.T) {
	result, _ := bookmarksTree(t)
	view := newTestTree(t, result).View()
	screen, sim := newTestScreen(t, 60, 2)

	s := NewSearch()
	s.Start()
	s.SetQuery("go", view)
	s.Render(screen, 1)
	screen.Show()
	assert.Equal(t, "Search: go  (1 of 1 matches)", lineAt(sim, 1))

	s.SetQuery("nothing-here", view)
	s.Render(screen, 1)
	screen.Show()
	assert.Contains(t, lineAt(sim, 1), "(no matches)")
}

func TestHelpLines(t *testing.T) {
	h := NewHelpScreen()
	h.SetKeybindings([]KeyBindingInfo{testBinding{"q", "Quit"}})
	h.SetCommands([]string{":w  save"})
	assert.Equal(t, []string{"Keybindings:", "", "  q        Quit", "", "Commands:", "", "  :w  save"}, h.Lines())

	assert.False(t, h.IsVisible())
	h.Toggle()
	assert.True(t, h.IsVisible())
}

type testBinding struct{ key, desc string }

func (b testBinding) GetKey() string         { return b.key }
func (b testBinding) GetDescription() string { return b.desc }
