package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/placestree/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a terminal screen using the named theme
func NewScreen(themeName string) (*Screen, error) {
	return NewScreenWithTheme(theme.LoadThemeOrDefault(themeName))
}

// NewScreenWithTheme creates a terminal screen with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom wraps an existing tcell screen, initializing it. Tests pass
// a simulation screen here.
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}
	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text starting at x and returns the column after it.
// Wide characters take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, r, style)
		x += w
	}
	return x
}

// DrawStringLimited draws text cut to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateWithEllipsis(text, maxWidth), style)
}

// FillLine paints columns [x, width) of row y
func (s *Screen) FillLine(x, y int, style tcell.Style) {
	for ; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, resize, ...)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the cached size after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// Theme-aware style methods

func (s *Screen) colors() *theme.Colors {
	return &s.Theme.Colors
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.colors().Background)
}

// TreeNormalStyle returns the style for plain rows
func (s *Screen) TreeNormalStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeNormalText, s.colors().Background)
}

// TreeSelectedStyle returns the style for the cursor row
func (s *Screen) TreeSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeSelectedItem, s.colors().TreeSelectedBg).Bold(true)
}

// TreeContainerStyle returns the style for folder titles
func (s *Screen) TreeContainerStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeContainerText, s.colors().Background).Bold(true)
}

// TreeQueryStyle returns the style for query titles
func (s *Screen) TreeQueryStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeQueryText, s.colors().Background)
}

// TreeLeafArrowStyle returns the style for leaf bullets
func (s *Screen) TreeLeafArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeLeafArrow, s.colors().Background)
}

// TreeExpandedArrowStyle returns the style for open container twisties
func (s *Screen) TreeExpandedArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeExpandedArrow, s.colors().Background)
}

// TreeCollapsedArrowStyle returns the style for closed container twisties
func (s *Screen) TreeCollapsedArrowStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeCollapsedArrow, s.colors().Background)
}

// TreeSeparatorStyle returns the style for separator rows
func (s *Screen) TreeSeparatorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeSeparator, s.colors().Background)
}

// TreeDateStyle returns the style for the date column
func (s *Screen) TreeDateStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeDate, s.colors().Background)
}

// TreeMatchStyle returns the style for rows matching the search
func (s *Screen) TreeMatchStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().TreeMatch, s.colors().Background).Underline(true)
}

// SessionStartStyle returns the style for the first row of a session
func (s *Screen) SessionStartStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().SessionStart, s.colors().Background)
}

// SessionContinueStyle returns the style for later rows of a session
func (s *Screen) SessionContinueStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().SessionContinue, s.colors().Background)
}

// SearchLabelStyle returns the style for search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().SearchLabel)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().SearchText)
}

// SearchCursorStyle returns the style for search cursor
func (s *Screen) SearchCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().SearchCursor).Reverse(true)
}

// SearchResultCountStyle returns the style for search result count
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().SearchResultCount)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().HelpContent, s.colors().HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().HelpBorder, s.colors().HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().HelpTitle, s.colors().HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for the mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.colors().StatusMessage)
}

// HeaderStyle returns the style for the column header
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.colors().HeaderTitle, s.colors().HeaderBg).Bold(true)
}
