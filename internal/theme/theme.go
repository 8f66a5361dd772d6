// Package theme holds the colours the viewer draws with
package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Tree view colors
	TreeNormalText     tcell.Color
	TreeSelectedItem   tcell.Color
	TreeSelectedBg     tcell.Color
	TreeContainerText  tcell.Color
	TreeQueryText      tcell.Color
	TreeLeafArrow      tcell.Color
	TreeExpandedArrow  tcell.Color
	TreeCollapsedArrow tcell.Color
	TreeSeparator      tcell.Color
	TreeDate           tcell.Color
	TreeMatch          tcell.Color

	// Session gutter colors
	SessionStart    tcell.Color
	SessionContinue tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchCursor      tcell.Color
	SearchResultCount tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color

	// Header colors
	HeaderTitle tcell.Color
	HeaderBg    tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	d := tcell.ColorDefault
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:         d,
			TreeNormalText:     d,
			TreeSelectedItem:   d,
			TreeSelectedBg:     d,
			TreeContainerText:  d,
			TreeQueryText:      d,
			TreeLeafArrow:      d,
			TreeExpandedArrow:  d,
			TreeCollapsedArrow: d,
			TreeSeparator:      d,
			TreeDate:           d,
			TreeMatch:          d,
			SessionStart:       d,
			SessionContinue:    d,
			SearchLabel:        d,
			SearchText:         d,
			SearchCursor:       d,
			SearchResultCount:  d,
			CommandPrompt:      d,
			CommandText:        d,
			CommandCursor:      d,
			HelpBackground:     d,
			HelpBorder:         d,
			HelpTitle:          d,
			HelpContent:        d,
			StatusMode:         d,
			StatusMessage:      d,
			HeaderTitle:        d,
			HeaderBg:           d,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:         HexToColor("#1a1b26"),
			TreeNormalText:     HexToColor("#c0caf5"), // Light gray-blue
			TreeSelectedItem:   HexToColor("#7aa2f7"), // Blue
			TreeSelectedBg:     HexToColor("#283457"),
			TreeContainerText:  HexToColor("#e0af68"), // Yellow
			TreeQueryText:      HexToColor("#bb9af7"), // Magenta
			TreeLeafArrow:      HexToColor("#565f89"), // Comment gray
			TreeExpandedArrow:  HexToColor("#7dcfff"), // Cyan
			TreeCollapsedArrow: HexToColor("#7dcfff"),
			TreeSeparator:      HexToColor("#3b4261"),
			TreeDate:           HexToColor("#565f89"),
			TreeMatch:          HexToColor("#ff9e64"), // Orange
			SessionStart:       HexToColor("#9ece6a"), // Green
			SessionContinue:    Blend(HexToColor("#9ece6a"), HexToColor("#1a1b26"), 0.6),
			SearchLabel:        HexToColor("#bb9af7"),
			SearchText:         HexToColor("#c0caf5"),
			SearchCursor:       HexToColor("#7aa2f7"),
			SearchResultCount:  HexToColor("#9ece6a"),
			CommandPrompt:      HexToColor("#bb9af7"),
			CommandText:        HexToColor("#c0caf5"),
			CommandCursor:      HexToColor("#7aa2f7"),
			HelpBackground:     HexToColor("#1a1b26"),
			HelpBorder:         HexToColor("#7dcfff"),
			HelpTitle:          HexToColor("#bb9af7"),
			HelpContent:        HexToColor("#c0caf5"),
			StatusMode:         HexToColor("#bb9af7"),
			StatusMessage:      HexToColor("#9ece6a"),
			HeaderTitle:        HexToColor("#bb9af7"),
			HeaderBg:           HexToColor("#16161e"),
		},
	}
}

// Builtin returns a built-in theme by name
func Builtin(name string) (*Theme, bool) {
	switch name {
	case "default", "":
		return Default(), true
	case "tokyo-night":
		return TokyoNight(), true
	}
	return nil, false
}
