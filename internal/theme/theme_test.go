package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHexToColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
	}{
		{"#ff0000", tcell.NewRGBColor(255, 0, 0)},
		{"#0f0", tcell.NewRGBColor(0, 255, 0)},
		{"0000ff", tcell.NewRGBColor(0, 0, 255)},
		{"#12345", tcell.ColorDefault},
		{"#zzzzzz", tcell.ColorDefault},
	}
	for _, tt := range tests {
		if got := HexToColor(tt.in); got != tt.want {
			t.Errorf("HexToColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorString(t *testing.T) {
	if got := ParseColorString(" rgb(1, 2, 3) "); got != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("rgb() parsed to %v", got)
	}
	if got := ParseColorString("rgb(1,2)"); got != tcell.ColorDefault {
		t.Errorf("short rgb() parsed to %v", got)
	}
	if got := ParseColorString("rgb(1,2,300)"); got != tcell.ColorDefault {
		t.Errorf("out of range rgb() parsed to %v", got)
	}
}

func TestBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)

	if got := Blend(black, white, 0); got != black {
		t.Errorf("Blend at 0 = %v, want black", got)
	}
	if got := Blend(black, white, 1); got != white {
		t.Errorf("Blend at 1 = %v, want white", got)
	}
	mid := Blend(black, white, 0.5)
	r, g, b := mid.RGB()
	if r <= 0 || r >= 255 || absDiff(r, g) > 1 || absDiff(g, b) > 1 {
		t.Errorf("Blend at 0.5 = %d,%d,%d, want a gray", r, g, b)
	}
	if got := Blend(tcell.ColorDefault, white, 0.5); got != tcell.ColorDefault {
		t.Errorf("Blend of the default color = %v", got)
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	data := `name = "mine"
[colors]
tree_normal_text = "#010203"
session_start = "rgb(4,5,6)"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile failed: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Colors.TreeNormalText != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("TreeNormalText = %v", th.Colors.TreeNormalText)
	}
	if th.Colors.SessionStart != tcell.NewRGBColor(4, 5, 6) {
		t.Errorf("SessionStart = %v", th.Colors.SessionStart)
	}
	if th.Colors.HelpBorder != TokyoNight().Colors.HelpBorder {
		t.Errorf("missing colors should come from Tokyo Night")
	}
}

func TestLoadThemeRejectsUnknownColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[colors]\neditor_text = \"#fff\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThemeFromFile(path); err == nil {
		t.Error("expected an error for an unknown color")
	}
}

func TestLoadThemeOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if got := LoadThemeOrDefault("default").Name; got != "default" {
		t.Errorf("default theme = %q", got)
	}
	if got := LoadThemeOrDefault("no-such-theme").Name; got != "tokyo-night" {
		t.Errorf("fallback theme = %q", got)
	}
}

func absDiff(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}
