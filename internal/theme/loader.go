package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration. Colors are
// keyed by their snake_case name, for example tree_normal_text.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// colorFields maps the TOML keys to the fields they set
func colorFields(c *Colors) map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"background":           &c.Background,
		"tree_normal_text":     &c.TreeNormalText,
		"tree_selected_item":   &c.TreeSelectedItem,
		"tree_selected_bg":     &c.TreeSelectedBg,
		"tree_container_text":  &c.TreeContainerText,
		"tree_query_text":      &c.TreeQueryText,
		"tree_leaf_arrow":      &c.TreeLeafArrow,
		"tree_expanded_arrow":  &c.TreeExpandedArrow,
		"tree_collapsed_arrow": &c.TreeCollapsedArrow,
		"tree_separator":       &c.TreeSeparator,
		"tree_date":            &c.TreeDate,
		"tree_match":           &c.TreeMatch,
		"session_start":        &c.SessionStart,
		"session_continue":     &c.SessionContinue,
		"search_label":         &c.SearchLabel,
		"search_text":          &c.SearchText,
		"search_cursor":        &c.SearchCursor,
		"search_result_count":  &c.SearchResultCount,
		"command_prompt":       &c.CommandPrompt,
		"command_text":         &c.CommandText,
		"command_cursor":       &c.CommandCursor,
		"help_background":      &c.HelpBackground,
		"help_border":          &c.HelpBorder,
		"help_title":           &c.HelpTitle,
		"help_content":         &c.HelpContent,
		"status_mode":          &c.StatusMode,
		"status_message":       &c.StatusMessage,
		"header_title":         &c.HeaderTitle,
		"header_bg":            &c.HeaderBg,
	}
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "placestree", "themes"),
			filepath.Join(home, ".local", "share", "placestree", "themes"))
	}
	return paths
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"
	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	return configToTheme(config)
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}
	return LoadThemeFromFile(filePath)
}

// configToTheme converts a ThemeConfig to a Theme, with fallback to Tokyo
// Night for missing colors. Unknown color names are an error.
func configToTheme(config ThemeConfig) (*Theme, error) {
	t := TokyoNight()
	fields := colorFields(&t.Colors)
	for key, value := range config.Colors {
		field, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("unknown theme color %q", key)
		}
		*field = ParseColorString(value)
	}
	if config.Name != "" {
		t.Name = config.Name
	}
	return t, nil
}

// LoadThemeOrDefault loads a theme by name: a built-in one, a theme file,
// or Tokyo Night when neither exists
func LoadThemeOrDefault(themeName string) *Theme {
	if t, ok := Builtin(themeName); ok {
		return t
	}
	theme, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}
	return theme
}
