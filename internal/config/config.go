package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/projection"
)

// Open-state backends
const (
	OpenStateMemory = "memory"
	OpenStateTOML   = "toml"
	OpenStateSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	Theme              string            `toml:"theme"`
	CollapseDuplicates bool              `toml:"collapse_duplicates"`
	ShowRoot           bool              `toml:"show_root"`
	FlatList           bool              `toml:"flat_list"`
	Sort               string            `toml:"sort"`
	OpenState          string            `toml:"open_state"`
	OpenStatePath      string            `toml:"open_state_path"`
	Settings           map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil // Return default if can't find config path
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys missing from the file keep their defaults
	config := defaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Theme == "" {
		config.Theme = "tokyo-night"
	}
	if config.OpenState == "" {
		config.OpenState = OpenStateTOML
	}
	if config.Settings == nil {
		config.Settings = make(map[string]string)
	}
	config.sessionSettings = make(map[string]string)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Theme:              "tokyo-night",
		CollapseDuplicates: true,
		Sort:               model.SortNone.String(),
		OpenState:          OpenStateTOML,
		Settings:           make(map[string]string),
		sessionSettings:    make(map[string]string),
	}
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return defaultConfig()
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "placestree"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0755)
}

// Validate checks option combinations the tree view cannot display
func (c *Config) Validate() error {
	if c.ShowRoot && c.FlatList {
		return fmt.Errorf("%w: show_root and flat_list: %w", ErrInvalidConfig, projection.ErrUnsupportedConfiguration)
	}
	switch c.OpenState {
	case OpenStateMemory, OpenStateTOML, OpenStateSQLite:
	default:
		return fmt.Errorf("%w: unknown open_state %q", ErrInvalidConfig, c.OpenState)
	}
	if c.Sort != "" && model.ParseSortingMode(c.Sort) == model.SortNone && c.Sort != model.SortNone.String() {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidConfig, c.Sort)
	}
	return nil
}

// SortingMode returns the configured initial sorting
func (c *Config) SortingMode() model.SortingMode {
	return model.ParseSortingMode(c.Sort)
}

// ProjectionOptions maps the configuration onto tree view options. The
// open-state store is added by the caller because it owns its lifetime.
func (c *Config) ProjectionOptions() []projection.Option {
	return []projection.Option{
		projection.WithShowRoot(c.ShowRoot),
		projection.WithFlatList(c.FlatList),
		projection.WithCollapseDuplicates(c.CollapseDuplicates),
	}
}

// OpenStateFile returns where the open state is stored, defaulting to a
// file in the config directory named after the backend
func (c *Config) OpenStateFile() (string, error) {
	if c.OpenStatePath != "" {
		return c.OpenStatePath, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if c.OpenState == OpenStateSQLite {
		return filepath.Join(dir, "openstate.db"), nil
	}
	return filepath.Join(dir, "openstate.toml"), nil
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if c.sessionSettings != nil {
		if val, ok := c.sessionSettings[key]; ok {
			return val
		}
	}

	if c.Settings != nil {
		if val, ok := c.Settings[key]; ok {
			return val
		}
	}

	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)

	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}

	return result
}

// Save persists the configuration to the TOML file
// Note: session settings are never written
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return c.SaveToFile(configPath)
}

// SaveToFile writes the configuration to filePath
func (c *Config) SaveToFile(filePath string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
