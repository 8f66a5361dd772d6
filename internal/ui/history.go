package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// History keeps previous search and command inputs so they can be recalled
// with the arrow keys
type History struct {
	entries        []string
	currentIndex   int // -1 when not navigating
	maxEntries     int
	temporaryInput string // input typed before navigation started
	path           string // TOML file the entries persist to, empty for none
}

type historyFile struct {
	Entries []string `toml:"entries"`
}

// NewHistory creates an in-memory history with a maximum number of entries
func NewHistory(maxEntries int) *History {
	return &History{
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// LoadHistory creates a history persisted to a TOML file. A missing file
// gives an empty history.
func LoadHistory(maxEntries int, path string) (*History, error) {
	h := NewHistory(maxEntries)
	h.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return h, fmt.Errorf("failed to read history: %w", err)
	}
	var f historyFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return h, fmt.Errorf("failed to parse history %s: %w", path, err)
	}
	h.entries = f.Entries
	h.trim()
	return h, nil
}

// Add appends an entry. Empty entries and repeats of the latest entry are
// ignored. Persisted histories are saved right away.
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	h.trim()
	if h.path != "" {
		_ = h.Save()
	}
}

func (h *History) trim() {
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}
}

// Save writes the entries to the history file
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	data, err := toml.Marshal(historyFile{Entries: h.entries})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	return os.WriteFile(h.path, data, 0644)
}

// Previous steps back in history. Call SetTemporary first to get the
// current input back when stepping forward past the end.
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.currentIndex < 0 {
		h.currentIndex = len(h.entries) - 1
	} else if h.currentIndex > 0 {
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next steps forward in history, ending with the temporary input
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}
	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		temp := h.temporaryInput
		h.Reset()
		return temp, true
	}
	return h.entries[h.currentIndex], true
}

// Reset stops navigating
func (h *History) Reset() {
	h.currentIndex = -1
	h.temporaryInput = ""
}

// SetTemporary stores the input typed before navigation started
func (h *History) SetTemporary(input string) {
	h.temporaryInput = input
}

// IsNavigating reports whether the user is stepping through entries
func (h *History) IsNavigating() bool {
	return h.currentIndex >= 0
}

// Entries returns a copy of the entries, oldest first
func (h *History) Entries() []string {
	entries := make([]string, len(h.entries))
	copy(entries, h.entries)
	return entries
}
