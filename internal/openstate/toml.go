package openstate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/placestree/internal/debug"
)

// TOMLStore keeps the open containers in a TOML file, rewritten on every change
type TOMLStore struct {
	mu   sync.Mutex
	path string
	open map[string]bool
}

// openStateFile represents the structure of the TOML file
type openStateFile struct {
	Open []string `toml:"open"`
}

// NewTOMLStore loads path if it exists. A corrupted file is treated as
// empty and replaced on the next change.
func NewTOMLStore(path string) (*TOMLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("toml open state: no path")
	}
	s := &TOMLStore{path: path, open: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read open state: %w", err)
	}

	var file openStateFile
	if err := toml.Unmarshal(data, &file); err != nil {
		debug.Log("ignoring corrupted open state %s: %v", path, err)
		return s, nil
	}
	for _, uri := range file.Open {
		s.open[uri] = true
	}
	return s, nil
}

func (s *TOMLStore) IsOpen(uri string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[uri]
}

func (s *TOMLStore) SetOpen(uri string, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open[uri] == open {
		return nil
	}
	if open {
		s.open[uri] = true
	} else {
		delete(s.open, uri)
	}
	return s.save()
}

func (s *TOMLStore) save() error {
	file := openStateFile{Open: make([]string, 0, len(s.open))}
	for uri := range s.open {
		file.Open = append(file.Open, uri)
	}
	sort.Strings(file.Open)

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal open state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *TOMLStore) Close() error { return nil }
