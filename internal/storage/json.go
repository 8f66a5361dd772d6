package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pstuifzand/placestree/internal/model"
)

// JSONStore handles JSON file persistence
type JSONStore struct {
	FilePath string
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *JSONStore {
	return &JSONStore{
		FilePath: filePath,
	}
}

// Load loads a result tree from a JSON file
func (s *JSONStore) Load() (*model.ResultTree, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewEmptyTree(), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return fixture.Build()
}

// Save saves a result tree to a JSON file
func (s *JSONStore) Save(tree *model.ResultTree) error {
	data, err := json.MarshalIndent(NewFixture(tree), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeFile(s.FilePath, data)
}

// FileExists checks if the fixture file exists
func (s *JSONStore) FileExists() bool {
	return fileExists(s.FilePath)
}
