package storage

import (
	"fmt"
	"os"

	"github.com/pstuifzand/placestree/internal/model"
	"gopkg.in/yaml.v3"
)

// YAMLStore handles YAML file persistence. Hand-written fixtures are
// easier to keep in YAML.
type YAMLStore struct {
	FilePath string
}

func NewYAMLStore(filePath string) *YAMLStore {
	return &YAMLStore{FilePath: filePath}
}

func (s *YAMLStore) Load() (*model.ResultTree, error) {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewEmptyTree(), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return fixture.Build()
}

func (s *YAMLStore) Save(tree *model.ResultTree) error {
	data, err := yaml.Marshal(NewFixture(tree))
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return writeFile(s.FilePath, data)
}

func (s *YAMLStore) FileExists() bool {
	return fileExists(s.FilePath)
}
