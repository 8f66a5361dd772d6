// Package storage loads and saves result trees as JSON or YAML fixture files
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/placestree/internal/model"
)

// Fixture is the on-disk form of a result tree
type Fixture struct {
	Options model.QueryOptions `json:"options" yaml:"options"`
	Sort    string             `json:"sort,omitempty" yaml:"sort,omitempty"`
	Root    *Node              `json:"root" yaml:"root"`
}

// Node is the on-disk form of a single item
type Node struct {
	Kind           string `json:"kind" yaml:"kind"`
	model.ItemData `yaml:",inline"`
	Open           bool    `json:"open,omitempty" yaml:"open,omitempty"`
	Children       []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Store reads and writes a result tree
type Store interface {
	Load() (*model.ResultTree, error)
	Save(tree *model.ResultTree) error
	FileExists() bool
}

// Open picks the store for a file by its extension. Anything that is not
// .yaml or .yml is treated as JSON.
func Open(path string) Store {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLStore(path)
	}
	return NewJSONStore(path)
}

// NewEmptyTree returns the tree used when a fixture file does not exist yet
func NewEmptyTree() *model.ResultTree {
	root := model.NewFolder("Places", 1)
	tree, _ := model.NewResultTree(root, model.QueryOptions{})
	return tree
}

// Build turns a decoded fixture into a result tree
func (f *Fixture) Build() (*model.ResultTree, error) {
	if f.Root == nil {
		return nil, fmt.Errorf("fixture has no root")
	}
	root, err := f.Root.item()
	if err != nil {
		return nil, err
	}
	tree, err := model.NewResultTree(root, f.Options)
	if err != nil {
		return nil, err
	}
	if mode := model.ParseSortingMode(f.Sort); mode != model.SortNone {
		tree.SetSorting(mode, "")
	}
	return tree, nil
}

func (n *Node) item() (*model.Item, error) {
	kind, ok := model.ParseKind(n.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q for %q", n.Kind, n.Title)
	}
	data := n.ItemData
	data.Kind = kind
	if data.ItemID == 0 && (kind == model.KindVisit || kind == model.KindQuery) {
		data.ItemID = model.NoItemID
	}
	item := model.NewItem(data)
	if len(n.Children) > 0 && !kind.IsContainerKind() {
		return nil, fmt.Errorf("%s %q cannot have children", kind, n.Title)
	}
	for _, c := range n.Children {
		child, err := c.item()
		if err != nil {
			return nil, err
		}
		item.AddChild(child)
	}
	// still detached, so nobody is notified
	item.SetContainerOpen(n.Open)
	return item, nil
}

// NewFixture captures a result tree, including which containers are open
func NewFixture(tree *model.ResultTree) *Fixture {
	f := &Fixture{Options: tree.Options(), Root: nodeOf(tree.RootItem())}
	if mode := tree.SortingMode(); mode != model.SortNone {
		f.Sort = mode.String()
	}
	return f
}

func nodeOf(item *model.Item) *Node {
	n := &Node{
		Kind:     item.Kind().String(),
		ItemData: item.Data(),
		Open:     item.ContainerOpen(),
	}
	for _, c := range item.Children() {
		n.Children = append(n.Children, nodeOf(c))
	}
	return n
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
