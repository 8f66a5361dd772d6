package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrIndexOutOfRange = errors.New("child index out of range")
	ErrNotContainer    = errors.New("item is not a container")
	ErrNotInTree       = errors.New("item does not belong to this result")
)

// ResultTree is an in-memory Result. Every mutation goes through it so the
// attached viewer hears about changes to containers whose children are
// visible, the same way a history or bookmarks result would report them.
type ResultTree struct {
	root       *Item
	options    QueryOptions
	sorting    SortingMode
	annotation string
	viewer     Viewer
	collator   *collate.Collator
}

// NewResultTree wraps root, which must be a container
func NewResultTree(root *Item, options QueryOptions) (*ResultTree, error) {
	if root == nil || !root.IsContainer() {
		return nil, fmt.Errorf("result root: %w", ErrNotContainer)
	}
	t := &ResultTree{
		root:     root,
		options:  options,
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
	root.attach(t)
	return t, nil
}

func (t *ResultTree) Root() Node { return t.root }
func (t *ResultTree) RootItem() *Item { return t.root }
func (t *ResultTree) Options() QueryOptions { return t.options }
func (t *ResultTree) SortingMode() SortingMode { return t.sorting }
func (t *ResultTree) SortingAnnotation() string { return t.annotation }
func (t *ResultTree) SetViewer(v Viewer) { t.viewer = v }

// SetSorting re-sorts every container, then tells the viewer about the new
// mode and asks it to rebuild.
func (t *ResultTree) SetSorting(mode SortingMode, annotation string) {
	t.sorting = mode
	t.annotation = annotation
	if mode != SortNone {
		t.root.Walk(func(it *Item) {
			if it.IsContainer() {
				t.sortChildren(it)
			}
		})
	}
	if t.viewer != nil {
		t.viewer.SortingChanged(mode)
		t.viewer.InvalidateAll()
	}
}

// InsertChild inserts child into parent at index. When the result is sorted
// the index is ignored and the child goes to its sorted position. The
// position actually used is returned.
func (t *ResultTree) InsertChild(parent *Item, index int, child *Item) (int, error) {
	if err := t.owns(parent); err != nil {
		return -1, err
	}
	if !parent.IsContainer() {
		return -1, fmt.Errorf("insert into %q: %w", parent.Title(), ErrNotContainer)
	}
	if t.sorting != SortNone {
		index = sort.Search(len(parent.children), func(i int) bool {
			return t.less(child, parent.children[i])
		})
	}
	if index < 0 || index > len(parent.children) {
		return -1, fmt.Errorf("insert at %d of %d: %w", index, len(parent.children), ErrIndexOutOfRange)
	}
	parent.insertChild(index, child)
	if t.viewer != nil && t.childrenVisible(parent) {
		t.viewer.ItemInserted(parent, child, index)
	}
	return index, nil
}

// AppendChild inserts child as the last child of parent
func (t *ResultTree) AppendChild(parent *Item, child *Item) (int, error) {
	return t.InsertChild(parent, len(parent.children), child)
}

// RemoveChild removes the child of parent at index
func (t *ResultTree) RemoveChild(parent *Item, index int) (*Item, error) {
	if err := t.owns(parent); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(parent.children) {
		return nil, fmt.Errorf("remove at %d of %d: %w", index, len(parent.children), ErrIndexOutOfRange)
	}
	visible := t.childrenVisible(parent)
	child := parent.removeChild(index)
	child.attach(nil)
	if t.viewer != nil && visible {
		t.viewer.ItemRemoved(parent, child, index)
	}
	return child, nil
}

// RemoveItem removes item from wherever it lives in the tree
func (t *ResultTree) RemoveItem(item *Item) error {
	if item.parent == nil {
		return fmt.Errorf("remove %q: %w", item.Title(), ErrNotInTree)
	}
	_, err := t.RemoveChild(item.parent, item.parent.IndexOf(item))
	return err
}

// RemoveURI removes every item with the given URI and returns how many went away
func (t *ResultTree) RemoveURI(uri string) int {
	var matches []*Item
	t.root.Walk(func(it *Item) {
		if it != t.root && it.URI() == uri {
			matches = append(matches, it)
		}
	})
	removed := 0
	for _, it := range matches {
		if it.parent == nil {
			continue
		}
		if err := t.RemoveItem(it); err == nil {
			removed++
		}
	}
	return removed
}

// MoveItem moves item to newParent at newIndex, where newIndex is counted
// after item has been taken out of its old parent.
func (t *ResultTree) MoveItem(item, newParent *Item, newIndex int) error {
	if err := t.owns(item); err != nil {
		return err
	}
	if err := t.owns(newParent); err != nil {
		return err
	}
	if !newParent.IsContainer() {
		return fmt.Errorf("move into %q: %w", newParent.Title(), ErrNotContainer)
	}
	for p := newParent; p != nil; p = p.parent {
		if p == item {
			return fmt.Errorf("move %q into its own subtree: %w", item.Title(), ErrNotInTree)
		}
	}
	oldParent := item.parent
	if oldParent == nil {
		return fmt.Errorf("move root: %w", ErrNotInTree)
	}
	oldIndex := oldParent.IndexOf(item)
	oldVisible := t.childrenVisible(oldParent)

	oldParent.removeChild(oldIndex)
	if newIndex < 0 || newIndex > len(newParent.children) {
		oldParent.insertChild(oldIndex, item)
		return fmt.Errorf("move to %d of %d: %w", newIndex, len(newParent.children), ErrIndexOutOfRange)
	}
	newParent.insertChild(newIndex, item)
	newVisible := t.childrenVisible(newParent)

	if t.viewer == nil {
		return nil
	}
	switch {
	case oldVisible && newVisible:
		t.viewer.ItemMoved(item, oldParent, oldIndex, newParent, newIndex)
	case oldVisible:
		t.viewer.ItemRemoved(oldParent, item, oldIndex)
	case newVisible:
		t.viewer.ItemInserted(newParent, item, newIndex)
	}
	return nil
}

// ReplaceChild swaps the child of parent at index for newItem
func (t *ResultTree) ReplaceChild(parent *Item, index int, newItem *Item) (*Item, error) {
	if err := t.owns(parent); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(parent.children) {
		return nil, fmt.Errorf("replace at %d of %d: %w", index, len(parent.children), ErrIndexOutOfRange)
	}
	old := parent.removeChild(index)
	old.attach(nil)
	parent.insertChild(index, newItem)
	if t.viewer != nil && t.childrenVisible(parent) {
		t.viewer.ItemReplaced(parent, old, newItem)
	}
	return old, nil
}

// UpdateItem applies fn to item's data and reports the change
func (t *ResultTree) UpdateItem(item *Item, fn func(*ItemData)) error {
	if err := t.owns(item); err != nil {
		return err
	}
	kind := item.data.Kind
	fn(&item.data)
	item.data.Kind = kind
	if t.viewer != nil && (item == t.root || t.childrenVisible(item.parent)) {
		t.viewer.ItemChanged(item)
	}
	return nil
}

// InvalidateContainer asks the viewer to rebuild one container
func (t *ResultTree) InvalidateContainer(item *Item) {
	if t.viewer != nil && item.IsContainer() {
		t.viewer.InvalidateContainer(item)
	}
}

// Invalidate asks the viewer to rebuild everything
func (t *ResultTree) Invalidate() {
	if t.viewer != nil {
		t.viewer.InvalidateAll()
	}
}

// FindByID looks an item up by its ID
func (t *ResultTree) FindByID(id string) *Item {
	var found *Item
	t.root.Walk(func(it *Item) {
		if found == nil && it.ID() == id {
			found = it
		}
	})
	return found
}

// AllItems returns every item depth-first, root included
func (t *ResultTree) AllItems() []*Item {
	var items []*Item
	t.root.Walk(func(it *Item) { items = append(items, it) })
	return items
}

func (t *ResultTree) containerToggled(item *Item) {
	if t.viewer == nil {
		return
	}
	if item != t.root && !t.childrenVisible(item.parent) {
		return
	}
	if item.open {
		t.viewer.ContainerOpened(item)
	} else {
		t.viewer.ContainerClosed(item)
	}
}

// childrenVisible reports whether container and all of its ancestors are open
func (t *ResultTree) childrenVisible(container *Item) bool {
	for c := container; c != nil; c = c.parent {
		if !c.open {
			return false
		}
	}
	return true
}

func (t *ResultTree) owns(item *Item) error {
	if item == nil || item.tree != t {
		return ErrNotInTree
	}
	top := item
	for top.parent != nil {
		top = top.parent
	}
	if top != t.root {
		return ErrNotInTree
	}
	return nil
}

func (t *ResultTree) sortChildren(container *Item) {
	sort.SliceStable(container.children, func(i, j int) bool {
		return t.less(container.children[i], container.children[j])
	})
}

func (t *ResultTree) less(a, b *Item) bool {
	c := t.compare(a, b)
	if t.sorting.Descending() {
		return c > 0
	}
	return c < 0
}

func (t *ResultTree) compare(a, b *Item) int {
	switch t.sorting {
	case SortTitleAscending, SortTitleDescending:
		return t.collator.CompareString(a.Title(), b.Title())
	case SortDateAscending, SortDateDescending:
		return a.Time().Compare(b.Time())
	case SortURIAscending, SortURIDescending:
		return strings.Compare(a.URI(), b.URI())
	case SortVisitCountAscending, SortVisitCountDescending:
		return a.AccessCount() - b.AccessCount()
	case SortKeywordAscending, SortKeywordDescending:
		return t.collator.CompareString(a.Keyword(), b.Keyword())
	case SortAnnotationAscending, SortAnnotationDescending:
		return t.collator.CompareString(a.Description(), b.Description())
	case SortDateAddedAscending, SortDateAddedDescending:
		return a.DateAdded().Compare(b.DateAdded())
	case SortLastModifiedAscending, SortLastModifiedDescending:
		return a.LastModified().Compare(b.LastModified())
	case SortTagsAscending, SortTagsDescending:
		return t.collator.CompareString(a.Tags(), b.Tags())
	}
	return 0
}
