package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemData holds everything that describes a result item apart from its
// position in the tree
type ItemData struct {
	ID            string    `json:"id" yaml:"id"`
	Kind          Kind      `json:"-" yaml:"-"`
	Title         string    `json:"title,omitempty" yaml:"title,omitempty"`
	URI           string    `json:"uri,omitempty" yaml:"uri,omitempty"`
	Time          time.Time `json:"time,omitzero" yaml:"time,omitempty"`
	SessionID     int64     `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	ItemID        int64     `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	AccessCount   int       `json:"access_count,omitempty" yaml:"access_count,omitempty"`
	Tags          string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Keyword       string    `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	Icon          string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	DateAdded     time.Time `json:"date_added,omitzero" yaml:"date_added,omitempty"`
	LastModified  time.Time `json:"last_modified,omitzero" yaml:"last_modified,omitempty"`
	Livemark      bool      `json:"livemark,omitempty" yaml:"livemark,omitempty"`
	TagContainer  bool      `json:"tag_container,omitempty" yaml:"tag_container,omitempty"`
	ExpandQueries bool      `json:"expand_queries,omitempty" yaml:"expand_queries,omitempty"`
}

// Item is a node of an in-memory ResultTree
type Item struct {
	data     ItemData
	children []*Item
	parent   *Item
	open     bool
	tree     *ResultTree
}

// NewItem creates a detached item. A missing ID is generated.
func NewItem(data ItemData) *Item {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	return &Item{
		data:     data,
		children: make([]*Item, 0),
	}
}

// NewVisit creates a visit node
func NewVisit(uri, title string, at time.Time, sessionID int64) *Item {
	return NewItem(ItemData{Kind: KindVisit, URI: uri, Title: title, Time: at, SessionID: sessionID, ItemID: NoItemID})
}

// NewURI creates a plain URI node (bookmark or history entry)
func NewURI(uri, title string, itemID int64) *Item {
	return NewItem(ItemData{Kind: KindURI, URI: uri, Title: title, ItemID: itemID})
}

// NewFolder creates a bookmark folder
func NewFolder(title string, itemID int64) *Item {
	return NewItem(ItemData{Kind: KindFolder, Title: title, ItemID: itemID})
}

// NewQuery creates a query container identified by its place URI
func NewQuery(uri, title string) *Item {
	return NewItem(ItemData{Kind: KindQuery, URI: uri, Title: title, ItemID: NoItemID, ExpandQueries: true})
}

// NewSeparator creates a separator
func NewSeparator(itemID int64) *Item {
	return NewItem(ItemData{Kind: KindSeparator, ItemID: itemID})
}

func (i *Item) ID() string { return i.data.ID }
func (i *Item) Data() ItemData { return i.data }
func (i *Item) Kind() Kind { return i.data.Kind }
func (i *Item) Title() string { return i.data.Title }
func (i *Item) URI() string { return i.data.URI }
func (i *Item) Time() time.Time { return i.data.Time }
func (i *Item) SessionID() int64 { return i.data.SessionID }
func (i *Item) ItemID() int64 { return i.data.ItemID }
func (i *Item) AccessCount() int { return i.data.AccessCount }
func (i *Item) Tags() string { return i.data.Tags }
func (i *Item) Keyword() string { return i.data.Keyword }
func (i *Item) Description() string { return i.data.Description }
func (i *Item) Icon() string { return i.data.Icon }
func (i *Item) DateAdded() time.Time { return i.data.DateAdded }
func (i *Item) LastModified() time.Time { return i.data.LastModified }
func (i *Item) Livemark() bool { return i.data.Livemark }
func (i *Item) TagContainer() bool { return i.data.TagContainer }
func (i *Item) ExpandQueries() bool { return i.data.ExpandQueries }
func (i *Item) IsContainer() bool { return i.data.Kind.IsContainerKind() }
func (i *Item) ContainerOpen() bool { return i.open }
func (i *Item) ChildCount() int { return len(i.children) }
func (i *Item) HasChildren() bool { return len(i.children) > 0 }
func (i *Item) Children() []*Item { return i.children }
func (i *Item) ParentItem() *Item { return i.parent }

// Parent returns the parent node, or nil for a root or detached item
func (i *Item) Parent() Node {
	if i.parent == nil {
		return nil
	}
	return i.parent
}

// Child returns the i-th child, or nil when out of range
func (i *Item) Child(idx int) Node {
	if idx < 0 || idx >= len(i.children) {
		return nil
	}
	return i.children[idx]
}

// IndentLevel is -1 for the root and grows by one per nesting level
func (i *Item) IndentLevel() int {
	level := -1
	for p := i.parent; p != nil; p = p.parent {
		level++
	}
	return level
}

// IndexOf returns the position of child in i's child list, or -1
func (i *Item) IndexOf(child *Item) int {
	for idx, c := range i.children {
		if c == child {
			return idx
		}
	}
	return -1
}

// SetContainerOpen opens or closes a container and tells the result's viewer
func (i *Item) SetContainerOpen(open bool) {
	if !i.IsContainer() || i.open == open {
		return
	}
	i.open = open
	if i.tree != nil {
		i.tree.containerToggled(i)
	}
}

// AddChild appends a child without notifying anybody. It is meant for
// building trees before they are wrapped in a ResultTree.
func (i *Item) AddChild(child *Item) {
	child.parent = i
	child.attach(i.tree)
	i.children = append(i.children, child)
}

// Walk visits i and all of its descendants depth-first
func (i *Item) Walk(fn func(*Item)) {
	fn(i)
	for _, child := range i.children {
		child.Walk(fn)
	}
}

func (i *Item) attach(tree *ResultTree) {
	i.Walk(func(it *Item) { it.tree = tree })
}

func (i *Item) insertChild(index int, child *Item) {
	child.parent = i
	child.attach(i.tree)
	i.children = append(i.children, nil)
	copy(i.children[index+1:], i.children[index:])
	i.children[index] = child
}

func (i *Item) removeChild(index int) *Item {
	child := i.children[index]
	i.children = append(i.children[:index], i.children[index+1:]...)
	child.parent = nil
	return child
}
