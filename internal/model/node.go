// Package model contains the result-tree contract consumed by the projection
// and an in-memory result store that implements it.
package model

import "time"

// Kind is the closed set of result node variants
type Kind int

const (
	KindURI Kind = iota
	KindVisit
	KindQuery
	KindFolder
	KindSeparator
)

var kindNames = map[Kind]string{
	KindURI:       "uri",
	KindVisit:     "visit",
	KindQuery:     "query",
	KindFolder:    "folder",
	KindSeparator: "separator",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind converts a kind name back to a Kind
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindURI, false
}

// IsContainerKind reports whether nodes of this kind can hold children
func (k Kind) IsContainerKind() bool {
	return k == KindQuery || k == KindFolder
}

// NoItemID marks nodes that are not backed by a bookmark item
const NoItemID int64 = -1

// Node is a single node of a hierarchical result. The projection never owns
// nodes; it only reads them and asks containers to open or close.
type Node interface {
	Kind() Kind
	Title() string
	URI() string
	Time() time.Time
	SessionID() int64
	ItemID() int64

	Parent() Node
	IndentLevel() int

	IsContainer() bool
	ContainerOpen() bool
	SetContainerOpen(open bool)
	ChildCount() int
	Child(i int) Node
	HasChildren() bool
}

// Details exposes the optional per-node columns a tree can display
type Details interface {
	AccessCount() int
	Tags() string
	Keyword() string
	Description() string
	DateAdded() time.Time
	LastModified() time.Time
	Icon() string
	Livemark() bool
	TagContainer() bool
}

// QueryNode is implemented by query containers that carry their own options
type QueryNode interface {
	ExpandQueries() bool
}

// Viewer receives structural notifications from a result. Indices are
// positions in the parent's child list, never row numbers.
type Viewer interface {
	ItemInserted(parent, item Node, index int)
	ItemRemoved(parent, item Node, oldIndex int)
	ItemMoved(item, oldParent Node, oldIndex int, newParent Node, newIndex int)
	ItemReplaced(parent, oldItem, newItem Node)
	ItemChanged(item Node)
	ContainerOpened(item Node)
	ContainerClosed(item Node)
	InvalidateContainer(item Node)
	InvalidateAll()
	SortingChanged(mode SortingMode)
}

// Result is a live hierarchical result with a single viewer
type Result interface {
	Root() Node
	Options() QueryOptions
	SortingMode() SortingMode
	SortingAnnotation() string
	SetSorting(mode SortingMode, annotation string)
	SetViewer(v Viewer)
}
