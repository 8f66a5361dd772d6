package projection

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/pstuifzand/placestree/internal/model"
)

// NoTitle is shown for nodes that have neither a title nor a usable URI
const NoTitle = "(no title)"

// RowCount returns the number of visible rows
func (t *TreeView) RowCount() int {
	return t.rows.Len()
}

// NodeAt returns the node shown at row
func (t *TreeView) NodeAt(row int) (model.Node, error) {
	return t.rows.At(row)
}

// RowOf returns the row showing n, or -1 when n is not visible
func (t *TreeView) RowOf(n model.Node) int {
	return t.rows.IndexOf(n)
}

// Rows returns a copy of the visible rows
func (t *TreeView) Rows() []model.Node {
	return t.rows.Rows()
}

// IsSorted reports whether the result is sorted
func (t *TreeView) IsSorted() bool {
	return t.sorted()
}

// IsContainer reports whether the row can be expanded. A flat list has no
// expandable rows, the root always is one, and a childless query inside
// another query or folder only counts when its parent expands queries.
func (t *TreeView) IsContainer(row int) (bool, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return false, err
	}
	if t.flatList || !node.IsContainer() {
		return false, nil
	}
	parent := node.Parent()
	if parent == nil {
		return true, nil
	}
	if node.Kind() == model.KindQuery && !node.HasChildren() &&
		(parent.Kind() == model.KindQuery || parent.Kind() == model.KindFolder) {
		return t.expandsQueries(parent), nil
	}
	return true, nil
}

func (t *TreeView) expandsQueries(n model.Node) bool {
	if t.result != nil && n != t.result.Root() && n.Kind() == model.KindQuery {
		if q, ok := n.(model.QueryNode); ok {
			return q.ExpandQueries()
		}
	}
	if t.result == nil {
		return false
	}
	return t.result.Options().ExpandQueries
}

// IsContainerOpen reports whether the container at row is open. Rows of a
// flat list are never open.
func (t *TreeView) IsContainerOpen(row int) (bool, error) {
	if t.flatList {
		return false, nil
	}
	node, err := t.containerAt(row)
	if err != nil {
		return false, err
	}
	return node.ContainerOpen(), nil
}

// IsContainerEmpty reports whether the container at row has no children.
// Rows of a flat list are always empty.
func (t *TreeView) IsContainerEmpty(row int) (bool, error) {
	if t.flatList {
		return true, nil
	}
	node, err := t.containerAt(row)
	if err != nil {
		return false, err
	}
	return !node.HasChildren(), nil
}

func (t *TreeView) containerAt(row int) (model.Node, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return nil, err
	}
	if !node.IsContainer() {
		return nil, fmt.Errorf("row %d: %w", row, ErrNotContainer)
	}
	return node, nil
}

// IsSeparator reports whether the row is a separator
func (t *TreeView) IsSeparator(row int) (bool, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return false, err
	}
	return node.Kind() == model.KindSeparator, nil
}

// Level returns the indentation of a row, 0 for the outermost rows
func (t *TreeView) Level(row int) (int, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return 0, err
	}
	level := node.IndentLevel()
	if t.showRoot {
		level++
	}
	return level, nil
}

// ParentIndex returns the row of the row's parent, or -1 when the parent is
// not shown
func (t *TreeView) ParentIndex(row int) (int, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return -1, err
	}
	parent := node.Parent()
	if parent == nil {
		return -1, nil
	}
	return t.rows.IndexOf(parent), nil
}

// HasNextSibling reports whether a sibling of row follows afterRow
func (t *TreeView) HasNextSibling(row, afterRow int) (bool, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return false, err
	}
	if row == t.rows.Len()-1 {
		return false, nil
	}
	level := node.IndentLevel()
	for i := afterRow + 1; i < t.rows.Len(); i++ {
		next := t.rows.at(i).IndentLevel()
		if next == level {
			return true, nil
		}
		if next < level {
			break
		}
	}
	return false, nil
}

// SessionStatus classifies row against the row before it
func (t *TreeView) SessionStatus(row int) (SessionStatus, error) {
	if row < 0 || row >= t.rows.Len() {
		return SessionNone, outOfRange(row, t.rows.Len())
	}
	return ClassifySession(t.rows, row, t.showSessions), nil
}

// CellText returns the text of one cell
func (t *TreeView) CellText(row int, column ColumnType) (string, error) {
	node, err := t.rows.At(row)
	if err != nil {
		return "", err
	}
	details, _ := node.(model.Details)

	switch column {
	case ColumnTitle:
		if node.Kind() == model.KindSeparator {
			return "", nil
		}
		return BestTitle(node), nil
	case ColumnTags:
		if details != nil {
			return details.Tags(), nil
		}
	case ColumnURI:
		if isURINode(node) {
			return node.URI(), nil
		}
	case ColumnDate:
		// only pages have a meaningful date, and inside a session only its
		// first row shows it
		if node.Time().IsZero() || !isURINode(node) {
			return "", nil
		}
		if ClassifySession(t.rows, row, t.showSessions) == SessionContinue {
			return "", nil
		}
		return t.times.format(node.Time()), nil
	case ColumnVisitCount:
		if details != nil && details.AccessCount() > 0 {
			return strconv.Itoa(details.AccessCount()), nil
		}
	case ColumnKeyword:
		if details != nil && isBookmark(node) {
			return details.Keyword(), nil
		}
	case ColumnDescription:
		if details != nil && node.ItemID() > 0 {
			return details.Description(), nil
		}
	case ColumnDateAdded:
		if details != nil && !details.DateAdded().IsZero() {
			return t.times.format(details.DateAdded()), nil
		}
	case ColumnLastModified:
		if details != nil && !details.LastModified().IsZero() {
			return t.times.format(details.LastModified()), nil
		}
	default:
		return "", fmt.Errorf("cell text of column %d: %w", column, ErrUnknownColumn)
	}
	return "", nil
}

func isURINode(n model.Node) bool {
	return n.Kind() == model.KindURI || n.Kind() == model.KindVisit
}

func isBookmark(n model.Node) bool {
	return n.Kind() == model.KindURI && n.ItemID() > 0
}

// BestTitle is the label of a node: its title, or for untitled pages the
// host and file name of the URI
func BestTitle(n model.Node) string {
	if n.Title() != "" || !isURINode(n) {
		return titleOr(n.Title())
	}
	u, err := url.Parse(n.URI())
	if err != nil || u.Host == "" {
		return NoTitle
	}
	file := path.Base(u.Path)
	if u.Path == "" || strings.HasSuffix(u.Path, "/") || file == "/" || file == "." {
		return titleOr(u.Host + u.Path)
	}
	return u.Host + "/…/" + file
}

func titleOr(title string) string {
	if title == "" {
		return NoTitle
	}
	return title
}
