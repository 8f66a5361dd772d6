// Package projection maintains the flat list of visible rows for a
// hierarchical result and keeps it up to date as the result changes.
package projection

import (
	"github.com/pstuifzand/placestree/internal/debug"
	"github.com/pstuifzand/placestree/internal/model"
)

// RowStore is the ordered sequence of visible nodes. It keeps a side table
// from node to row so looking up a node's row never searches, and the nodes
// themselves carry no view state. Nodes must be comparable, which every
// pointer-backed implementation is.
type RowStore struct {
	rows  []model.Node
	index map[model.Node]int
}

// NewRowStore creates an empty store
func NewRowStore() *RowStore {
	return &RowStore{index: make(map[model.Node]int)}
}

// Len returns the number of visible rows
func (s *RowStore) Len() int {
	return len(s.rows)
}

// At returns the node shown at row i
func (s *RowStore) At(i int) (model.Node, error) {
	if i < 0 || i >= len(s.rows) {
		return nil, outOfRange(i, len(s.rows))
	}
	return s.rows[i], nil
}

// at is At without the error, nil when out of range
func (s *RowStore) at(i int) model.Node {
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	return s.rows[i]
}

// IndexOf returns the row of n, or -1 when n is not visible
func (s *RowStore) IndexOf(n model.Node) int {
	if n == nil {
		return -1
	}
	if i, ok := s.index[n]; ok {
		return i
	}
	return -1
}

// Splice removes deleteCount rows at start and inserts nodes in their
// place. Every row from start onward is renumbered once.
func (s *RowStore) Splice(start, deleteCount int, nodes []model.Node) error {
	if start < 0 || start > len(s.rows) {
		return outOfRange(start, len(s.rows))
	}
	if deleteCount < 0 || start+deleteCount > len(s.rows) {
		return outOfRange(start+deleteCount, len(s.rows))
	}

	for _, n := range s.rows[start : start+deleteCount] {
		if s.index[n] >= start && s.index[n] < start+deleteCount {
			delete(s.index, n)
		}
	}

	for _, n := range nodes {
		prev, ok := s.index[n]
		debug.Assert(!ok, "node %q is already visible at row %d", n.Title(), prev)
	}

	tail := append([]model.Node(nil), s.rows[start+deleteCount:]...)
	s.rows = append(s.rows[:start], nodes...)
	s.rows = append(s.rows, tail...)

	end := len(s.rows)
	if len(nodes) == deleteCount {
		end = start + len(nodes)
	}
	for i := start; i < end; i++ {
		s.index[s.rows[i]] = i
	}
	return nil
}

// Set puts n at row i in place of the node shown there. The replaced node
// stops being visible.
func (s *RowStore) Set(i int, n model.Node) error {
	if i < 0 || i >= len(s.rows) {
		return outOfRange(i, len(s.rows))
	}
	old := s.rows[i]
	if s.index[old] == i {
		delete(s.index, old)
	}
	s.rows[i] = n
	s.index[n] = i
	return nil
}

// Reset forgets every row; all nodes become invisible
func (s *RowStore) Reset() {
	s.rows = nil
	s.index = make(map[model.Node]int)
}

// Rows returns a copy of the visible sequence
func (s *RowStore) Rows() []model.Node {
	return append([]model.Node(nil), s.rows...)
}

// consistent checks that rows and the side table agree
func (s *RowStore) consistent() bool {
	if len(s.index) != len(s.rows) {
		return false
	}
	for i, n := range s.rows {
		if s.index[n] != i {
			return false
		}
	}
	return true
}
