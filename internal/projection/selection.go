package projection

import "sort"

// Selection is the set of selected rows. The view shifts it along with
// every row count change and restores it around structural edits.
type Selection struct {
	rows []int
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{}
}

// Count returns the number of selected rows
func (s *Selection) Count() int {
	return len(s.rows)
}

// Rows returns the selected rows in ascending order
func (s *Selection) Rows() []int {
	return append([]int(nil), s.rows...)
}

// IsSelected reports whether row is selected
func (s *Selection) IsSelected(row int) bool {
	i := sort.SearchInts(s.rows, row)
	return i < len(s.rows) && s.rows[i] == row
}

// Clear deselects everything
func (s *Selection) Clear() {
	s.rows = nil
}

// Select makes row the only selected row
func (s *Selection) Select(row int) {
	s.rows = []int{row}
}

// RangedSelect selects the rows min through max. Without augment the
// previous selection is dropped first.
func (s *Selection) RangedSelect(min, max int, augment bool) {
	if min > max {
		min, max = max, min
	}
	if !augment {
		s.rows = nil
	}
	for r := min; r <= max; r++ {
		if r < 0 || s.IsSelected(r) {
			continue
		}
		i := sort.SearchInts(s.rows, r)
		s.rows = append(s.rows, 0)
		copy(s.rows[i+1:], s.rows[i:])
		s.rows[i] = r
	}
}

// RangeCount returns the number of contiguous selected runs
func (s *Selection) RangeCount() int {
	n := 0
	for i, r := range s.rows {
		if i == 0 || s.rows[i-1] != r-1 {
			n++
		}
	}
	return n
}

// RangeAt returns the bounds of the i-th contiguous run
func (s *Selection) RangeAt(i int) (min, max int, ok bool) {
	n := -1
	for j, r := range s.rows {
		if j == 0 || s.rows[j-1] != r-1 {
			n++
			if n == i {
				min = r
			}
		}
		if n == i {
			max = r
		}
		if n > i {
			break
		}
	}
	return min, max, n >= i && i >= 0 && len(s.rows) > 0
}

// Adjust follows a row count change: delta rows were inserted at row when
// positive, removed from row onward when negative. Removed rows drop out
// of the selection.
func (s *Selection) Adjust(row, delta int) {
	if delta == 0 || len(s.rows) == 0 {
		return
	}
	kept := s.rows[:0]
	for _, r := range s.rows {
		switch {
		case r < row:
			kept = append(kept, r)
		case delta > 0:
			kept = append(kept, r+delta)
		case r >= row-delta:
			kept = append(kept, r+delta)
		}
	}
	s.rows = kept
}
