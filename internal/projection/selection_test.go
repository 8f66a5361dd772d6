package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionRanges(t *testing.T) {
	s := NewSelection()
	s.RangedSelect(2, 4, false)
	s.RangedSelect(8, 8, true)
	assert.Equal(t, []int{2, 3, 4, 8}, s.Rows())
	assert.Equal(t, 2, s.RangeCount())

	min, max, ok := s.RangeAt(0)
	assert.True(t, ok)
	assert.Equal(t, 2, min)
	assert.Equal(t, 4, max)

	min, max, ok = s.RangeAt(1)
	assert.True(t, ok)
	assert.Equal(t, 8, min)
	assert.Equal(t, 8, max)

	_, _, ok = s.RangeAt(2)
	assert.False(t, ok)

	s.RangedSelect(5, 5, false)
	assert.Equal(t, []int{5}, s.Rows())
}

func TestSelectionAdjust(t *testing.T) {
	tests := []struct {
		name       string
		rows       []int
		row, delta int
		want       []int
	}{
		{"insert before", []int{3, 5}, 2, 2, []int{5, 7}},
		{"insert at selected row", []int{3}, 3, 1, []int{4}},
		{"insert after", []int{1}, 2, 4, []int{1}},
		{"remove before", []int{4}, 1, -2, []int{2}},
		{"remove selected", []int{1, 2, 5}, 1, -2, []int{3}},
		{"remove after", []int{0}, 1, -1, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection()
			for _, r := range tt.rows {
				s.RangedSelect(r, r, true)
			}
			s.Adjust(tt.row, tt.delta)
			assert.Equal(t, tt.want, s.Rows())
		})
	}
}
