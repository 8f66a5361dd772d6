package projection

// Host is the rendering side of the view: a virtualized list that draws
// rows on demand and only needs to hear what changed.
type Host interface {
	RowCountChanged(row, delta int)
	InvalidateRow(row int)
	InvalidateRange(start, end int)
	BeginUpdateBatch()
	EndUpdateBatch()
}

// SortIndicator is implemented by hosts that draw a sort marker on the
// sorted column header
type SortIndicator interface {
	SetSortIndicator(column ColumnType, descending bool)
}

// Observer hears about user-level actions on the view
type Observer interface {
	OnToggleOpenState(row int)
	OnCycleHeader(column ColumnType)
	OnSelectionChanged()
}

// OpenStateStore remembers which containers the user left open, keyed by
// the container's URI
type OpenStateStore interface {
	IsOpen(uri string) bool
	SetOpen(uri string, open bool) error
}

// Discard is a host that draws nothing. It lets command line tools run the
// projection without a screen.
var Discard Host = discardHost{}

type discardHost struct{}

func (discardHost) RowCountChanged(int, int) {}
func (discardHost) InvalidateRow(int) {}
func (discardHost) InvalidateRange(int, int) {}
func (discardHost) BeginUpdateBatch() {}
func (discardHost) EndUpdateBatch() {}
