package projection

import (
	"fmt"
	"time"

	"github.com/pstuifzand/placestree/internal/debug"
	"github.com/pstuifzand/placestree/internal/model"
)

// TreeView projects a result onto a flat list of rows for a virtualized
// host. It implements model.Viewer: attach it to a result with SetResult
// and it keeps its rows in step with every change the result reports.
//
// All methods must be called from the goroutine that owns the host.
type TreeView struct {
	rows      *RowStore
	selection *Selection
	host      Host
	result    model.Result
	openState OpenStateStore
	observers []Observer

	showRoot           bool
	flatList           bool
	collapseDuplicates bool
	showSessions       bool

	sortColumn     ColumnType
	sortDescending bool

	// events raised while another one is being handled wait here
	dispatching bool
	pending     []func()

	props *propertyCache
	times timeFormatter
}

// Option configures a TreeView
type Option func(*TreeView)

// WithShowRoot makes the result's root occupy row 0
func WithShowRoot(show bool) Option {
	return func(t *TreeView) { t.showRoot = show }
}

// WithFlatList shows the root's children as a flat list of leaves
func WithFlatList(flat bool) Option {
	return func(t *TreeView) { t.flatList = flat }
}

// WithCollapseDuplicates controls whether adjacent visits to the same page
// share one row. It is on by default.
func WithCollapseDuplicates(collapse bool) Option {
	return func(t *TreeView) { t.collapseDuplicates = collapse }
}

// WithOpenState sets where the open state of containers is remembered.
// Without a store containers keep whatever state the result gives them.
func WithOpenState(store OpenStateStore) Option {
	return func(t *TreeView) { t.openState = store }
}

// WithSelection shares a selection owned by the host
func WithSelection(sel *Selection) Option {
	return func(t *TreeView) { t.selection = sel }
}

// WithClock replaces time.Now for the date columns
func WithClock(now func() time.Time) Option {
	return func(t *TreeView) { t.times.now = now }
}

// New creates a detached view. Showing the root of a flat list is rejected
// with ErrUnsupportedConfiguration.
func New(opts ...Option) (*TreeView, error) {
	t := &TreeView{
		rows:               NewRowStore(),
		selection:          NewSelection(),
		collapseDuplicates: true,
		props:              newPropertyCache(),
		times:              timeFormatter{now: time.Now},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.showRoot && t.flatList {
		return nil, fmt.Errorf("show root of a flat list: %w", ErrUnsupportedConfiguration)
	}
	if t.selection == nil {
		t.selection = NewSelection()
	}
	return t, nil
}

func (t *TreeView) ShowRoot() bool { return t.showRoot }
func (t *TreeView) FlatList() bool { return t.flatList }
func (t *TreeView) CollapseDuplicates() bool { return t.collapseDuplicates }
func (t *TreeView) ShowSessions() bool { return t.showSessions }
func (t *TreeView) Selection() *Selection { return t.selection }
func (t *TreeView) Result() model.Result { return t.result }
func (t *TreeView) Host() Host { return t.host }

// SortedColumn returns the column carrying the sort indicator
func (t *TreeView) SortedColumn() (ColumnType, bool) {
	return t.sortColumn, t.sortDescending
}

// SetResult attaches the view to r, replacing any previous result. With a
// host attached the rows are rebuilt right away.
func (t *TreeView) SetResult(r model.Result) {
	if t.result != nil && t.result != r {
		t.result.SetViewer(nil)
		// rows of another result say nothing about this one
		t.selection.Clear()
	}
	t.result = r
	t.props.reset()
	if r == nil {
		t.detachRows()
		return
	}
	if t.host == nil {
		return
	}
	r.SetViewer(t)
	t.dispatch(t.finishInit)
}

// SetHost attaches the rendering host. Passing nil detaches the view: all
// row bookkeeping is dropped and the result stops reporting to it until a
// host is attached again.
func (t *TreeView) SetHost(h Host) {
	t.host = h
	t.detachRows()
	if h == nil {
		if t.result != nil {
			t.result.SetViewer(nil)
		}
		return
	}
	if t.result != nil {
		t.result.SetViewer(t)
		t.dispatch(t.finishInit)
	}
}

// SetCollapseDuplicates switches duplicate collapsing and rebuilds the rows
// when the setting changes
func (t *TreeView) SetCollapseDuplicates(collapse bool) {
	if t.collapseDuplicates == collapse {
		return
	}
	t.collapseDuplicates = collapse
	t.dispatch(t.buildAll)
}

// SetOpenState replaces the open-state store used for containers
// materialized from now on
func (t *TreeView) SetOpenState(store OpenStateStore) {
	t.openState = store
}

func (t *TreeView) AddObserver(o Observer) {
	t.observers = append(t.observers, o)
}

func (t *TreeView) RemoveObserver(o Observer) {
	for i, existing := range t.observers {
		if existing == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// ToggleOpenState opens or closes the container at row and remembers the
// new state. Rows that are not containers are left alone.
func (t *TreeView) ToggleOpenState(row int) error {
	if t.result == nil {
		return ErrNoResult
	}
	node, err := t.rows.At(row)
	if err != nil {
		return err
	}
	if t.flatList || !node.IsContainer() {
		return nil
	}
	for _, o := range t.observers {
		o.OnToggleOpenState(row)
	}

	open := !node.ContainerOpen()
	var storeErr error
	if t.openState != nil && node.URI() != "" {
		if err := t.openState.SetOpen(node.URI(), open); err != nil {
			storeErr = fmt.Errorf("remember open state of %s: %w", node.URI(), err)
		}
	}
	t.dispatch(func() { node.SetContainerOpen(open) })
	return storeErr
}

// CycleHeader sorts the result by column, cycling through ascending and
// descending order. Results rooted at a folder also cycle back to their
// natural order.
func (t *TreeView) CycleHeader(column ColumnType) error {
	if t.result == nil {
		return ErrNoResult
	}
	triState := t.result.Root().Kind() == model.KindFolder
	mode, annotation, err := nextSort(column, t.result.SortingMode(), t.result.SortingAnnotation(), triState)
	if err != nil {
		return err
	}
	for _, o := range t.observers {
		o.OnCycleHeader(column)
	}
	debug.Log("cycle header %s: %s -> %s", column, t.result.SortingMode(), mode)
	t.dispatch(func() { t.result.SetSorting(mode, annotation) })
	return nil
}

// SelectionChanged tells the observers that the host changed the selection
func (t *TreeView) SelectionChanged() {
	for _, o := range t.observers {
		o.OnSelectionChanged()
	}
}

// dispatch runs fn now, or after the event currently being handled when
// called from inside one. Events raised while rows are being rebuilt, such
// as a container opening because its state was remembered, therefore never
// see a half-edited row list.
func (t *TreeView) dispatch(fn func()) {
	if t.dispatching {
		t.pending = append(t.pending, fn)
		return
	}
	t.dispatching = true
	defer func() {
		t.dispatching = false
		t.pending = nil
	}()
	fn()
	for len(t.pending) > 0 {
		next := t.pending[0]
		t.pending = t.pending[1:]
		next()
	}
}

func (t *TreeView) finishInit() {
	if t.result == nil {
		return
	}
	t.sortingChanged(t.result.SortingMode())
	t.buildAll()
}

func (t *TreeView) detachRows() {
	t.rows.Reset()
	t.selection.Clear()
	t.props.reset()
	t.pending = nil
}
