package projection

import (
	"errors"
	"testing"

	"github.com/pstuifzand/placestree/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsShowRootInFlatList(t *testing.T) {
	_, err := New(WithShowRoot(true), WithFlatList(true))
	assert.True(t, errors.Is(err, ErrUnsupportedConfiguration))
}

func TestEmptyRootThenInsert(t *testing.T) {
	root := model.NewFolder("root", 1)
	tree := newTree(t, root, model.QueryOptions{})
	tv, host := attach(t, tree)

	assert.True(t, root.ContainerOpen(), "attaching opens the root")
	assert.Zero(t, tv.RowCount())
	assert.Empty(t, host.counts())

	child := leaf("first")
	_, err := tree.InsertChild(root, 0, child)
	require.NoError(t, err)

	assert.Equal(t, []hostEvent{{"count", 0, 1}}, host.counts())
	assert.Equal(t, 1, tv.RowCount())
	n, err := tv.NodeAt(0)
	require.NoError(t, err)
	assert.Same(t, child, n)
}

func TestRemoveMiddleChildKeepsSelection(t *testing.T) {
	a, b, c := leaf("a"), leaf("b"), leaf("c")
	root := folderWith("root", a, b, c)
	tree := newTree(t, root, model.QueryOptions{})
	tv, host := attach(t, tree)
	require.Equal(t, []string{"a", "b", "c"}, titles(tv))

	tv.Selection().Select(2)
	host.reset()
	require.NoError(t, tree.RemoveItem(b))

	assert.Equal(t, []hostEvent{{"count", 1, -1}}, host.counts())
	assert.Equal(t, 0, tv.RowOf(a))
	assert.Equal(t, 1, tv.RowOf(c))
	assert.Equal(t, -1, tv.RowOf(b))
	assert.Equal(t, []int{1}, tv.Selection().Rows())
}

func TestRemoveSelectedRowSelectsNext(t *testing.T) {
	a, b, c := leaf("a"), leaf("b"), leaf("c")
	tree := newTree(t, folderWith("root", a, b, c), model.QueryOptions{})
	tv, _ := attach(t, tree)

	tv.Selection().Select(1)
	require.NoError(t, tree.RemoveItem(b))
	assert.Equal(t, []int{1}, tv.Selection().Rows())

	tv.Selection().Select(1)
	require.NoError(t, tree.RemoveItem(c))
	assert.Empty(t, tv.Selection().Rows(), "no row takes the place of the removed last row")
}

func TestInsertOpenContainerIsOneSplice(t *testing.T) {
	tree := newTree(t, folderWith("root", leaf("a"), leaf("b")), model.QueryOptions{})
	tv, host := attach(t, tree)

	folder := folderWith("folder", leaf("x"), leaf("y"))
	folder.SetContainerOpen(true)
	host.reset()
	_, err := tree.InsertChild(tree.RootItem(), 1, folder)
	require.NoError(t, err)

	assert.Equal(t, []hostEvent{{"count", 1, 3}}, host.counts())
	assert.Equal(t, []string{"a", "folder", "x", "y", "b"}, titles(tv))
	assert.True(t, tv.rows.consistent())
}

func TestDuplicateVisitsCollapseToEarliest(t *testing.T) {
	v100 := model.NewVisit("http://dup", "dup", at(100), 1)
	v200 := model.NewVisit("http://dup", "dup", at(200), 1)
	root := folderWith("root", v100, v200)
	tree := newTree(t, root, model.QueryOptions{ResultType: model.ResultsAsVisit})
	tv, _ := attach(t, tree)

	require.Equal(t, 1, tv.RowCount())
	assert.Equal(t, 0, tv.RowOf(v100))
	assert.Equal(t, -1, tv.RowOf(v200))

	v50 := model.NewVisit("http://dup", "dup", at(50), 1)
	_, err := tree.InsertChild(root, 1, v50)
	require.NoError(t, err)

	assert.Equal(t, 1, tv.RowCount())
	assert.Equal(t, 0, tv.RowOf(v50))
	assert.Equal(t, -1, tv.RowOf(v100))
	assert.True(t, tv.rows.consistent())
}

func TestAdjacentInsertsCollapse(t *testing.T) {
	for _, laterFirst := range []bool{true, false} {
		root := model.NewFolder("root", 1)
		tree := newTree(t, root, model.QueryOptions{})
		tv, _ := attach(t, tree)

		t1 := model.NewVisit("http://same", "same", at(1), 0)
		t2 := model.NewVisit("http://same", "same", at(2), 0)
		if laterFirst {
			_, err := tree.InsertChild(root, 0, t2)
			require.NoError(t, err)
			_, err = tree.InsertChild(root, 0, t1)
			require.NoError(t, err)
		} else {
			_, err := tree.AppendChild(root, t1)
			require.NoError(t, err)
			_, err = tree.AppendChild(root, t2)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, tv.RowCount(), "later first: %v", laterFirst)
		assert.Equal(t, 0, tv.RowOf(t1), "later first: %v", laterFirst)
	}
}

func TestRemovalRecollapsesNeighbours(t *testing.T) {
	v1 := model.NewVisit("http://x", "x", at(1), 0)
	other := model.NewVisit("http://y", "y", at(2), 0)
	v3 := model.NewVisit("http://x", "x", at(3), 0)
	tree := newTree(t, folderWith("root", v1, other, v3), model.QueryOptions{})
	tv, host := attach(t, tree)
	require.Equal(t, 3, tv.RowCount())

	host.reset()
	require.NoError(t, tree.RemoveItem(other))

	assert.Equal(t, []hostEvent{{"count", 1, -1}, {"count", 1, -1}}, host.counts())
	assert.Equal(t, 1, tv.RowCount())
	assert.Equal(t, 0, tv.RowOf(v1))
	assert.Equal(t, -1, tv.RowOf(v3))
}

func TestCollapseDisabled(t *testing.T) {
	v1 := model.NewVisit("http://x", "x", at(1), 0)
	v2 := model.NewVisit("http://x", "x", at(2), 0)
	tree := newTree(t, folderWith("root", v1, v2), model.QueryOptions{})
	tv, _ := attach(t, tree, WithCollapseDuplicates(false))
	assert.Equal(t, 2, tv.RowCount())

	tv.SetCollapseDuplicates(true)
	assert.Equal(t, 1, tv.RowCount())
	assert.True(t, tv.CollapseDuplicates())
}

func TestSessionsInDateOrder(t *testing.T) {
	root := model.NewQuery("place:history", "History")
	opts := model.QueryOptions{ResultType: model.ResultsAsVisit, ShowSessions: true}
	tree := newTree(t, root, opts)
	tree.SetSorting(model.SortDateAscending, "")
	tv, _ := attach(t, tree)

	for i, session := range []int64{5, 5, 7} {
		v := model.NewVisit("http://example.com/"+string(rune('a'+i)), "v", at(i*10), session)
		_, err := tree.InsertChild(root, 0, v)
		require.NoError(t, err)
	}

	require.True(t, tv.ShowSessions())
	require.Equal(t, 3, tv.RowCount())
	var got []SessionStatus
	for row := 0; row < tv.RowCount(); row++ {
		status, err := tv.SessionStatus(row)
		require.NoError(t, err)
		got = append(got, status)
	}
	assert.Equal(t, []SessionStatus{SessionStart, SessionContinue, SessionStart}, got)

	props, err := tv.RowProperties(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"session-continue"}, props)

	date, err := tv.CellText(1, ColumnDate)
	require.NoError(t, err)
	assert.Empty(t, date, "continuing rows leave the date blank")
}

func TestSessionNeighboursRedrawnOnInsert(t *testing.T) {
	root := model.NewQuery("place:history", "History")
	opts := model.QueryOptions{ResultType: model.ResultsAsVisit, ShowSessions: true}
	a := model.NewVisit("http://a", "a", at(1), 1)
	c := model.NewVisit("http://c", "c", at(3), 1)
	root.AddChild(a)
	root.AddChild(c)
	tree := newTree(t, root, opts)
	tree.SetSorting(model.SortDateAscending, "")
	tv, host := attach(t, tree)

	host.reset()
	_, err := tree.InsertChild(root, 0, model.NewVisit("http://b", "b", at(2), 2))
	require.NoError(t, err)

	assert.Equal(t, 3, tv.RowCount())
	assert.Contains(t, host.events, hostEvent{"range", 0, 0})
	assert.Contains(t, host.events, hostEvent{"range", 2, 2})
}

func TestFlatListShowsContainersAsLeaves(t *testing.T) {
	inner := leaf("inner")
	folder := folderWith("folder", inner)
	folder.SetContainerOpen(true)
	tree := newTree(t, folderWith("root", leaf("a"), folder), model.QueryOptions{})
	tv, _ := attach(t, tree, WithFlatList(true))

	assert.Equal(t, []string{"a", "folder"}, titles(tv))
	isContainer, err := tv.IsContainer(1)
	require.NoError(t, err)
	assert.False(t, isContainer)

	empty, err := tv.IsContainerEmpty(1)
	require.NoError(t, err)
	assert.True(t, empty)

	props, err := tv.CellProperties(1, ColumnTitle)
	require.NoError(t, err)
	assert.Contains(t, props, "container")

	// children of non-root containers never show up in a flat list
	_, err = tree.AppendChild(folder, leaf("late"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "folder"}, titles(tv))
}

func TestShowRoot(t *testing.T) {
	root := folderWith("root", leaf("a"), leaf("b"))
	tree := newTree(t, root, model.QueryOptions{})
	tv, _ := attach(t, tree, WithShowRoot(true))

	assert.Equal(t, []string{"root"}, titles(tv), "a closed root is shown closed")

	require.NoError(t, tv.ToggleOpenState(0))
	assert.Equal(t, []string{"root", "a", "b"}, titles(tv))

	level, err := tv.Level(1)
	require.NoError(t, err)
	assert.Equal(t, 1, level)

	parent, err := tv.ParentIndex(2)
	require.NoError(t, err)
	assert.Equal(t, 0, parent)

	require.NoError(t, tv.ToggleOpenState(0))
	assert.Equal(t, []string{"root"}, titles(tv))
}

func TestNestedContainers(t *testing.T) {
	x := leaf("x")
	inner := folderWith("inner", x)
	outer := folderWith("outer", inner, leaf("y"))
	tree := newTree(t, folderWith("root", outer, leaf("z")), model.QueryOptions{})
	tv, host := attach(t, tree)
	require.Equal(t, []string{"outer", "z"}, titles(tv))

	host.reset()
	require.NoError(t, tv.ToggleOpenState(0))
	assert.Equal(t, []string{"outer", "inner", "y", "z"}, titles(tv))
	assert.Equal(t, []hostEvent{{"count", 1, 2}}, host.counts())

	require.NoError(t, tv.ToggleOpenState(1))
	assert.Equal(t, []string{"outer", "inner", "x", "y", "z"}, titles(tv))

	level, err := tv.Level(2)
	require.NoError(t, err)
	assert.Equal(t, 2, level)

	next, err := tv.HasNextSibling(1, 2)
	require.NoError(t, err)
	assert.True(t, next, "inner is followed by y")
	next, err = tv.HasNextSibling(3, 3)
	require.NoError(t, err)
	assert.False(t, next, "y is the last child of outer")

	tv.Selection().Select(2)
	host.reset()
	require.NoError(t, tv.ToggleOpenState(0))
	assert.Equal(t, []string{"outer", "z"}, titles(tv))
	assert.Equal(t, []hostEvent{{"count", 1, -3}}, host.counts())
	assert.Empty(t, tv.Selection().Rows(), "the old row number of x is past the end")

	require.NoError(t, tv.ToggleOpenState(0))
	require.Equal(t, []string{"outer", "inner", "x", "y", "z"}, titles(tv))
	tv.Selection().Select(2)
	require.NoError(t, tv.ToggleOpenState(1))
	assert.Equal(t, []string{"outer", "inner", "y", "z"}, titles(tv))
	assert.Equal(t, []int{2}, tv.Selection().Rows(), "lone selection falls back to its old row number")
}

func TestRemoveOpenContainerRemovesSubtree(t *testing.T) {
	inner := folderWith("inner", leaf("x"), leaf("y"))
	inner.SetContainerOpen(true)
	tree := newTree(t, folderWith("root", leaf("a"), inner, leaf("b")), model.QueryOptions{})
	tv, host := attach(t, tree)
	require.Equal(t, []string{"a", "inner", "x", "y", "b"}, titles(tv))

	host.reset()
	require.NoError(t, tree.RemoveItem(inner))
	assert.Equal(t, []hostEvent{{"count", 1, -3}}, host.counts())
	assert.Equal(t, []string{"a", "b"}, titles(tv))
}

func TestMoveKeepsSelection(t *testing.T) {
	a, b, c := leaf("a"), leaf("b"), leaf("c")
	target := model.NewFolder("target", 2)
	root := folderWith("root", a, b, c, target)
	target.SetContainerOpen(true)
	tree := newTree(t, root, model.QueryOptions{})
	tv, _ := attach(t, tree)
	require.Equal(t, []string{"a", "b", "c", "target"}, titles(tv))

	tv.Selection().Select(0)
	require.NoError(t, tree.MoveItem(a, target, 0))
	assert.Equal(t, []string{"b", "c", "target", "a"}, titles(tv))
	assert.Equal(t, []int{3}, tv.Selection().Rows())

	require.NoError(t, tree.MoveItem(c, root, 0))
	assert.Equal(t, []string{"c", "b", "target", "a"}, titles(tv))
	assert.True(t, tv.rows.consistent())
}

func TestMoveIntoViewInFlatList(t *testing.T) {
	x := leaf("x")
	f := folderWith("f", x)
	f.SetContainerOpen(true)
	root := folderWith("root", f)
	tree := newTree(t, root, model.QueryOptions{})
	tv, host := attach(t, tree, WithFlatList(true))
	require.Equal(t, []string{"f"}, titles(tv))

	host.reset()
	require.NoError(t, tree.MoveItem(x, root, 1))
	assert.Equal(t, []string{"f", "x"}, titles(tv))
	assert.Equal(t, []hostEvent{{"count", 1, 1}}, host.counts())

	require.NoError(t, tree.MoveItem(x, f, 0))
	assert.Equal(t, []string{"f"}, titles(tv))
	assert.True(t, tv.rows.consistent())
}

func TestSelectionFollowsNodeAcrossRebuild(t *testing.T) {
	c := leaf("c")
	tree := newTree(t, folderWith("root", c, leaf("a"), leaf("b")), model.QueryOptions{})
	tv, _ := attach(t, tree)
	require.Equal(t, []string{"c", "a", "b"}, titles(tv))

	tv.Selection().Select(0)
	tree.SetSorting(model.SortTitleAscending, "")
	assert.Equal(t, []string{"a", "b", "c"}, titles(tv))
	assert.Equal(t, []int{2}, tv.Selection().Rows())

	tree.Invalidate()
	assert.Equal(t, []int{2}, tv.Selection().Rows())

	require.NoError(t, tv.CycleHeader(ColumnTitle))
	assert.Equal(t, []string{"c", "b", "a"}, titles(tv))
	assert.Equal(t, []int{0}, tv.Selection().Rows())
	assert.Equal(t, 0, tv.RowOf(c))
}

func TestReplaceAndChange(t *testing.T) {
	a, b := leaf("a"), leaf("b")
	root := folderWith("root", a, b)
	tree := newTree(t, root, model.QueryOptions{})
	tv, host := attach(t, tree)

	host.reset()
	replacement := leaf("b2")
	_, err := tree.ReplaceChild(root, 1, replacement)
	require.NoError(t, err)
	assert.Equal(t, 1, tv.RowOf(replacement))
	assert.Equal(t, -1, tv.RowOf(b))
	assert.Equal(t, []hostEvent{{"row", 1, 1}}, host.events)

	host.reset()
	require.NoError(t, tree.UpdateItem(a, func(d *model.ItemData) { d.Title = "renamed" }))
	assert.Equal(t, []hostEvent{{"row", 0, 0}}, host.events)
	text, err := tv.CellText(0, ColumnTitle)
	require.NoError(t, err)
	assert.Equal(t, "renamed", text)
}

func TestInvalidateAllIsIdempotent(t *testing.T) {
	inner := folderWith("inner", leaf("x"))
	inner.SetContainerOpen(true)
	tree := newTree(t, folderWith("root", leaf("a"), inner), model.QueryOptions{})
	tv, _ := attach(t, tree)

	tree.Invalidate()
	first := tv.Rows()
	tree.Invalidate()
	assert.Equal(t, first, tv.Rows())
}

func TestOpenStateIsRemembered(t *testing.T) {
	store := memoryOpenState{"place:folder=2": true}
	remembered := model.NewQuery("place:folder=2", "remembered")
	remembered.AddChild(leaf("inside"))
	forgotten := model.NewQuery("place:folder=3", "forgotten")
	forgotten.AddChild(leaf("hidden"))
	forgotten.SetContainerOpen(true)

	tree := newTree(t, folderWith("root", remembered, forgotten), model.QueryOptions{ExpandQueries: true})
	tv, _ := attach(t, tree, WithOpenState(store))

	assert.Equal(t, []string{"remembered", "inside", "forgotten"}, titles(tv))
	assert.True(t, remembered.ContainerOpen())
	assert.False(t, forgotten.ContainerOpen())

	require.NoError(t, tv.ToggleOpenState(2))
	assert.True(t, store["place:folder=3"])
	assert.Equal(t, []string{"remembered", "inside", "forgotten", "hidden"}, titles(tv))
}

func TestRecursiveQueryIsNotReopened(t *testing.T) {
	store := memoryOpenState{"place:loop": true}
	outer := model.NewQuery("place:loop", "outer")
	inner := model.NewQuery("place:loop", "inner")
	inner.AddChild(leaf("deep"))
	outer.AddChild(inner)

	tree := newTree(t, folderWith("root", outer), model.QueryOptions{ExpandQueries: true})
	tv, _ := attach(t, tree, WithOpenState(store))

	assert.True(t, outer.ContainerOpen())
	assert.False(t, inner.ContainerOpen(), "same URI as an ancestor")
	assert.Equal(t, []string{"outer", "inner"}, titles(tv))
}

func TestSortedResultsHideSeparators(t *testing.T) {
	root := folderWith("root", leaf("b"), model.NewSeparator(9), leaf("a"))
	tree := newTree(t, root, model.QueryOptions{})
	tv, host := attach(t, tree)
	assert.Equal(t, 3, tv.RowCount())
	sep, err := tv.IsSeparator(1)
	require.NoError(t, err)
	assert.True(t, sep)

	require.NoError(t, tv.CycleHeader(ColumnTitle))
	assert.Equal(t, []string{"a", "b"}, titles(tv))
	assert.True(t, tv.IsSorted())
	assert.Equal(t, ColumnTitle, host.column)
	assert.False(t, host.descending)

	_, err = tree.AppendChild(root, model.NewSeparator(10))
	require.NoError(t, err)
	assert.Equal(t, 2, tv.RowCount())
}

func TestCycleHeader(t *testing.T) {
	tests := []struct {
		name   string
		root   *model.Item
		column ColumnType
		want   []model.SortingMode
	}{
		{"folder title", model.NewFolder("f", 1), ColumnTitle,
			[]model.SortingMode{model.SortTitleAscending, model.SortTitleDescending, model.SortNone}},
		{"query title", model.NewQuery("place:q", "q"), ColumnTitle,
			[]model.SortingMode{model.SortTitleAscending, model.SortTitleDescending, model.SortTitleAscending}},
		{"folder visit count", model.NewFolder("f", 1), ColumnVisitCount,
			[]model.SortingMode{model.SortVisitCountDescending, model.SortVisitCountAscending, model.SortNone}},
		{"query description", model.NewQuery("place:q", "q"), ColumnDescription,
			[]model.SortingMode{model.SortAnnotationAscending, model.SortAnnotationDescending, model.SortAnnotationAscending}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := newTree(t, tt.root, model.QueryOptions{})
			tv, _ := attach(t, tree)
			for _, want := range tt.want {
				require.NoError(t, tv.CycleHeader(tt.column))
				assert.Equal(t, want, tree.SortingMode())
			}
		})
	}

	tv, _ := attach(t, newTree(t, model.NewFolder("f", 1), model.QueryOptions{}))
	assert.True(t, errors.Is(tv.CycleHeader(ColumnUnknown), ErrUnknownColumn))
}

type countingObserver struct {
	toggles, cycles, selections int
}

func (o *countingObserver) OnToggleOpenState(int) { o.toggles++ }
func (o *countingObserver) OnCycleHeader(ColumnType) { o.cycles++ }
func (o *countingObserver) OnSelectionChanged() { o.selections++ }

func TestObservers(t *testing.T) {
	tree := newTree(t, folderWith("root", folderWith("f", leaf("x")), leaf("y")), model.QueryOptions{})
	tv, _ := attach(t, tree)
	obs := &countingObserver{}
	tv.AddObserver(obs)

	require.NoError(t, tv.ToggleOpenState(0))
	require.NoError(t, tv.ToggleOpenState(2), "leaf rows are ignored")
	require.NoError(t, tv.CycleHeader(ColumnTitle))
	tv.SelectionChanged()
	assert.Equal(t, countingObserver{toggles: 1, cycles: 1, selections: 1}, *obs)

	tv.RemoveObserver(obs)
	tv.SelectionChanged()
	assert.Equal(t, 1, obs.selections)
}

func TestDetachedViewIgnoresEvents(t *testing.T) {
	root := folderWith("root", leaf("a"))
	tree := newTree(t, root, model.QueryOptions{})
	tv, host := attach(t, tree)
	require.Equal(t, 1, tv.RowCount())

	tv.SetHost(nil)
	assert.Zero(t, tv.RowCount())
	host.reset()
	_, err := tree.AppendChild(root, leaf("b"))
	require.NoError(t, err)
	tv.ItemInserted(root, leaf("c"), 0)
	assert.Empty(t, host.events)
	assert.Zero(t, tv.RowCount())

	tv.SetHost(host)
	assert.Equal(t, []string{"a", "b"}, titles(tv))
}

func TestQueriesOutOfRange(t *testing.T) {
	tv, _ := attach(t, newTree(t, folderWith("root", leaf("a")), model.QueryOptions{}))

	_, err := tv.NodeAt(1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = tv.IsContainer(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = tv.CellText(5, ColumnTitle)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = tv.SessionStatus(1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.True(t, errors.Is(tv.ToggleOpenState(3), ErrOutOfRange))
	_, err = tv.IsContainerOpen(0)
	assert.True(t, errors.Is(err, ErrNotContainer))
}

func TestNoResult(t *testing.T) {
	tv, err := New()
	require.NoError(t, err)
	assert.True(t, errors.Is(tv.CycleHeader(ColumnTitle), ErrNoResult))
	assert.True(t, errors.Is(tv.ToggleOpenState(0), ErrNoResult))
}
