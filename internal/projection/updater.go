package projection

import (
	"github.com/pstuifzand/placestree/internal/debug"
	"github.com/pstuifzand/placestree/internal/model"
)

func (t *TreeView) ItemInserted(parent, item model.Node, index int) {
	t.dispatch(func() { t.itemInserted(parent, item, index) })
}

func (t *TreeView) ItemRemoved(parent, item model.Node, oldIndex int) {
	t.dispatch(func() { t.itemRemoved(parent, item, oldIndex) })
}

func (t *TreeView) ItemMoved(item, oldParent model.Node, oldIndex int, newParent model.Node, newIndex int) {
	t.dispatch(func() { t.itemMoved(item, oldParent, oldIndex, newParent, newIndex) })
}

func (t *TreeView) ItemReplaced(parent, oldItem, newItem model.Node) {
	t.dispatch(func() { t.itemReplaced(parent, oldItem, newItem) })
}

func (t *TreeView) ItemChanged(item model.Node) {
	t.dispatch(func() { t.itemChanged(item) })
}

func (t *TreeView) ContainerOpened(item model.Node) {
	t.dispatch(func() { t.invalidateContainer(item) })
}

func (t *TreeView) ContainerClosed(item model.Node) {
	t.dispatch(func() { t.invalidateContainer(item) })
}

func (t *TreeView) InvalidateContainer(item model.Node) {
	t.dispatch(func() { t.invalidateContainer(item) })
}

func (t *TreeView) InvalidateAll() {
	t.dispatch(t.buildAll)
}

func (t *TreeView) SortingChanged(mode model.SortingMode) {
	t.dispatch(func() { t.sortingChanged(mode) })
}

func (t *TreeView) attached() bool {
	return t.host != nil && t.result != nil
}

// buildAll throws away every row and lists the result again. Selected
// nodes stay selected wherever they end up, which keeps the selection
// across re-sorts.
func (t *TreeView) buildAll() {
	if !t.attached() {
		t.detachRows()
		return
	}
	debug.Log("build all rows")
	saved := t.saveSelection(0, t.rows.Len())
	t.selection.Clear()
	t.props.reset()
	t.showSessions = showSessionsFor(t.result.Options(), t.result.SortingMode())

	t.host.BeginUpdateBatch()
	defer t.host.EndUpdateBatch()

	if n := t.rows.Len(); n > 0 {
		t.rows.Reset()
		t.host.RowCountChanged(0, -n)
	}

	root := t.result.Root()
	switch {
	case t.showRoot:
		t.spliceRows(0, 0, []model.Node{root})
		if root.ContainerOpen() {
			t.refreshSection(root)
		}
	case !root.ContainerOpen():
		// the result answers with ContainerOpened, which lists the rows,
		// so the selection is restored after that
		root.SetContainerOpen(true)
		t.dispatch(func() { t.restoreSelection(saved, root) })
		return
	default:
		t.refreshSection(root)
	}
	t.restoreSelection(saved, root)
}

func (t *TreeView) invalidateContainer(item model.Node) {
	if !t.attached() {
		return
	}
	if item != t.result.Root() {
		row := t.rows.IndexOf(item)
		if row < 0 {
			return
		}
		if t.flatList {
			t.host.InvalidateRow(row)
			return
		}
	}
	t.refreshSection(item)
}

// refreshSection lists container's children again and swaps them in for
// the rows they occupied before, as one splice
func (t *TreeView) refreshSection(container model.Node) {
	root := t.result.Root()
	row := t.rows.IndexOf(container)
	if row < 0 && (container != root || t.showRoot) {
		debug.Log("refresh of invisible container %q", container.Title())
		return
	}

	start := row + 1
	replace := t.visibleSpan(container)
	if row >= 0 {
		replace--
	}
	saved := t.saveSelection(start, start+replace)

	var fresh, toOpen []model.Node
	if container.ContainerOpen() {
		fresh, toOpen = t.materialize(container)
	}
	debug.Log("refresh %q: rows %d+%d -> %d, %d to toggle", container.Title(), start, replace, len(fresh), len(toOpen))

	t.host.BeginUpdateBatch()
	t.spliceRows(start, replace, fresh)
	t.reopen(toOpen)
	t.host.EndUpdateBatch()

	t.restoreSelection(saved, container)
	if row >= 0 {
		t.host.InvalidateRow(row)
	}
	debug.Assert(t.rows.consistent(), "rows out of sync after refreshing %q", container.Title())
}

func (t *TreeView) itemInserted(parent, item model.Node, index int) {
	if !t.attached() || !t.showsChildrenOf(parent) {
		return
	}
	if t.sorted() && item.Kind() == model.KindSeparator {
		return
	}
	// the twisty appears with the first child
	if parent.ChildCount() == 1 {
		t.itemChanged(parent)
	}

	row := t.insertionRow(parent, index)

	// a merged duplicate always belongs to the same session as its partner,
	// so nothing around it needs redrawing
	if row > 0 {
		prev := t.rows.at(row - 1)
		if collapsible, keepPrev := t.canCollapse(prev, item); collapsible {
			if !keepPrev {
				t.itemReplaced(parent, prev, item)
			}
			return
		}
	}
	if row < t.rows.Len() {
		next := t.rows.at(row)
		if collapsible, keepItem := t.canCollapse(item, next); collapsible {
			if keepItem {
				t.itemReplaced(parent, next, item)
			}
			return
		}
	}

	// an open container brings its visible descendants along in the same splice
	nodes := []model.Node{item}
	var toOpen []model.Node
	if !t.flatList && item.IsContainer() && item.ContainerOpen() && item.HasChildren() {
		var sub []model.Node
		sub, toOpen = t.materialize(item)
		nodes = append(nodes, sub...)
	}
	t.host.BeginUpdateBatch()
	t.spliceRows(row, 0, nodes)
	t.reopen(toOpen)
	t.host.EndUpdateBatch()

	// session borders of the neighbours may have moved
	if t.showSessions {
		if row > 0 {
			t.host.InvalidateRange(row-1, row-1)
		}
		if next := row + len(nodes); next < t.rows.Len() {
			t.host.InvalidateRange(next, next)
		}
	}
}

func (t *TreeView) itemRemoved(parent, item model.Node, oldIndex int) {
	if !t.attached() {
		return
	}
	row := t.rows.IndexOf(item)
	if row < 0 {
		return
	}

	// an exclusively selected row hands the selection to its neighbour
	selectNext := t.selection.Count() == 1 && t.selection.IsSelected(row)

	t.host.BeginUpdateBatch()
	row = t.removeRows(row, t.visibleSpan(item))
	t.host.EndUpdateBatch()

	if !parent.HasChildren() {
		t.itemChanged(parent)
	}

	if selectNext && t.selection.Count() == 0 && row < t.rows.Len() {
		t.selection.RangedSelect(row, row, true)
	}
}

// removeRows removes count rows at row. When that brings two duplicates
// next to each other one of them is removed too, repeatedly, until the
// neighbours no longer collapse. It returns the row of the last removal.
func (t *TreeView) removeRows(row, count int) int {
	for {
		if row+count > t.rows.Len() {
			debug.Assert(false, "removing rows %d+%d of %d", row, count, t.rows.Len())
			return row
		}
		t.spliceRows(row, count, nil)

		if row == 0 || row >= t.rows.Len() {
			return row
		}
		collapsible, showFirst := t.canCollapse(t.rows.at(row-1), t.rows.at(row))
		if !collapsible {
			return row
		}
		row--
		if showFirst {
			row++
		}
		count = 1
	}
}

func (t *TreeView) itemMoved(item, oldParent model.Node, oldIndex int, newParent model.Node, newIndex int) {
	if !t.attached() {
		return
	}
	row := t.rows.IndexOf(item)
	if row < 0 {
		// hidden where it was, as in a flat list or behind a duplicate,
		// but it may show up where it went
		t.itemInserted(newParent, item, newIndex)
		return
	}
	count := t.visibleSpan(item)
	saved := t.saveSelection(row, row+count)

	t.host.BeginUpdateBatch()
	t.spliceRows(row, count, nil)
	if !oldParent.HasChildren() {
		t.itemChanged(oldParent)
	}
	t.itemInserted(newParent, item, newIndex)
	t.host.EndUpdateBatch()

	t.restoreSelection(saved, newParent)
}

func (t *TreeView) itemReplaced(parent, oldItem, newItem model.Node) {
	if !t.attached() {
		return
	}
	row := t.rows.IndexOf(oldItem)
	if row < 0 {
		return
	}
	if err := t.rows.Set(row, newItem); err != nil {
		debug.Log("replace %q: %v", oldItem.Title(), err)
		return
	}
	t.props.forget(oldItem)
	t.host.InvalidateRow(row)
}

func (t *TreeView) itemChanged(item model.Node) {
	t.props.forget(item)
	if !t.attached() {
		return
	}
	if row := t.rows.IndexOf(item); row >= 0 {
		t.host.InvalidateRow(row)
	}
}

// sortingChanged only records the new mode. The result follows up with a
// rebuild when the order of its children changed.
func (t *TreeView) sortingChanged(mode model.SortingMode) {
	if t.result == nil {
		return
	}
	t.showSessions = showSessionsFor(t.result.Options(), mode)
	t.sortColumn, t.sortDescending = SortColumn(mode, t.result.SortingAnnotation())
	if indicator, ok := t.host.(SortIndicator); ok {
		indicator.SetSortIndicator(t.sortColumn, t.sortDescending)
	}
}

// spliceRows edits the row list and tells the host and the selection
func (t *TreeView) spliceRows(start, deleteCount int, nodes []model.Node) {
	for i := start; i < start+deleteCount; i++ {
		if n := t.rows.at(i); n != nil {
			t.props.forget(n)
		}
	}
	if err := t.rows.Splice(start, deleteCount, nodes); err != nil {
		debug.Log("splice rows: %v", err)
		return
	}
	if deleteCount > 0 {
		t.rowCountChanged(start, -deleteCount)
	}
	if len(nodes) > 0 {
		t.rowCountChanged(start, len(nodes))
	}
}

func (t *TreeView) rowCountChanged(row, delta int) {
	t.selection.Adjust(row, delta)
	t.host.RowCountChanged(row, delta)
}

// visibleSpan counts the rows n occupies: its own and those of its
// visible descendants. The hidden root spans the whole list. Descendants
// are found through their parents rather than indent levels because a
// node that was just removed or moved no longer has its old level.
func (t *TreeView) visibleSpan(n model.Node) int {
	if t.result != nil && n == t.result.Root() {
		return t.rows.Len()
	}
	row := t.rows.IndexOf(n)
	if row < 0 {
		return 0
	}
	end := row + 1
	for end < t.rows.Len() && isDescendant(t.rows.at(end), n) {
		end++
	}
	return end - row
}

func isDescendant(n, ancestor model.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p == ancestor {
			return true
		}
	}
	return false
}

// showsChildrenOf reports whether parent's children are listed in the rows
func (t *TreeView) showsChildrenOf(parent model.Node) bool {
	if parent == t.result.Root() {
		return parent.ContainerOpen() && (!t.showRoot || t.rows.IndexOf(parent) >= 0)
	}
	if t.flatList {
		return false
	}
	return parent.ContainerOpen() && t.rows.IndexOf(parent) >= 0
}

// insertionRow finds the row a new child of parent at index goes to. The
// rows of later siblings have not moved yet, so the first visible one marks
// the spot; otherwise it goes after the last visible earlier sibling and
// everything below it.
func (t *TreeView) insertionRow(parent model.Node, index int) int {
	if index > 0 {
		for i := index + 1; i < parent.ChildCount(); i++ {
			if row := t.rows.IndexOf(parent.Child(i)); row >= 0 {
				return row
			}
		}
		for i := index - 1; i >= 0; i-- {
			prev := parent.Child(i)
			if row := t.rows.IndexOf(prev); row >= 0 {
				return row + t.visibleSpan(prev)
			}
		}
	}
	// the hidden root sits at row -1
	return t.rows.IndexOf(parent) + 1
}

// canCollapse only pairs siblings
func (t *TreeView) canCollapse(a, b model.Node) (bool, bool) {
	if a == nil || b == nil || a.Parent() != b.Parent() {
		return false, false
	}
	return CanCollapse(a, b, t.collapseDuplicates)
}

type savedRow struct {
	node model.Node
	row  int
}

// saveSelection records the selected rows in [first, last)
func (t *TreeView) saveSelection(first, last int) []savedRow {
	var saved []savedRow
	for _, row := range t.selection.rows {
		if row >= first && row < last {
			saved = append(saved, savedRow{node: t.rows.at(row), row: row})
		}
	}
	return saved
}

// restoreSelection selects the saved nodes again wherever they ended up.
// A single saved row that cannot be found hands the selection to whatever
// row now has its number, if there is one.
func (t *TreeView) restoreSelection(saved []savedRow, container model.Node) {
	if len(saved) == 0 {
		return
	}
	for _, s := range saved {
		if row := t.rowForRemovedNode(container, s.node); row >= 0 {
			t.selection.RangedSelect(row, row, true)
		}
	}
	if len(saved) == 1 && t.selection.Count() == 0 && saved[0].row < t.rows.Len() {
		t.selection.RangedSelect(saved[0].row, saved[0].row, true)
	}
}

// rowForRemovedNode finds the current row of a node that was selected
// before an edit. A node that left the tree may have been recreated, so it
// is looked up by its bookmark id or by URI and time below container.
func (t *TreeView) rowForRemovedNode(container, old model.Node) int {
	if row := t.rows.IndexOf(old); row >= 0 {
		return row
	}
	if old.Parent() != nil {
		return -1
	}
	first := t.rows.IndexOf(container) + 1
	last := first + t.visibleSpan(container)
	if t.rows.IndexOf(container) >= 0 {
		last--
	}
	for row := first; row < last; row++ {
		if sameItem(t.rows.at(row), old) {
			return row
		}
	}
	return -1
}

func sameItem(a, b model.Node) bool {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	if a.ItemID() > 0 || b.ItemID() > 0 {
		return a.ItemID() == b.ItemID()
	}
	return a.URI() != "" && a.URI() == b.URI() && a.Time().Equal(b.Time())
}
