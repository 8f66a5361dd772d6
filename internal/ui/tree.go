package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/projection"
)

// PlacesTree draws the rows of a tree view and is that view's rendering
// host. The cursor is the view's single selected row.
type PlacesTree struct {
	view *projection.TreeView

	offset     int // first row in the viewport
	lastCursor int // cursor to fall back on when the selection is empty
	batchDepth int
	dirty      map[int]bool
	fullRedraw bool

	sortColumn     projection.ColumnType
	sortDescending bool

	matches func(row int) bool
}

// NewPlacesTree attaches a new widget to view as its host
func NewPlacesTree(view *projection.TreeView) *PlacesTree {
	p := &PlacesTree{
		view:       view,
		dirty:      make(map[int]bool),
		fullRedraw: true,
	}
	view.SetHost(p)
	return p
}

// RowCountChanged schedules a full redraw. The view has already shifted
// its selection, so the cursor is read back from it. A rebuild clears the
// selection and leaves the old cursor row to fall back on.
func (p *PlacesTree) RowCountChanged(row, delta int) {
	p.fullRedraw = true
	if rows := p.view.Selection().Rows(); len(rows) > 0 {
		p.lastCursor = rows[0]
	}
}

func (p *PlacesTree) InvalidateRow(row int) {
	p.dirty[row] = true
}

func (p *PlacesTree) InvalidateRange(start, end int) {
	for row := start; row <= end; row++ {
		p.dirty[row] = true
	}
}

func (p *PlacesTree) BeginUpdateBatch() {
	p.batchDepth++
}

func (p *PlacesTree) EndUpdateBatch() {
	if p.batchDepth > 0 {
		p.batchDepth--
	}
}

// SetSortIndicator records which header shows the sort arrow
func (p *PlacesTree) SetSortIndicator(column projection.ColumnType, descending bool) {
	p.sortColumn = column
	p.sortDescending = descending
	p.fullRedraw = true
}

// NeedsRedraw reports whether anything changed since the last Render. It is
// false while an update batch is open.
func (p *PlacesTree) NeedsRedraw() bool {
	return p.batchDepth == 0 && (p.fullRedraw || len(p.dirty) > 0)
}

// SetMatcher marks rows for which fn is true as search matches
func (p *PlacesTree) SetMatcher(fn func(row int) bool) {
	p.matches = fn
	p.fullRedraw = true
}

// View returns the tree view the widget draws
func (p *PlacesTree) View() *projection.TreeView {
	return p.view
}

// Cursor returns the row under the cursor, or -1 when there are no rows
func (p *PlacesTree) Cursor() int {
	count := p.view.RowCount()
	if count == 0 {
		return -1
	}
	if rows := p.view.Selection().Rows(); len(rows) > 0 && rows[0] < count {
		p.lastCursor = rows[0]
		return rows[0]
	}
	p.Select(p.lastCursor)
	return p.lastCursor
}

// Select moves the cursor to row, clamped to the rows that exist
func (p *PlacesTree) Select(row int) {
	count := p.view.RowCount()
	if count == 0 {
		p.lastCursor = 0
		p.view.Selection().Clear()
		return
	}
	row = max(0, min(row, count-1))
	p.lastCursor = row
	p.view.Selection().Select(row)
	p.view.SelectionChanged()
	p.fullRedraw = true
}

// SelectedNode returns the node under the cursor
func (p *PlacesTree) SelectedNode() model.Node {
	row := p.Cursor()
	if row < 0 {
		return nil
	}
	n, err := p.view.NodeAt(row)
	if err != nil {
		return nil
	}
	return n
}

func (p *PlacesTree) MoveDown() { p.Select(p.Cursor() + 1) }
func (p *PlacesTree) MoveUp()   { p.Select(p.Cursor() - 1) }
func (p *PlacesTree) First()    { p.Select(0) }
func (p *PlacesTree) Last()     { p.Select(p.view.RowCount() - 1) }

// PageDown moves the cursor down by pageSize rows
func (p *PlacesTree) PageDown(pageSize int) {
	p.Select(p.Cursor() + max(pageSize, 1))
}

// PageUp moves the cursor up by pageSize rows
func (p *PlacesTree) PageUp(pageSize int) {
	p.Select(p.Cursor() - max(pageSize, 1))
}

// SelectParent moves the cursor to the row of the parent container
func (p *PlacesTree) SelectParent() bool {
	row := p.Cursor()
	if row < 0 {
		return false
	}
	parent, err := p.view.ParentIndex(row)
	if err != nil || parent < 0 {
		return false
	}
	p.Select(parent)
	return true
}

// Toggle opens or closes the container under the cursor
func (p *PlacesTree) Toggle() error {
	row := p.Cursor()
	if row < 0 {
		return nil
	}
	return p.view.ToggleOpenState(row)
}

// HeaderText returns the column header with the sort arrow
func (p *PlacesTree) HeaderText(column projection.ColumnType, label string) string {
	if p.sortColumn != column {
		return label
	}
	if p.sortDescending {
		return label + " ▼"
	}
	return label + " ▲"
}

// RowText returns row as plain text the way Render lays it out, without
// the session gutter and the date column
func (p *PlacesTree) RowText(row int) string {
	level, err := p.view.Level(row)
	if err != nil {
		return ""
	}
	if sep, _ := p.view.IsSeparator(row); sep {
		return strings.Repeat("  ", level) + "───"
	}
	title, _ := p.view.CellText(row, projection.ColumnTitle)
	return strings.Repeat("  ", level) + string(p.twisty(row)) + " " + title
}

func (p *PlacesTree) twisty(row int) rune {
	if ok, _ := p.view.IsContainer(row); !ok {
		return '•'
	}
	if open, _ := p.view.IsContainerOpen(row); open {
		return '▼'
	}
	return '▶'
}

// Render draws the header at startY and as many rows as fit in height
// lines below it
func (p *PlacesTree) Render(screen *Screen, startY, height int) {
	width := screen.GetWidth()
	p.renderHeader(screen, startY, width)

	rowsHeight := height - 1
	cursor := p.Cursor()
	p.scrollTo(cursor, rowsHeight)

	for i := 0; i < rowsHeight; i++ {
		y := startY + 1 + i
		row := p.offset + i
		if row >= p.view.RowCount() {
			screen.FillLine(0, y, screen.BackgroundStyle())
			continue
		}
		p.renderRow(screen, row, y, width, row == cursor)
	}

	p.fullRedraw = false
	clear(p.dirty)
}

func (p *PlacesTree) renderHeader(screen *Screen, y, width int) {
	style := screen.HeaderStyle()
	screen.FillLine(0, y, style)
	screen.DrawString(2, y, p.HeaderText(projection.ColumnTitle, "Title"), style)
	date := p.HeaderText(projection.ColumnDate, "Date")
	screen.DrawString(width-StringWidth(date)-1, y, date, style)
}

// scrollTo keeps cursor inside a viewport of height rows
func (p *PlacesTree) scrollTo(cursor, height int) {
	if height <= 0 {
		return
	}
	if cursor < p.offset {
		p.offset = cursor
	}
	if cursor >= p.offset+height {
		p.offset = cursor - height + 1
	}
	if maxOffset := p.view.RowCount() - height; p.offset > maxOffset {
		p.offset = max(maxOffset, 0)
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

func (p *PlacesTree) renderRow(screen *Screen, row, y, width int, selected bool) {
	base := screen.TreeNormalStyle()
	if selected {
		base = screen.TreeSelectedStyle()
	}
	screen.FillLine(0, y, base)

	// session gutter
	status, _ := p.view.SessionStatus(row)
	switch status {
	case projection.SessionStart:
		screen.SetCell(0, y, '┌', screen.SessionStartStyle())
	case projection.SessionContinue:
		screen.SetCell(0, y, '│', screen.SessionContinueStyle())
	}

	level, _ := p.view.Level(row)
	x := 2 + level*2

	date, _ := p.view.CellText(row, projection.ColumnDate)
	dateX := width
	if date != "" {
		dateX = width - StringWidth(date) - 1
		dateStyle := screen.TreeDateStyle()
		if selected {
			dateStyle = base
		}
		screen.DrawString(dateX, y, date, dateStyle)
	}

	if sep, _ := p.view.IsSeparator(row); sep {
		style := screen.TreeSeparatorStyle()
		for ; x < dateX-1; x++ {
			screen.SetCell(x, y, '─', style)
		}
		return
	}

	twisty := p.twisty(row)
	arrowStyle := screen.TreeLeafArrowStyle()
	switch twisty {
	case '▼':
		arrowStyle = screen.TreeExpandedArrowStyle()
	case '▶':
		arrowStyle = screen.TreeCollapsedArrowStyle()
	}
	if selected {
		arrowStyle = base
	}
	screen.SetCell(x, y, twisty, arrowStyle)
	x += 2

	title, _ := p.view.CellText(row, projection.ColumnTitle)
	screen.DrawStringLimited(x, y, title, dateX-x-1, p.titleStyle(screen, row, base, selected))
}

func (p *PlacesTree) titleStyle(screen *Screen, row int, base tcell.Style, selected bool) tcell.Style {
	if selected {
		return base
	}
	if p.matches != nil && p.matches(row) {
		return screen.TreeMatchStyle()
	}
	n, err := p.view.NodeAt(row)
	if err != nil {
		return base
	}
	switch n.Kind() {
	case model.KindFolder:
		return screen.TreeContainerStyle()
	case model.KindQuery:
		return screen.TreeQueryStyle()
	}
	return base
}
