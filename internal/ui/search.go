package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/placestree/internal/search"
)

// Search is the `/` search bar. It filters nothing: matching rows are
// highlighted and the cursor jumps between them.
type Search struct {
	active       bool
	input        lineInput
	expr         search.FilterExpr
	parseError   string
	matchIndices []int // matching rows, ascending
	matched      map[int]bool
	currentMatch int // index into matchIndices
}

// NewSearch creates a search bar with in-memory history
func NewSearch() *Search {
	return NewSearchWithHistory(NewHistory(50))
}

// NewSearchWithHistory creates a search bar recalling from h
func NewSearchWithHistory(h *History) *Search {
	return &Search{input: lineInput{history: h}}
}

// Start opens the search bar with an empty query
func (s *Search) Start() {
	s.active = true
	s.input.reset()
	s.expr = nil
	s.parseError = ""
	s.matchIndices = nil
	s.matched = nil
	s.currentMatch = 0
}

// Stop closes the search bar, keeping the last results
func (s *Search) Stop() {
	s.active = false
	s.input.history.Reset()
}

// IsActive returns whether the search bar has focus
func (s *Search) IsActive() bool {
	return s.active
}

// Query returns the current query text
func (s *Search) Query() string {
	return s.input.text
}

// HandleKey edits the query and re-runs it against rows. done is true when
// the bar closed; Escape also drops the results.
func (s *Search) HandleKey(ev *tcell.EventKey, rows search.Rows) (done bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Stop()
		s.Clear()
		return true
	case tcell.KeyEnter:
		s.input.history.Add(s.input.text)
		s.Stop()
		return true
	}
	if s.input.handleKey(ev) {
		s.Update(rows)
	}
	return false
}

// SetQuery replaces the query and re-runs it
func (s *Search) SetQuery(query string, rows search.Rows) {
	s.input.set(query)
	s.Update(rows)
}

// Update re-runs the query, for example after the rows changed
func (s *Search) Update(rows search.Rows) {
	s.matchIndices = nil
	s.matched = nil
	s.parseError = ""
	if s.input.text == "" {
		s.expr = nil
		return
	}
	expr, err := search.ParseQuery(s.input.text)
	if err != nil {
		s.expr = nil
		s.parseError = err.Error()
		return
	}
	s.expr = expr
	s.setMatches(search.MatchingRows(rows, expr))
}

// Refresh matches the current query against rows again, keeping it as is.
// Without a query it does nothing.
func (s *Search) Refresh(rows search.Rows) {
	if s.expr == nil {
		return
	}
	s.setMatches(search.MatchingRows(rows, s.expr))
}

func (s *Search) setMatches(rows []int) {
	s.matchIndices = rows
	s.matched = make(map[int]bool, len(rows))
	for _, row := range rows {
		s.matched[row] = true
	}
	if s.currentMatch >= len(rows) {
		s.currentMatch = 0
	}
}

// Clear drops the query results
func (s *Search) Clear() {
	s.expr = nil
	s.matchIndices = nil
	s.matched = nil
	s.currentMatch = 0
}

// IsMatch reports whether row matches the current query
func (s *Search) IsMatch(row int) bool {
	return s.matched[row]
}

// MatchCount returns the number of matching rows
func (s *Search) MatchCount() int {
	return len(s.matchIndices)
}

// NextMatch returns the first matching row after from, wrapping around, or
// -1 when there is no query or nothing matches
func (s *Search) NextMatch(rows search.Rows, from int) int {
	if s.expr == nil {
		return -1
	}
	row := search.NextMatch(rows, s.expr, from)
	s.track(row)
	return row
}

// PrevMatch returns the last matching row before from, wrapping around
func (s *Search) PrevMatch(from int) int {
	if len(s.matchIndices) == 0 {
		return -1
	}
	row := s.matchIndices[len(s.matchIndices)-1]
	for i := len(s.matchIndices) - 1; i >= 0; i-- {
		if s.matchIndices[i] < from {
			row = s.matchIndices[i]
			break
		}
	}
	s.track(row)
	return row
}

func (s *Search) track(row int) {
	for i, m := range s.matchIndices {
		if m == row {
			s.currentMatch = i
			return
		}
	}
}

// Render renders the search bar
func (s *Search) Render(screen *Screen, y int) {
	if !s.active {
		return
	}
	x := s.input.render(screen, y, "Search: ", screen.SearchLabelStyle(), screen.SearchTextStyle(), screen.SearchCursorStyle())

	var info string
	switch {
	case s.parseError != "":
		info = fmt.Sprintf(" (error: %s)", s.parseError)
	case s.input.text == "":
	case len(s.matchIndices) == 0:
		info = " (no matches)"
	default:
		info = fmt.Sprintf(" (%d of %d matches)", s.currentMatch+1, len(s.matchIndices))
	}
	screen.DrawString(x, y, info, screen.SearchResultCountStyle())
}
