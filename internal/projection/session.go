package projection

import "github.com/pstuifzand/placestree/internal/model"

// SessionStatus marks where a row sits in a browsing session
type SessionStatus int

const (
	SessionNone SessionStatus = iota
	SessionStart
	SessionContinue
)

func (s SessionStatus) String() string {
	switch s {
	case SessionStart:
		return "start"
	case SessionContinue:
		return "continue"
	}
	return "none"
}

// ClassifySession returns the session status of row. Rows that are not
// visits, visits without a session and every row when sessions are not
// shown get SessionNone.
func ClassifySession(rows *RowStore, row int, showSessions bool) SessionStatus {
	node := rows.at(row)
	if !showSessions || node == nil {
		return SessionNone
	}
	if node.Kind() != model.KindVisit || node.SessionID() == 0 {
		return SessionNone
	}
	if row == 0 {
		return SessionStart
	}
	prev := rows.at(row - 1)
	if prev.Kind() != model.KindVisit || prev.SessionID() != node.SessionID() {
		return SessionStart
	}
	return SessionContinue
}

// showSessionsFor reports whether a result with these options and this
// sorting shows session boundaries: visits sorted by date with nothing but
// day grouping.
func showSessionsFor(options model.QueryOptions, sorting model.SortingMode) bool {
	if !options.ShowSessions || !options.ResultsAreVisits() {
		return false
	}
	if sorting != model.SortDateAscending && sorting != model.SortDateDescending {
		return false
	}
	return options.GroupedByDayOnly()
}
