package projection

import "github.com/pstuifzand/placestree/internal/model"

// CanCollapse decides whether two adjacent sibling rows are duplicate
// visits of the same page. When they are, showFirst tells which one stays:
// a when it is the earlier visit, b otherwise.
func CanCollapse(a, b model.Node, enabled bool) (collapsible, showFirst bool) {
	if !enabled || a == nil || b == nil {
		return false, false
	}
	if a.Kind() != model.KindVisit || b.Kind() != model.KindVisit {
		return false, false
	}
	if a.URI() != b.URI() {
		return false, false
	}
	return true, a.Time().Before(b.Time())
}
