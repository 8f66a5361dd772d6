package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/projection"
)

// Rows is the part of a tree view searched by FindRows
type Rows interface {
	RowCount() int
	NodeAt(row int) (model.Node, error)
}

// FindRows returns the visible rows matching query, in row order
func FindRows(rows Rows, query string) ([]int, error) {
	expr, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return MatchingRows(rows, expr), nil
}

// MatchingRows returns the visible rows matching expr, in row order
func MatchingRows(rows Rows, expr FilterExpr) []int {
	var matches []int
	for row := 0; row < rows.RowCount(); row++ {
		n, err := rows.NodeAt(row)
		if err != nil {
			break
		}
		if expr.Matches(n) {
			matches = append(matches, row)
		}
	}
	return matches
}

// RankRows fuzzy-matches term against the row titles and returns the
// matching rows, closest first. Equal distances keep row order.
func RankRows(rows Rows, term string) []int {
	titles := make([]string, rows.RowCount())
	for row := range titles {
		if n, err := rows.NodeAt(row); err == nil {
			titles[row] = projection.BestTitle(n)
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(term, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r.OriginalIndex
	}
	return out
}

// NextMatch returns the first matching row after from, wrapping around, or
// -1 when nothing matches
func NextMatch(rows Rows, expr FilterExpr, from int) int {
	count := rows.RowCount()
	for i := 1; i <= count; i++ {
		row := (from + i) % count
		if row < 0 {
			row += count
		}
		n, err := rows.NodeAt(row)
		if err == nil && expr.Matches(n) {
			return row
		}
	}
	return -1
}
