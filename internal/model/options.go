package model

import "strings"

// SortingMode is the ordering a result applies to every container
type SortingMode int

const (
	SortNone SortingMode = iota
	SortTitleAscending
	SortTitleDescending
	SortDateAscending
	SortDateDescending
	SortURIAscending
	SortURIDescending
	SortVisitCountAscending
	SortVisitCountDescending
	SortKeywordAscending
	SortKeywordDescending
	SortAnnotationAscending
	SortAnnotationDescending
	SortDateAddedAscending
	SortDateAddedDescending
	SortLastModifiedAscending
	SortLastModifiedDescending
	SortTagsAscending
	SortTagsDescending
)

var sortingNames = []string{
	"none",
	"title-asc", "title-desc",
	"date-asc", "date-desc",
	"uri-asc", "uri-desc",
	"visitcount-asc", "visitcount-desc",
	"keyword-asc", "keyword-desc",
	"annotation-asc", "annotation-desc",
	"dateadded-asc", "dateadded-desc",
	"lastmodified-asc", "lastmodified-desc",
	"tags-asc", "tags-desc",
}

func (m SortingMode) String() string {
	if m < 0 || int(m) >= len(sortingNames) {
		return "none"
	}
	return sortingNames[m]
}

// ParseSortingMode accepts the names produced by String; unknown names map to SortNone
func ParseSortingMode(name string) SortingMode {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range sortingNames {
		if n == name {
			return SortingMode(i)
		}
	}
	return SortNone
}

// Descending reports whether the mode sorts in descending order
func (m SortingMode) Descending() bool {
	return m != SortNone && m%2 == 0
}

// ResultType selects what a history query returns
type ResultType int

const (
	ResultsAsURI ResultType = iota
	ResultsAsVisit
	ResultsAsFullVisit
)

// GroupingMode is one level of result grouping
type GroupingMode int

const (
	GroupByDay GroupingMode = iota
	GroupByHost
	GroupByDomain
	GroupByFolder
)

// QueryOptions are the options of a result's root query
type QueryOptions struct {
	ResultType    ResultType     `json:"result_type" yaml:"result_type"`
	ShowSessions  bool           `json:"show_sessions" yaml:"show_sessions"`
	Grouping      []GroupingMode `json:"grouping,omitempty" yaml:"grouping,omitempty"`
	ExpandQueries bool           `json:"expand_queries" yaml:"expand_queries"`
}

// ResultsAreVisits reports whether the result type yields visit nodes
func (o QueryOptions) ResultsAreVisits() bool {
	return o.ResultType == ResultsAsVisit || o.ResultType == ResultsAsFullVisit
}

// GroupedByDayOnly reports whether every grouping level is by day. An
// ungrouped query counts as day-grouped.
func (o QueryOptions) GroupedByDayOnly() bool {
	for _, g := range o.Grouping {
		if g != GroupByDay {
			return false
		}
	}
	return true
}
