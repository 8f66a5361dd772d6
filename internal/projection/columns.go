package projection

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/pstuifzand/placestree/internal/model"
)

// ColumnType identifies a tree column
type ColumnType int

const (
	ColumnUnknown ColumnType = iota
	ColumnTitle
	ColumnURI
	ColumnDate
	ColumnVisitCount
	ColumnKeyword
	ColumnDescription
	ColumnDateAdded
	ColumnLastModified
	ColumnTags
)

// DescriptionAnnotation is the sorting annotation used by the description column
const DescriptionAnnotation = "bookmarkProperties/description"

var columnIDs = map[string]ColumnType{
	"title":        ColumnTitle,
	"url":          ColumnURI,
	"date":         ColumnDate,
	"visitCount":   ColumnVisitCount,
	"keyword":      ColumnKeyword,
	"description":  ColumnDescription,
	"dateAdded":    ColumnDateAdded,
	"lastModified": ColumnLastModified,
	"tags":         ColumnTags,
}

// ColumnTypeFromID maps a column id such as "title" or "visitCount" to its type
func ColumnTypeFromID(id string) ColumnType {
	if c, ok := columnIDs[id]; ok {
		return c
	}
	return ColumnUnknown
}

func (c ColumnType) String() string {
	for id, t := range columnIDs {
		if t == c {
			return id
		}
	}
	return "unknown"
}

// SortColumn returns the column that shows the sort indicator for mode
func SortColumn(mode model.SortingMode, annotation string) (ColumnType, bool) {
	desc := mode.Descending()
	switch mode {
	case model.SortTitleAscending, model.SortTitleDescending:
		return ColumnTitle, desc
	case model.SortDateAscending, model.SortDateDescending:
		return ColumnDate, desc
	case model.SortURIAscending, model.SortURIDescending:
		return ColumnURI, desc
	case model.SortVisitCountAscending, model.SortVisitCountDescending:
		return ColumnVisitCount, desc
	case model.SortKeywordAscending, model.SortKeywordDescending:
		return ColumnKeyword, desc
	case model.SortAnnotationAscending, model.SortAnnotationDescending:
		if annotation == DescriptionAnnotation {
			return ColumnDescription, desc
		}
	case model.SortDateAddedAscending, model.SortDateAddedDescending:
		return ColumnDateAdded, desc
	case model.SortLastModifiedAscending, model.SortLastModifiedDescending:
		return ColumnLastModified, desc
	case model.SortTagsAscending, model.SortTagsDescending:
		return ColumnTags, desc
	}
	return ColumnUnknown, false
}

// nextSort computes the sorting that clicking column's header selects
// when the result is currently sorted by old. Without triState the cycle
// never returns to unsorted.
func nextSort(column ColumnType, old model.SortingMode, oldAnnotation string, triState bool) (model.SortingMode, string, error) {
	cycle := func(asc, desc model.SortingMode) model.SortingMode {
		switch {
		case old == asc:
			return desc
		case triState && old == desc:
			return model.SortNone
		}
		return asc
	}
	switch column {
	case ColumnTitle:
		return cycle(model.SortTitleAscending, model.SortTitleDescending), "", nil
	case ColumnURI:
		return cycle(model.SortURIAscending, model.SortURIDescending), "", nil
	case ColumnDate:
		return cycle(model.SortDateAscending, model.SortDateDescending), "", nil
	case ColumnVisitCount:
		// most visited first
		switch {
		case old == model.SortVisitCountDescending:
			return model.SortVisitCountAscending, "", nil
		case triState && old == model.SortVisitCountAscending:
			return model.SortNone, "", nil
		}
		return model.SortVisitCountDescending, "", nil
	case ColumnKeyword:
		return cycle(model.SortKeywordAscending, model.SortKeywordDescending), "", nil
	case ColumnDescription:
		if oldAnnotation != DescriptionAnnotation {
			old = model.SortNone
		}
		mode := cycle(model.SortAnnotationAscending, model.SortAnnotationDescending)
		if mode == model.SortNone {
			return mode, "", nil
		}
		return mode, DescriptionAnnotation, nil
	case ColumnDateAdded:
		return cycle(model.SortDateAddedAscending, model.SortDateAddedDescending), "", nil
	case ColumnLastModified:
		return cycle(model.SortLastModifiedAscending, model.SortLastModifiedDescending), "", nil
	case ColumnTags:
		return cycle(model.SortTagsAscending, model.SortTagsDescending), "", nil
	}
	return model.SortNone, "", fmt.Errorf("cycle column %d: %w", column, ErrUnknownColumn)
}

const (
	todayFormat = "%H:%M"
	dateFormat  = "%Y-%m-%d %H:%M"
)

// timeFormatter renders the date columns. Times from the current day show
// only the clock time.
type timeFormatter struct {
	now func() time.Time
}

func (f timeFormatter) format(t time.Time) string {
	now := f.now()
	t = t.In(now.Location())
	ago := now.Sub(t)
	if ago > -10*time.Second && ago < 24*time.Hour {
		y1, m1, d1 := t.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return strftime.Format(todayFormat, t)
		}
	}
	return strftime.Format(dateFormat, t)
}
