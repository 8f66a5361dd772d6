// Package search filters the rows of a tree view with a small query
// language: words, "quoted phrases", ~fuzzy terms, /regexes/ and
// name:criteria filters combined with implicit AND, | and -.
package search

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/projection"
)

// FilterExpr represents a filter expression that can match nodes
type FilterExpr interface {
	Matches(n model.Node) bool
	String() string // For debug output
}

// now is replaced in tests
var now = time.Now

// TextExpr matches nodes whose title or URI contains the term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(n model.Node) bool {
	return strings.Contains(strings.ToLower(projection.BestTitle(n)), e.term) ||
		strings.Contains(strings.ToLower(n.URI()), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches nodes whose title fuzzy-matches the term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(n model.Node) bool {
	return fuzzy.MatchFold(e.term, projection.BestTitle(n))
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches nodes whose title or URI matches a regular expression
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(n model.Node) bool {
	return e.re.MatchString(n.Title()) || e.re.MatchString(n.URI())
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AlwaysMatchExpr matches all nodes (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(model.Node) bool { return true }
func (e *AlwaysMatchExpr) String() string { return "always-match" }

type AndExpr struct {
	left, right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(n model.Node) bool {
	return e.left.Matches(n) && e.right.Matches(n)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("and(%s, %s)", e.left, e.right)
}

type OrExpr struct {
	left, right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(n model.Node) bool {
	return e.left.Matches(n) || e.right.Matches(n)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("or(%s, %s)", e.left, e.right)
}

type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(n model.Node) bool {
	return !e.expr.Matches(n)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("not(%s)", e.expr)
}

// DepthFilter matches on nesting depth; children of the root are depth 0
type DepthFilter struct {
	op    ComparisonOp
	depth int
}

func NewDepthFilter(op ComparisonOp, value string) (*DepthFilter, error) {
	depth, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid depth %q: %w", value, err)
	}
	return &DepthFilter{op: op, depth: depth}, nil
}

func (e *DepthFilter) Matches(n model.Node) bool {
	return compare(n.IndentLevel(), e.op, e.depth)
}

func (e *DepthFilter) String() string {
	return fmt.Sprintf("depth%s%d", e.op, e.depth)
}

// VisitCountFilter matches on the visit count of nodes that carry one
type VisitCountFilter struct {
	op    ComparisonOp
	count int
}

func NewVisitCountFilter(op ComparisonOp, value string) (*VisitCountFilter, error) {
	count, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid visit count %q: %w", value, err)
	}
	return &VisitCountFilter{op: op, count: count}, nil
}

func (e *VisitCountFilter) Matches(n model.Node) bool {
	d, ok := n.(model.Details)
	if !ok {
		return false
	}
	return compare(d.AccessCount(), e.op, e.count)
}

func (e *VisitCountFilter) String() string {
	return fmt.Sprintf("visits%s%d", e.op, e.count)
}

// DateFilter compares the visit time ("t") or the date added ("added").
// Absolute dates compare by day; relative ones like -7d or 2h by instant.
type DateFilter struct {
	field    string
	op       ComparisonOp
	value    string
	date     time.Time
	relative bool
}

func NewDateFilter(field string, op ComparisonOp, value string) (*DateFilter, error) {
	if !isValidDateValue(value) {
		return nil, fmt.Errorf("invalid date value: %s", value)
	}
	date, relative := parseDate(value)
	return &DateFilter{field: field, op: op, value: value, date: date, relative: relative}, nil
}

func (e *DateFilter) Matches(n model.Node) bool {
	var at time.Time
	switch e.field {
	case "added":
		d, ok := n.(model.Details)
		if !ok {
			return false
		}
		at = d.DateAdded()
	default:
		at = n.Time()
	}
	if at.IsZero() {
		return false
	}
	if e.relative {
		return compare(at.Compare(e.date), e.op, 0)
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return compare(day.Compare(e.date), e.op, 0)
}

func (e *DateFilter) String() string {
	return fmt.Sprintf("%s%s%s", e.field, e.op, e.value)
}

// KindFilter matches nodes of one kind
type KindFilter struct {
	kind model.Kind
}

func NewKindFilter(name string) (*KindFilter, error) {
	kind, ok := model.ParseKind(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", name)
	}
	return &KindFilter{kind: kind}, nil
}

func (e *KindFilter) Matches(n model.Node) bool {
	return n.Kind() == e.kind
}

func (e *KindFilter) String() string {
	return fmt.Sprintf("kind=%s", e.kind)
}

// HostFilter matches pages on a host or any of its subdomains
type HostFilter struct {
	host string
}

func NewHostFilter(host string) *HostFilter {
	return &HostFilter{host: strings.ToLower(host)}
}

func (e *HostFilter) Matches(n model.Node) bool {
	if n.URI() == "" {
		return false
	}
	u, err := url.Parse(n.URI())
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == e.host || strings.HasSuffix(host, "."+e.host)
}

func (e *HostFilter) String() string {
	return fmt.Sprintf("host=%s", e.host)
}

// SessionFilter matches visits of one browsing session
type SessionFilter struct {
	session int64
}

func NewSessionFilter(value string) (*SessionFilter, error) {
	session, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid session %q: %w", value, err)
	}
	return &SessionFilter{session: session}, nil
}

func (e *SessionFilter) Matches(n model.Node) bool {
	return n.SessionID() == e.session
}

func (e *SessionFilter) String() string {
	return fmt.Sprintf("session=%d", e.session)
}

// TagFilter matches bookmarks carrying a tag
type TagFilter struct {
	tag string
}

func NewTagFilter(tag string) *TagFilter {
	return &TagFilter{tag: strings.ToLower(tag)}
}

func (e *TagFilter) Matches(n model.Node) bool {
	d, ok := n.(model.Details)
	if !ok {
		return false
	}
	for _, tag := range strings.Split(d.Tags(), ",") {
		if strings.ToLower(strings.TrimSpace(tag)) == e.tag {
			return true
		}
	}
	return false
}

func (e *TagFilter) String() string {
	return fmt.Sprintf("tag=%s", e.tag)
}

// ParentFilter matches nodes whose parent matches the inner expression
type ParentFilter struct {
	inner FilterExpr
}

func NewParentFilter(inner FilterExpr) *ParentFilter {
	return &ParentFilter{inner: inner}
}

func (e *ParentFilter) Matches(n model.Node) bool {
	p := n.Parent()
	return p != nil && e.inner.Matches(p)
}

func (e *ParentFilter) String() string {
	return fmt.Sprintf("parent(%s)", e.inner)
}

// AncestorFilter matches nodes with any ancestor matching the inner expression
type AncestorFilter struct {
	inner FilterExpr
}

func NewAncestorFilter(inner FilterExpr) *AncestorFilter {
	return &AncestorFilter{inner: inner}
}

func (e *AncestorFilter) Matches(n model.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if e.inner.Matches(p) {
			return true
		}
	}
	return false
}

func (e *AncestorFilter) String() string {
	return fmt.Sprintf("ancestor(%s)", e.inner)
}

// compare performs a comparison between two integers based on the operator
func compare(a int, op ComparisonOp, b int) bool {
	switch op {
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	default:
		return false
	}
}

// isValidDateValue checks if a date value is in a valid format
func isValidDateValue(value string) bool {
	if len(value) < 2 {
		return false
	}
	if _, _, ok := relativeAmount(value); ok {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// relativeAmount splits values like -7d, +2w or 3h (meaning ago) into a
// signed amount and a unit
func relativeAmount(value string) (int, byte, bool) {
	sgn := -1
	body := value
	switch value[0] {
	case '-':
		body = value[1:]
	case '+':
		sgn = 1
		body = value[1:]
	}
	if len(body) < 2 {
		return 0, 0, false
	}
	unit := body[len(body)-1]
	if !strings.ContainsRune("hdwmy", rune(unit)) {
		return 0, 0, false
	}
	amount, err := strconv.Atoi(body[:len(body)-1])
	if err != nil {
		return 0, 0, false
	}
	return sgn * amount, unit, true
}

// parseDate parses a date value (relative or absolute) into a time.Time
func parseDate(value string) (time.Time, bool) {
	if amount, unit, ok := relativeAmount(value); ok {
		t := now()
		switch unit {
		case 'h':
			return t.Add(time.Duration(amount) * time.Hour), true
		case 'd':
			return t.AddDate(0, 0, amount), true
		case 'w':
			return t.AddDate(0, 0, amount*7), true
		case 'm':
			return t.AddDate(0, amount, 0), true
		case 'y':
			return t.AddDate(amount, 0, 0), true
		}
	}
	t, _ := time.Parse("2006-01-02", value)
	return t, false
}
