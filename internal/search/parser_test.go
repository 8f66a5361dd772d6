package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/pstuifzand/placestree/internal/model"
)

func TestTokenizer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []TokenType
	}{
		{"golang", []TokenType{TokenText, TokenEOF}},
		{"golang docs", []TokenType{TokenText, TokenText, TokenEOF}},
		{"golang | rust", []TokenType{TokenText, TokenOr, TokenText, TokenEOF}},
		{"golang +rust", []TokenType{TokenText, TokenAnd, TokenText, TokenEOF}},
		{"-golang", []TokenType{TokenNot, TokenText, TokenEOF}},
		{"d:>2", []TokenType{TokenFilter, TokenEOF}},
		{"kind:visit host:go.dev", []TokenType{TokenFilter, TokenFilter, TokenEOF}},
		{"(a | b)", []TokenType{TokenLParen, TokenText, TokenOr, TokenText, TokenRParen, TokenEOF}},
		{`"multi word"`, []TokenType{TokenText, TokenEOF}},
		{"~gdv", []TokenType{TokenFilter, TokenEOF}},
		{"/go\\.dev/", []TokenType{TokenRegex, TokenEOF}},
		{"t:>-7d", []TokenType{TokenFilter, TokenEOF}},
		{"p:(kind:folder title)", []TokenType{TokenFilter, TokenEOF}},
		{"http://go.dev", []TokenType{TokenText, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := NewTokenizer(tt.input).AllTokens()
			if len(tokens) != len(tt.tokens) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.tokens), len(tokens), tokens)
			}
			for i, expectedType := range tt.tokens {
				if tokens[i].Type != expectedType {
					t.Errorf("token %d: expected %d, got %d", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestParser(t *testing.T) {
	tests := []struct {
		query       string
		shouldError bool
		exprType    string
	}{
		{query: "golang", exprType: "*search.TextExpr"},
		{query: "golang docs", exprType: "*search.AndExpr"},
		{query: "golang | rust", exprType: "*search.OrExpr"},
		{query: "-golang", exprType: "*search.NotExpr"},
		{query: "d:>2", exprType: "*search.DepthFilter"},
		{query: "v:>=3", exprType: "*search.VisitCountFilter"},
		{query: "kind:visit", exprType: "*search.KindFilter"},
		{query: "host:go.dev", exprType: "*search.HostFilter"},
		{query: "session:4", exprType: "*search.SessionFilter"},
		{query: "tag:work", exprType: "*search.TagFilter"},
		{query: "t:>=2024-01-01", exprType: "*search.DateFilter"},
		{query: "p:kind:folder", exprType: "*search.ParentFilter"},
		{query: "a:(Menu | Toolbar)", exprType: "*search.AncestorFilter"},
		{query: "~gdv", exprType: "*search.FuzzyExpr"},
		{query: "/^Go/", exprType: "*search.RegexExpr"},
		{query: "(golang | rust) d:>2", exprType: "*search.AndExpr"},
		{query: "", exprType: "*search.AlwaysMatchExpr"},
		{query: "(golang", shouldError: true},
		{query: "d:>", shouldError: true},
		{query: "d:deep", shouldError: true},
		{query: "kind:widget", shouldError: true},
		{query: "t:yesterday", shouldError: true},
		{query: "/[/", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)
			if tt.shouldError && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				return
			}
			if got := fmt.Sprintf("%T", expr); got != tt.exprType {
				t.Errorf("expected type %s, got %s (%s)", tt.exprType, got, expr)
			}
		})
	}
}

func nested(depth int) *model.Item {
	root := model.NewFolder("root", 1)
	cur := root
	for i := 0; i < depth; i++ {
		f := model.NewFolder(fmt.Sprintf("level %d", i), int64(i+2))
		cur.AddChild(f)
		cur = f
	}
	leaf := model.NewURI("http://docs.go.dev/ref", "Reference", 99)
	cur.AddChild(leaf)
	return leaf
}

func TestDepthFilter(t *testing.T) {
	tests := []struct {
		query   string
		depth   int
		matches bool
	}{
		{"d:0", 0, true},
		{"d:0", 1, false},
		{"d:>0", 0, false},
		{"d:>0", 1, true},
		{"d:>=1", 1, true},
		{"d:<2", 1, true},
		{"d:<2", 2, false},
		{"d:!=2", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if got := expr.Matches(nested(tt.depth)); got != tt.matches {
				t.Errorf("query %s with depth %d: expected %v, got %v", tt.query, tt.depth, tt.matches, got)
			}
		})
	}
}

func TestNodeFilters(t *testing.T) {
	visit := model.NewVisit("https://pkg.go.dev/fmt", "fmt package", time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC), 12)
	bookmark := model.NewItem(model.ItemData{
		Kind: model.KindURI, URI: "http://example.com/a", Title: "Example", ItemID: 5,
		AccessCount: 4, Tags: "work, reading",
		DateAdded: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	untitled := model.NewURI("http://example.org/path/file.html", "", 6)

	tests := []struct {
		query   string
		node    model.Node
		matches bool
	}{
		{"FMT", visit, true},
		{"pkg.go", visit, true},
		{"file.html", untitled, true},
		{`"fmt package"`, visit, true},
		{"~fmpk", visit, true},
		{"~zzz", visit, false},
		{"/^fmt/", visit, true},
		{"/^package/", visit, false},
		{"kind:visit", visit, true},
		{"kind:visit", bookmark, false},
		{"-kind:visit", bookmark, true},
		{"host:go.dev", visit, true},
		{"host:example.com", bookmark, true},
		{"host:example.com", untitled, false},
		{"session:12", visit, true},
		{"session:13", visit, false},
		{"v:>3", bookmark, true},
		{"v:>3", visit, false},
		{"tag:work", bookmark, true},
		{"tag:READING", bookmark, true},
		{"tag:wor", bookmark, false},
		{"t:2024-03-10", visit, true},
		{"t:<2024-03-10", visit, false},
		{"t:>=2024-03-01", visit, true},
		{"t:2024-03-10", bookmark, false},
		{"added:<2024-01-01", bookmark, true},
		{"added:>2024-01-01", bookmark, false},
		{"example | fmt", visit, true},
		{"example fmt", visit, false},
		{"kind:uri (tag:work | tag:play)", bookmark, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if got := expr.Matches(tt.node); got != tt.matches {
				t.Errorf("%s on %q: expected %v, got %v", expr, tt.node.Title(), tt.matches, got)
			}
		})
	}
}

func TestRelativeDates(t *testing.T) {
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	recent := model.NewVisit("http://a", "a", fixed.Add(-2*time.Hour), 1)
	old := model.NewVisit("http://b", "b", fixed.AddDate(0, 0, -10), 1)

	tests := []struct {
		query   string
		node    model.Node
		matches bool
	}{
		{"t:>-1d", recent, true},
		{"t:>-1d", old, false},
		{"t:>1w", old, false},
		{"t:>2w", old, true},
		{"t:<3h", recent, false},
		{"t:<1h", recent, true},
		{"t:<+1d", recent, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if got := expr.Matches(tt.node); got != tt.matches {
				t.Errorf("%s: expected %v, got %v", tt.query, tt.matches, got)
			}
		})
	}
}

func TestParentAndAncestorFilters(t *testing.T) {
	root := model.NewFolder("Bookmarks", 1)
	menu := model.NewFolder("Menu", 2)
	sub := model.NewFolder("Go", 3)
	leaf := model.NewURI("http://go.dev", "Go home", 4)
	sub.AddChild(leaf)
	menu.AddChild(sub)
	root.AddChild(menu)

	tests := []struct {
		query   string
		matches bool
	}{
		{"p:Go", true},
		{"p:Menu", false},
		{"a:Menu", true},
		{"a:(Menu kind:folder)", true},
		{"a:Toolbar", false},
		{"-a:Menu", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if got := expr.Matches(leaf); got != tt.matches {
				t.Errorf("%s: expected %v, got %v", expr, tt.matches, got)
			}
		})
	}
}
