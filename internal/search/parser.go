package search

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFilter
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, pos: 0}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	ch := t.input[t.pos]

	switch ch {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '+':
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return t.readQuotedText()
	case '~':
		return t.readFuzzyFilter()
	case '/':
		return t.readRegex()
	default:
		if isAlpha(ch) && t.hasFilterColon() {
			return t.readFilter()
		}
		return t.readText()
	}
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && (t.input[t.pos] == ' ' || t.input[t.pos] == '\t' || t.input[t.pos] == '\n') {
		t.pos++
	}
}

// hasFilterColon reports whether the identifier at the current position is
// followed by a colon, as in "kind:visit"
func (t *Tokenizer) hasFilterColon() bool {
	end := t.pos
	for end < len(t.input) && isAlphaNumeric(t.input[end]) {
		end++
	}
	return end < len(t.input) && t.input[end] == ':' && isFilterName(t.input[t.pos:end])
}

func (t *Tokenizer) readQuotedText() Token {
	t.pos++ // Skip opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++ // Skip closing quote
	}
	return Token{Type: TokenText, Value: value}
}

func (t *Tokenizer) readFilter() Token {
	start := t.pos
	for t.pos < len(t.input) && isAlphaNumeric(t.input[t.pos]) {
		t.pos++
	}
	t.pos++ // Skip colon
	t.readFilterCriteria()
	return Token{Type: TokenFilter, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) readFilterCriteria() string {
	start := t.pos
	if t.pos < len(t.input) && (t.input[t.pos] == '>' || t.input[t.pos] == '<' || t.input[t.pos] == '!' || t.input[t.pos] == '=') {
		t.pos++
		if t.pos < len(t.input) && t.input[t.pos] == '=' {
			t.pos++
		}
	}
	// A parenthesized criteria holds a nested query, as in p:(kind:folder)
	if t.pos < len(t.input) && t.input[t.pos] == '(' {
		depth := 0
		for t.pos < len(t.input) {
			switch t.input[t.pos] {
			case '(':
				depth++
			case ')':
				depth--
			}
			t.pos++
			if depth == 0 {
				break
			}
		}
		return t.input[start:t.pos]
	}
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == ')' {
			break
		}
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == '+' || ch == ')' || ch == '(' {
			break
		}
		t.pos++
	}
	return Token{Type: TokenText, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) readFuzzyFilter() Token {
	t.pos++ // Skip ~
	start := t.pos
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if ch == ' ' || ch == '\t' || ch == '|' || ch == '+' || ch == ')' || ch == '(' {
			break
		}
		t.pos++
	}
	term := t.input[start:t.pos]
	if term == "" {
		return Token{Type: TokenText, Value: "~"}
	}
	return Token{Type: TokenFilter, Value: "~" + term}
}

func (t *Tokenizer) readRegex() Token {
	startPos := t.pos
	t.pos++ // Skip opening /
	start := t.pos
	escaped := false

	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		if escaped {
			escaped = false
			t.pos++
			continue
		}
		if ch == '\\' {
			escaped = true
			t.pos++
			continue
		}
		if ch == '/' {
			pattern := t.input[start:t.pos]
			t.pos++ // Skip closing /
			return Token{Type: TokenRegex, Value: pattern}
		}
		t.pos++
	}

	pattern := t.input[start:t.pos]
	if pattern == "" {
		t.pos = startPos
		t.pos++
		return Token{Type: TokenText, Value: "/"}
	}
	return Token{Type: TokenRegex, Value: pattern}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || (ch >= '0' && ch <= '9')
}

func isFilterName(name string) bool {
	switch name {
	case "d", "kind", "host", "session", "v", "t", "added", "tag", "p", "a":
		return true
	}
	return false
}

// Parser converts tokens into a FilterExpr tree
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser for the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// ParseQuery parses a complete search query and returns the root expression.
// An empty query matches everything.
func ParseQuery(query string) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()
	if len(tokens) == 1 && tokens[0].Type == TokenEOF {
		return NewAlwaysMatchExpr(), nil
	}

	parser := NewParser(tokens)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}
	if parser.currentToken().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", parser.currentToken().Value)
	}
	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Operator precedence: OR < AND < NOT < Atoms

func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.currentToken().Type == TokenOr {
		p.advance() // consume |
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.currentToken().Type
		if tok == TokenAnd {
			p.advance() // consume +
			tok = p.currentToken().Type
		}
		// Implicit AND: keep going while there is another operand
		if tok == TokenEOF || tok == TokenRParen || tok == TokenOr {
			break
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()
		expr, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return NewNotExpr(expr), nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	switch p.currentToken().Type {
	case TokenLParen:
		p.advance() // consume (
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.currentToken().Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %q", p.currentToken().Value)
		}
		p.advance() // consume )
		return expr, nil

	case TokenText:
		value := p.currentToken().Value
		p.advance()
		return NewTextExpr(value), nil

	case TokenFilter:
		value := p.currentToken().Value
		p.advance()
		return parseFilterValue(value)

	case TokenRegex:
		pattern := p.currentToken().Value
		p.advance()
		return NewRegexExpr(pattern)

	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")

	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken().Value)
	}
}

// parseFilterValue converts a filter token value into the appropriate FilterExpr
func parseFilterValue(value string) (FilterExpr, error) {
	if strings.HasPrefix(value, "~") {
		return NewFuzzyExpr(value[1:]), nil
	}

	name, criteria, _ := strings.Cut(value, ":")
	switch name {
	case "d":
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		return NewDepthFilter(op, val)
	case "v":
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		return NewVisitCountFilter(op, val)
	case "t", "added":
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, err
		}
		return NewDateFilter(name, op, val)
	case "kind":
		return NewKindFilter(criteria)
	case "host":
		return NewHostFilter(criteria), nil
	case "session":
		return NewSessionFilter(criteria)
	case "tag":
		return NewTagFilter(criteria), nil
	case "p", "a":
		inner, err := ParseQuery(unwrap(criteria))
		if err != nil {
			return nil, err
		}
		if name == "p" {
			return NewParentFilter(inner), nil
		}
		return NewAncestorFilter(inner), nil
	}
	return NewTextExpr(value), nil
}

func unwrap(criteria string) string {
	if strings.HasPrefix(criteria, "(") && strings.HasSuffix(criteria, ")") {
		return criteria[1 : len(criteria)-1]
	}
	return criteria
}

// parseComparison extracts the comparison operator and value from criteria
// Examples: "5" -> ("=", "5"), ">2" -> (">", "2"), ">=2025-11-01" -> (">=", "2025-11-01")
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}
	ops := []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}
	for _, op := range ops {
		if strings.HasPrefix(criteria, string(op)) {
			val := criteria[len(op):]
			if val == "" {
				return "", "", fmt.Errorf("missing value after operator %s", op)
			}
			return op, val, nil
		}
	}
	return OpEqual, criteria, nil
}
