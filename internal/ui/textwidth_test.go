package ui

import (
	"testing"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected int
	}{
		{"ASCII letter", 'A', 1},
		{"ASCII space", ' ', 1},
		{"Emoji", '😀', 2},
		{"Chinese character", '中', 2},
		{"Combining acute", '\u0301', 0},
		{"Tab", '\t', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RuneWidth(tt.r); got != tt.expected {
				t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Hello", 10, "Hello"},
		{"exact", "Hello", 5, "Hello"},
		{"cut", "Hello World", 5, "Hello"},
		{"zero", "Hello", 0, ""},
		{"wide character not split", "中国人", 3, "中"},
		{"emoji", "😀😀", 3, "😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToWidth(tt.input, tt.width); got != tt.expected {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Go", 5, "Go"},
		{"cut", "example.com/page", 8, "example…"},
		{"one column", "example", 1, "e"},
		{"wide", "中国人", 4, "中…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWithEllipsis(tt.input, tt.width); got != tt.expected {
				t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestPadToWidth(t *testing.T) {
	if got := PadToWidth("ab", 4); got != "ab  " {
		t.Errorf("PadToWidth = %q", got)
	}
	if got := PadToWidth("中", 3); got != "中 " {
		t.Errorf("PadToWidth wide = %q", got)
	}
	if got := PadToWidth("abcdef", 3); got != "abcdef" {
		t.Errorf("PadToWidth wider = %q", got)
	}
}
