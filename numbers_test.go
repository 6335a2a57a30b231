package insider

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseShareCount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"12500", 12500},
		{"1,874,978", 1874978},
		{" 2,500 ", 2500},
		{"250,000 shares", 250000},
		{"shares: 88,200", 88200},
		{"1,500 (1)", 1500},
		{"-0-", 0},
		{"-0- (3)", 0},
		{"", 0},
		{"N/A", 0},
		{"none reported", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseShareCount(tt.input); got != tt.want {
				t.Errorf("parseShareCount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$42.75", "42.75"},
		{"42.75", "42.75"},
		{"$1,234,567.89", "1234567.89"},
		{"USD 19.99", "19.99"},
		{"price: $8.40 per share", "8.4"},
		{"$ 42.75", "42.75"},
		{"(2,000)", "-2000"},
		{"($1,500.25)", "-1500.25"},
		{"-0-", "0"},
		{"", "0"},
		{"N/A", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseMoney(tt.input)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("parseMoney(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestIsNumericCell(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2,500", true},
		{"$42.75", true},
		{"$ 1,234.50", true},
		{"3.5%", true},
		{" 88,200 ", true},
		{"14 KB", false},
		{"2025-05-12", false},
		{"Form 4", false},
		{"1 234", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isNumericCell(tt.input); got != tt.want {
				t.Errorf("isNumericCell(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsIntegerForm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2,500", true},
		{" 12500 ", true},
		{"42.75", false},
		{"$500", false},
		{"3%", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isIntegerForm(tt.input); got != tt.want {
				t.Errorf("isIntegerForm(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
