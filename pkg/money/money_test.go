package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.998", "4"},
		{"3.598", "3.6"},
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"0", "0"},
		{"39.58", "39.58"},
	}

	for _, tt := range tests {
		in := decimal.RequireFromString(tt.in)
		assert.True(t, Round(in).Equal(decimal.RequireFromString(tt.want)),
			"Round(%s) = %s, want %s", tt.in, Round(in), tt.want)
	}
}

func TestPercent(t *testing.T) {
	base := decimal.RequireFromString("39.98")
	pct := decimal.NewFromInt(10)

	got := Percent(base, pct)
	assert.True(t, got.Equal(decimal.RequireFromString("4")), "got %s", got)
}

func TestParsePercentClamps(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"10", "10"},
		{" 12.5 ", "12.5"},
		{"15%", "15"},
		{"", "0"},
		{"abc", "0"},
		{"-3", "0"},
		{"250", "100"},
	}

	for _, tt := range tests {
		got := ParsePercent(tt.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"ParsePercent(%q) = %s, want %s", tt.raw, got, tt.want)
	}
}
