package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brandpulse/pkg/contracts/domain"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "title cases", raw: "instant noodles", want: "Instant Noodles"},
		{name: "trims", raw: "  snacks ", want: "Snacks"},
		{name: "already canonical", raw: "Snacks", want: "Snacks"},
		{name: "nan token", raw: "nan", want: ""},
		{name: "NaN token", raw: "NaN", want: ""},
		{name: "none token", raw: "None", want: ""},
		{name: "empty", raw: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.raw))
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "percent suffix", raw: "45%", want: 45},
		{name: "plain number", raw: "12.5", want: 12.5},
		{name: "spaced suffix", raw: " 12 % ", want: 12},
		{name: "empty defaults to zero", raw: "", want: 0},
		{name: "unparseable defaults to zero", raw: "N/A", want: 0},
		{name: "nan text defaults to zero", raw: "NaN", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePercent(tt.raw))
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		ordinal int
		label   string
		ok      bool
	}{
		{name: "full month with year", raw: "April-2024", ordinal: 4, label: "Apr", ok: true},
		{name: "bare abbreviation", raw: "Sep", ordinal: 9, label: "Sep", ok: true},
		{name: "embedded", raw: "01-Jun-24", ordinal: 6, label: "Jun", ok: true},
		{name: "uppercase", raw: "AUGUST", ordinal: 8, label: "Aug", ok: true},
		{name: "no month", raw: "xyz", ok: false},
		{name: "empty", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ParseMonth(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, domain.Month{Ordinal: tt.ordinal, Label: tt.label}, m)
			}
		})
	}
}

func TestParseMonthFirstMatchWins(t *testing.T) {
	// Search order is jan through dec, so text naming two months resolves
	// to the earlier one.
	m, ok := ParseMonth("jan/dec split")
	assert.True(t, ok)
	assert.Equal(t, 1, m.Ordinal)
}

func TestObservationWindow(t *testing.T) {
	assert.False(t, ObservationWindow.Contains(3))
	assert.True(t, ObservationWindow.Contains(4))
	assert.True(t, ObservationWindow.Contains(9))
	assert.False(t, ObservationWindow.Contains(10))
}

func TestIsAggregateSentinel(t *testing.T) {
	assert.True(t, isAggregateSentinel("all"))
	assert.True(t, isAggregateSentinel("ALL"))
	assert.True(t, isAggregateSentinel(" All "))
	assert.False(t, isAggregateSentinel("all brands"))
	assert.False(t, isAggregateSentinel("small"))
}
