package dataprocessing

import (
	"strings"

	"brandpulse/pkg/contracts/domain"
)

// MonthWindow is an inclusive range of month ordinals.
type MonthWindow struct {
	From int
	To   int
}

// Contains reports whether ordinal falls inside the window.
func (w MonthWindow) Contains(ordinal int) bool {
	return ordinal >= w.From && ordinal <= w.To
}

var (
	// ObservationWindow is the fixed April-September window the canonical
	// tables are restricted to. The upper bound is enforced explicitly so
	// behavior does not depend on the incidental range of the source data.
	ObservationWindow = MonthWindow{From: 4, To: 9}

	// BenchmarkWindow is the April-June reference quarter whose mean serves
	// as the benchmark line on trend charts.
	BenchmarkWindow = MonthWindow{From: 4, To: 6}
)

// monthAbbrevs in search order: first match wins, jan through dec.
var monthAbbrevs = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// ParseMonth maps free-text month labels ("April-2024", "Sep", "01-Jun") to
// a canonical Month by scanning for the twelve three-letter abbreviations
// as case-insensitive substrings. The second return is false for text
// naming no month; such rows are excluded from the canonical table.
func ParseMonth(raw string) (domain.Month, bool) {
	s := strings.ToLower(raw)
	for i, abbrev := range monthAbbrevs {
		if strings.Contains(s, abbrev) {
			m, _ := domain.MonthFromOrdinal(i + 1)
			return m, true
		}
	}
	return domain.Month{}, false
}
