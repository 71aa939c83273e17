package domain

// KeywordRecord is one row of the canonical marketing table. All categorical
// fields are canonicalized exactly once at load time; downstream filtering
// assumes canonical form and never mutates records.
type KeywordRecord struct {
	Month       Month              `json:"month"`
	Region      string             `json:"region"`
	Category    string             `json:"category"`
	Platform    Platform           `json:"platform"`
	KeywordType KeywordType        `json:"keyword_type"`
	Keyword     string             `json:"keyword"`
	Metrics     map[Metric]float64 `json:"metrics"`
}

// Metric returns the record's value for m, 0 when the metric column was
// absent from the source file.
func (r KeywordRecord) Metric(m Metric) float64 {
	return r.Metrics[m]
}

// BrandStrengthRecord is one row of the canonical brand-strength table.
type BrandStrengthRecord struct {
	Month    Month    `json:"month"`
	Region   string   `json:"region"`
	Category string   `json:"category"`
	Platform Platform `json:"platform"`
	Strength float64  `json:"strength"`
}
