package domain

// Metric names a percentage-valued measure tracked per keyword, platform
// and month. Values are stored as plain numbers in [0,100] after the "%"
// suffix is stripped at load time.
type Metric string

const (
	MetricVolumeShare   Metric = "Volume Share"
	MetricAdSOV         Metric = "Ad SOV"
	MetricOrgSOV        Metric = "Org. SOV"
	MetricOverallSOV    Metric = "Overall SOV"
	MetricCatImpShare   Metric = "Cat. Imp. Share"
	MetricBrandStrength Metric = "Brand Strength"
)

// MarketingMetrics lists the metrics carried by the marketing workbook, in
// the order they are offered to the presentation layer.
var MarketingMetrics = []Metric{
	MetricVolumeShare,
	MetricAdSOV,
	MetricOrgSOV,
	MetricOverallSOV,
	MetricCatImpShare,
}

// ParseMetric maps a display name back to a known metric. The second return
// is false for names outside the marketing metric set.
func ParseMetric(name string) (Metric, bool) {
	for _, m := range MarketingMetrics {
		if string(m) == name {
			return m, true
		}
	}
	return "", false
}

func (m Metric) String() string {
	return string(m)
}
