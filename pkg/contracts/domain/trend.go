package domain

// TrendPoint is one plotted point: the mean of a metric for one month and
// one series key. A series of these, sorted ascending by MonthOrdinal, is
// the contract the presentation adapter consumes to draw one line per key.
type TrendPoint struct {
	MonthLabel   string  `json:"month"`
	MonthOrdinal int     `json:"month_ordinal"`
	SeriesKey    string  `json:"series_key"`
	Value        float64 `json:"value"`
}

// TrendSeries groups the points of a single chart along with the dimension
// that keys its lines ("region", "platform" or "keyword").
type TrendSeries struct {
	Dimension string       `json:"dimension"`
	Points    []TrendPoint `json:"points"`
}
