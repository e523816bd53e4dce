package health

import (
	"encoding/json"
	"sort"
	"time"
)

// LabelLayout formats series labels as short month + day, e.g. "Mar 5".
const LabelLayout = "Jan 2"

type SeriesPoint struct {
	Date  time.Time
	Label string
	Value float64
}

type seriesPointJSON struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func (p SeriesPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(seriesPointJSON{
		Date:  p.Date.Format(DateLayout),
		Label: p.Label,
		Value: p.Value,
	})
}

// MetricSeries is the chart-ready sequence of one metric, ascending by date.
type MetricSeries struct {
	Metric Metric        `json:"metric"`
	Points []SeriesPoint `json:"points"`
	NoData bool          `json:"noData"`
}

func (s MetricSeries) Labels() []string {
	labels := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		labels = append(labels, p.Label)
	}
	return labels
}

func (s MetricSeries) Values() []float64 {
	values := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		values = append(values, p.Value)
	}
	return values
}

// SortByDate returns a copy of the records sorted ascending by date.
// Records with equal dates keep their relative input order.
func SortByDate(records []HealthRecord) []HealthRecord {
	sorted := make([]HealthRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// BuildSeries projects the metric of every record into a labeled point, one point per record.
// Not measured values are rendered as 0 (not skipped), so the chart shows them as zero readings.
// NoData is set when no record carries a measured, positive value (the Summarize eligibility rule).
func BuildSeries(records []HealthRecord, metric Metric) MetricSeries {
	sorted := SortByDate(records)

	series := MetricSeries{
		Metric: metric,
		Points: make([]SeriesPoint, 0, len(sorted)),
		NoData: true,
	}

	for _, r := range sorted {
		value, ok := metric.Value(r)
		if ok && value > 0 {
			series.NoData = false
		}
		series.Points = append(series.Points, SeriesPoint{
			Date:  r.Date,
			Label: r.Date.Format(LabelLayout),
			Value: value,
		})
	}

	return series
}
