package health

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MetricSummary holds the headline statistics of one metric.
// When NoData is set, the statistics are meaningless and must not be shown as zero readings.
type MetricSummary struct {
	Metric  Metric
	Count   int
	NoData  bool
	Average decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
}

type metricSummaryJSON struct {
	Metric  Metric          `json:"metric"`
	Unit    string          `json:"unit"`
	Count   int             `json:"count"`
	NoData  bool            `json:"noData"`
	Average json.RawMessage `json:"average"`
	Min     json.RawMessage `json:"min"`
	Max     json.RawMessage `json:"max"`
}

// MarshalJSON writes the statistics as JSON numbers with the metric precision
// (e.g. 70.0 for weight), or null when there is no data.
func (s MetricSummary) MarshalJSON() ([]byte, error) {
	out := metricSummaryJSON{
		Metric:  s.Metric,
		Unit:    s.Metric.Unit(),
		Count:   s.Count,
		NoData:  s.NoData,
		Average: json.RawMessage("null"),
		Min:     json.RawMessage("null"),
		Max:     json.RawMessage("null"),
	}
	if !s.NoData {
		places := s.Metric.DecimalPlaces()
		out.Average = json.RawMessage(s.Average.StringFixed(places))
		out.Min = json.RawMessage(s.Min.StringFixed(places))
		out.Max = json.RawMessage(s.Max.StringFixed(places))
	}
	return json.Marshal(out)
}

// Summarize computes average, min and max over the eligible values of the metric:
// present and strictly positive. Absent and zero/negative values are ignored.
// Values are rounded to the metric presentation precision, records keep the raw precision.
func Summarize(records []HealthRecord, metric Metric) MetricSummary {
	summary := MetricSummary{
		Metric: metric,
	}

	var sum, minValue, maxValue decimal.Decimal
	for _, r := range records {
		value, ok := metric.Value(r)
		if !ok || value <= 0 {
			continue
		}

		d := decimal.NewFromFloat(value)
		if summary.Count == 0 || d.LessThan(minValue) {
			minValue = d
		}
		if summary.Count == 0 || d.GreaterThan(maxValue) {
			maxValue = d
		}
		sum = sum.Add(d)
		summary.Count++
	}

	if summary.Count == 0 {
		summary.NoData = true
		return summary
	}

	places := metric.DecimalPlaces()
	summary.Average = sum.Div(decimal.NewFromInt(int64(summary.Count))).Round(places)
	summary.Min = minValue.Round(places)
	summary.Max = maxValue.Round(places)

	return summary
}
