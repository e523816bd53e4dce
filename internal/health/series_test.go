package health

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeAll(t *testing.T, raws []RawRecord) []HealthRecord {
	t.Helper()
	records := make([]HealthRecord, 0, len(raws))
	for _, raw := range raws {
		r, err := Normalize(raw)
		require.NoError(t, err)
		records = append(records, r)
	}
	return records
}

func TestBuildSeries_Steps(t *testing.T) {
	records := normalizeAll(t, []RawRecord{
		{Date: "2025-01-01", Steps: "5000"},
		{Date: "2025-01-02", Steps: "7000"},
	})

	series := BuildSeries(FilterByWindow(records, time.Now(), WindowAll), MetricSteps)
	assert.False(t, series.NoData)
	assert.Equal(t, []string{"Jan 1", "Jan 2"}, series.Labels())
	assert.Equal(t, []float64{5000, 7000}, series.Values())
}

func TestBuildSeries_AbsentValuesAreZero(t *testing.T) {
	records := normalizeAll(t, []RawRecord{
		{Date: "2025-01-01", Weight: "70.0"},
		{Date: "2025-01-02"},
	})

	series := BuildSeries(records, MetricWeight)
	assert.Equal(t, []string{"Jan 1", "Jan 2"}, series.Labels())
	assert.Equal(t, []float64{70.0, 0}, series.Values())
}

func TestBuildSeries_Empty(t *testing.T) {
	for _, metric := range AllMetrics {
		series := BuildSeries(nil, metric)
		assert.True(t, series.NoData)
		require.NotNil(t, series.Points)
		assert.Empty(t, series.Points)

		b, err := json.Marshal(series)
		require.NoError(t, err)
		assert.JSONEq(t, `{"metric":"`+metric.String()+`","points":[],"noData":true}`, string(b))
	}
}

func TestBuildSeries_NoEligibleValues(t *testing.T) {
	records := normalizeAll(t, []RawRecord{
		{Date: "2025-01-01"},
		{Date: "2025-01-02", Steps: "100"},
		{Date: "2025-01-03", Weight: "0"},
	})

	series := BuildSeries(records, MetricWeight)
	assert.True(t, series.NoData)
	// absent weights are still zero points on the chart
	assert.Equal(t, []string{"Jan 1", "Jan 2", "Jan 3"}, series.Labels())
	assert.Equal(t, []float64{0, 0, 0}, series.Values())
	assert.True(t, Summarize(records, MetricWeight).NoData)

	steps := BuildSeries(records, MetricSteps)
	assert.False(t, steps.NoData)
	assert.Equal(t, []float64{0, 100, 0}, steps.Values())
}

func TestBuildSeries_SortsStable(t *testing.T) {
	records := []HealthRecord{
		{Date: date("2025-03-05"), Steps: ptrInt64(3)},
		{Date: date("2025-03-01"), Steps: ptrInt64(1)},
		// duplicate dates are kept as separate points, in input order
		{Date: date("2025-03-05"), Steps: ptrInt64(4)},
		{Date: date("2025-03-02"), Steps: ptrInt64(2)},
	}

	series := BuildSeries(records, MetricSteps)
	assert.Equal(t, []string{"Mar 1", "Mar 2", "Mar 5", "Mar 5"}, series.Labels())
	assert.Equal(t, []float64{1, 2, 3, 4}, series.Values())

	// input is not modified
	assert.Equal(t, "2025-03-05", records[0].DateString())
}

func TestBuildSeries_Property(t *testing.T) {
	faker := gofakeit.New(7)
	now := time.Date(2025, 6, 20, 14, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		records := randomRecords(faker, now, faker.IntRange(0, 60))
		for _, metric := range AllMetrics {
			series := BuildSeries(records, metric)
			require.Len(t, series.Points, len(records))
			eligible := 0
			for _, r := range records {
				if v, ok := metric.Value(r); ok && v > 0 {
					eligible++
				}
			}
			assert.Equal(t, eligible == 0, series.NoData)
			assert.Equal(t, Summarize(records, metric).NoData, series.NoData)

			for j := 1; j < len(series.Points); j++ {
				assert.False(t, series.Points[j].Date.Before(series.Points[j-1].Date))
			}

			// sorting already sorted records changes nothing
			sorted := SortByDate(records)
			assert.Equal(t, sorted, SortByDate(sorted))
			assert.Equal(t, series, BuildSeries(sorted, metric))
			assert.Equal(t, series, BuildSeries(records, metric))
		}
	}
}

func TestSeriesPoint_MarshalJSON(t *testing.T) {
	p := SeriesPoint{Date: date("2025-03-05"), Label: "Mar 5", Value: 72}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-05","label":"Mar 5","value":72}`, string(b))
}
