package health

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Metric is one of the tracked health measurements.
type Metric string

const (
	MetricSteps     Metric = "steps"
	MetricWeight    Metric = "weight"
	MetricHeartRate Metric = "heartRate"
)

var AllMetrics = []Metric{
	MetricSteps,
	MetricWeight,
	MetricHeartRate,
}

func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "steps":
		return MetricSteps, nil
	case "weight":
		return MetricWeight, nil
	case "heartrate", "heart_rate", "heart-rate":
		return MetricHeartRate, nil
	default:
		return "", fmt.Errorf("%w: [%s]", ErrUnknownMetric, s)
	}
}

func (m Metric) String() string {
	return string(m)
}

// Value returns the metric value of the record, ok is false when it was not measured.
func (m Metric) Value(r HealthRecord) (value float64, ok bool) {
	switch m {
	case MetricSteps:
		if r.Steps != nil {
			return float64(*r.Steps), true
		}
	case MetricWeight:
		if r.Weight != nil {
			return *r.Weight, true
		}
	case MetricHeartRate:
		if r.HeartRate != nil {
			return float64(*r.HeartRate), true
		}
	}
	return 0, false
}

func (m Metric) Unit() string {
	switch m {
	case MetricWeight:
		return "kg"
	case MetricHeartRate:
		return "bpm"
	default:
		return "steps"
	}
}

func (m Metric) Label() string {
	switch m {
	case MetricWeight:
		return "Weight"
	case MetricHeartRate:
		return "Heart Rate"
	default:
		return "Steps"
	}
}

// DecimalPlaces is the presentation precision of summary values:
// steps and heart rate are whole numbers, weight has one decimal place.
func (m Metric) DecimalPlaces() int32 {
	if m == MetricWeight {
		return 1
	}
	return 0
}
