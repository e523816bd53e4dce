package health

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical, date-only form of a record date.
const DateLayout = "2006-01-02"

var ErrInvalidRecord = errors.New("invalid record")

// timestamp layouts accepted for legacy clients that sent a full timestamp instead of a date
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// RawNumber is a loosely typed numeric field, as sent by clients and kept in storage.
// Both JSON strings ("5000") and JSON numbers (5000) are accepted; null means absent.
type RawNumber string

func (n *RawNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*n = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = RawNumber(str)
	default:
		// numbers (and anything else) are kept as text, non-numeric text ends up as absent
		*n = RawNumber(s)
	}
	return nil
}

// RawRecord is a health record as received from clients or read from storage:
// a date-or-timestamp string and string-typed numeric fields.
type RawRecord struct {
	Date      string    `json:"date"`
	Timestamp string    `json:"timestamp,omitempty"`
	Steps     RawNumber `json:"steps,omitempty"`
	Weight    RawNumber `json:"weight,omitempty"`
	HeartRate RawNumber `json:"heartRate,omitempty"`
}

// HealthRecord is one observation for one calendar date.
// A nil field means "not measured that day", never zero.
type HealthRecord struct {
	Date      time.Time
	Steps     *int64
	Weight    *float64
	HeartRate *int64
}

type healthRecordJSON struct {
	Date      string   `json:"date"`
	Steps     *int64   `json:"steps,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	HeartRate *int64   `json:"heartRate,omitempty"`
}

func (r HealthRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(healthRecordJSON{
		Date:      r.DateString(),
		Steps:     r.Steps,
		Weight:    r.Weight,
		HeartRate: r.HeartRate,
	})
}

func (r HealthRecord) DateString() string {
	return r.Date.Format(DateLayout)
}

// Normalize turns a raw record into a HealthRecord.
// An unparseable date fails with ErrInvalidRecord, while absent or non-numeric
// numeric fields silently become absent. Out of range values (e.g. negative steps) are kept.
func Normalize(raw RawRecord) (HealthRecord, error) {
	dateStr := strings.TrimSpace(raw.Date)
	if dateStr == "" {
		dateStr = strings.TrimSpace(raw.Timestamp)
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		return HealthRecord{}, err
	}

	return HealthRecord{
		Date:      date,
		Steps:     parseInt(raw.Steps),
		Weight:    parseFloat(raw.Weight),
		HeartRate: parseInt(raw.HeartRate),
	}, nil
}

// ParseDate parses either a YYYY-MM-DD date or a full timestamp and returns
// the calendar date as midnight UTC. Timestamps keep the calendar date of their own offset.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is empty", ErrInvalidRecord)
	}

	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			year, month, day := ts.Date()
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unparseable date [%s]", ErrInvalidRecord, s)
}

// ToRaw returns the canonical stored form of the record: date-only and
// only the present numeric fields, written as strings.
func ToRaw(r HealthRecord) RawRecord {
	raw := RawRecord{
		Date: r.DateString(),
	}
	if r.Steps != nil {
		raw.Steps = RawNumber(strconv.FormatInt(*r.Steps, 10))
	}
	if r.Weight != nil {
		raw.Weight = RawNumber(strconv.FormatFloat(*r.Weight, 'f', -1, 64))
	}
	if r.HeartRate != nil {
		raw.HeartRate = RawNumber(strconv.FormatInt(*r.HeartRate, 10))
	}
	return raw
}

func parseInt(n RawNumber) *int64 {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}

	// integral decimals, e.g. 5000.0 coming from a JSON number
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return nil
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	v := int64(f)
	return &v
}

func parseFloat(n RawNumber) *float64 {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}
