package health

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownWindow = errors.New("unknown window")

// Window is a time range relative to "now", used to filter records by date.
type Window string

const (
	Window7Days   Window = "7d"
	Window1Month  Window = "1m"
	Window3Months Window = "3m"
	Window6Months Window = "6m"
	Window1Year   Window = "1y"
	WindowAll     Window = "all"
)

var AllWindows = []Window{
	Window7Days,
	Window1Month,
	Window3Months,
	Window6Months,
	Window1Year,
	WindowAll,
}

func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllWindows {
		if w == known {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: [%s]", ErrUnknownWindow, s)
}

func (w Window) String() string {
	return string(w)
}

// Cutoff returns the earliest calendar date included in the window.
// Months and years are subtracted on the calendar (AddDate), so e.g. one month
// before March 31st overflows into the beginning of March, same as day-of-month arithmetic
// in most calendar libraries. The unbounded window has no cutoff (ok is false).
func (w Window) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	switch w {
	case Window7Days:
		return today.AddDate(0, 0, -7), true
	case Window1Month:
		return today.AddDate(0, -1, 0), true
	case Window3Months:
		return today.AddDate(0, -3, 0), true
	case Window6Months:
		return today.AddDate(0, -6, 0), true
	case Window1Year:
		return today.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// FilterByWindow returns the records dated on or after the window cutoff, in input order.
// There is no upper bound, records dated in the future are kept.
func FilterByWindow(records []HealthRecord, now time.Time, w Window) []HealthRecord {
	cutoff, bounded := w.Cutoff(now)

	filtered := make([]HealthRecord, 0, len(records))
	for _, r := range records {
		if bounded && r.Date.Before(cutoff) {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}
