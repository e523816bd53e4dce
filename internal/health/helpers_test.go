package health

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

func ptrInt64(v int64) *int64 {
	return &v
}

func ptrFloat64(v float64) *float64 {
	return &v
}

func date(s string) time.Time {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// randomRecords generates records dated within a year around now, with random subsets of
// measured fields, including zero and negative values.
func randomRecords(faker *gofakeit.Faker, now time.Time, n int) []HealthRecord {
	records := make([]HealthRecord, 0, n)
	for i := 0; i < n; i++ {
		d := faker.DateRange(now.AddDate(-1, 0, -15), now.AddDate(0, 0, 10))
		r := HealthRecord{
			Date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		}
		if faker.Bool() {
			r.Steps = ptrInt64(int64(faker.IntRange(-100, 25000)))
		}
		if faker.Bool() {
			r.Weight = ptrFloat64(faker.Float64Range(-1, 120))
		}
		if faker.Bool() {
			r.HeartRate = ptrInt64(int64(faker.IntRange(0, 180)))
		}
		records = append(records, r)
	}
	return records
}
