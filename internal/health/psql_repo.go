package health

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/2beens/healthstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS health_record
(
    id         SERIAL PRIMARY KEY,
    date       DATE             NOT NULL,
    steps      BIGINT,
    weight     DOUBLE PRECISION,
    heart_rate INTEGER,
    created_at TIMESTAMPTZ      NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_health_record_date ON health_record USING btree (date);
`

// PsqlRepo stores one row per record in the health_record table.
type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

// EnsureSchema creates the records table if it does not exist yet.
func (r *PsqlRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("%w: create health_record table: %w", ErrPersistence, err)
	}
	return nil
}

func (r *PsqlRepo) Read(ctx context.Context) (_ []RawRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.health.psql.read")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT date, steps, weight, heart_rate FROM health_record ORDER BY id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %w", ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]RawRecord, 0)
	for rows.Next() {
		var date time.Time
		var steps *int64
		var weight *float64
		var heartRate *int32
		if err := rows.Scan(&date, &steps, &weight, &heartRate); err != nil {
			return nil, fmt.Errorf("%w: rows scan: %w", ErrPersistence, err)
		}

		record := HealthRecord{
			Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			Steps:  steps,
			Weight: weight,
		}
		if heartRate != nil {
			hr := int64(*heartRate)
			record.HeartRate = &hr
		}
		records = append(records, ToRaw(record))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrPersistence, err)
	}

	span.SetAttributes(attribute.Int("records.count", len(records)))

	return records, nil
}

func (r *PsqlRepo) Append(ctx context.Context, record HealthRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.health.psql.append")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("record.date", record.DateString()))

	var heartRate *int32
	if record.HeartRate != nil {
		if *record.HeartRate > math.MaxInt32 || *record.HeartRate < math.MinInt32 {
			return fmt.Errorf("%w: heart rate %d out of column range", ErrPersistence, *record.HeartRate)
		}
		hr := int32(*record.HeartRate)
		heartRate = &hr
	}

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO health_record (date, steps, weight, heart_rate, created_at) VALUES ($1, $2, $3, $4, $5);`,
		record.Date, record.Steps, record.Weight, heartRate, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("%w: insert record: %w", ErrPersistence, err)
	}

	log.Debugf("psql repo: record [%s] appended, rows affected: %d", record.DateString(), tag.RowsAffected())

	return nil
}
