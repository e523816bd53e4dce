package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/healthstats/internal/telemetry/metrics"
	"github.com/2beens/healthstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Service is the ingestion and retrieval side of the records collection.
type Service struct {
	repo           recordsRepo
	metricsManager *metrics.Manager
}

func NewService(repo recordsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

// Add normalizes the raw record and appends it to the collection.
// An invalid record fails with ErrInvalidRecord and nothing is appended.
func (s *Service) Add(ctx context.Context, raw RawRecord) (_ *HealthRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.health.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	record, err := Normalize(raw)
	if err != nil {
		s.metricsManager.CounterRecordsRejected.Inc()
		return nil, err
	}

	span.SetAttributes(attribute.String("record.date", record.DateString()))

	if err := s.repo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append record [%s]: %w", record.DateString(), err)
	}

	s.metricsManager.CounterRecordsIngested.Inc()

	return &record, nil
}

// ImportResult counts the outcome of a bulk import.
type ImportResult struct {
	Imported int `json:"imported"`
	Rejected int `json:"rejected"`
}

// Import adds the raw records one by one. Invalid records are logged and counted,
// while the first persistence failure stops the import.
func (s *Service) Import(ctx context.Context, raws []RawRecord) (ImportResult, error) {
	var result ImportResult
	for i, raw := range raws {
		if _, err := s.Add(ctx, raw); err != nil {
			if errors.Is(err, ErrInvalidRecord) {
				log.Warnf("import: record at index %d rejected: %s", i, err)
				result.Rejected++
				continue
			}
			return result, fmt.Errorf("import record at index %d: %w", i, err)
		}
		result.Imported++
	}
	return result, nil
}

// ListRaw returns the full stored collection, exactly as stored.
func (s *Service) ListRaw(ctx context.Context) (_ []RawRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.health.listRaw")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := s.repo.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	return records, nil
}
