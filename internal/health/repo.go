package health

import (
	"context"
	"errors"
)

// ErrPersistence wraps every storage failure (missing directory, malformed stored JSON,
// disk or database errors). It is propagated as is, there is no retry.
var ErrPersistence = errors.New("persistence failure")

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=health_test

type recordsRepo interface {
	// Read returns the full stored collection, or an empty one when nothing is stored yet.
	Read(ctx context.Context) ([]RawRecord, error)
	// Append adds one normalized record to the stored collection.
	Append(ctx context.Context, record HealthRecord) error
}
