package health

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/2beens/healthstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// FileRepo keeps the whole collection as a JSON array in one flat file.
// Appending is a read-modify-write of the whole file. Writes are serialized within
// this process only, across processes the last writer wins.
type FileRepo struct {
	path  string
	mutex sync.Mutex
}

func NewFileRepo(path string) (*FileRepo, error) {
	if path == "" {
		return nil, errors.New("records file path cannot be empty")
	}
	return &FileRepo{
		path: path,
	}, nil
}

func (r *FileRepo) Path() string {
	return r.path
}

func (r *FileRepo) Read(ctx context.Context) (_ []RawRecord, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.health.file.read")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mutex.Lock()
	stored, err := r.readStored()
	r.mutex.Unlock()
	if err != nil {
		return nil, err
	}

	records := make([]RawRecord, 0, len(stored))
	for i, msg := range stored {
		var raw RawRecord
		if err := json.Unmarshal(msg, &raw); err != nil {
			// kept in the file untouched, but cannot be served
			log.Warnf("records file [%s]: skipping undecodable record at index %d: %s", r.path, i, err)
			continue
		}
		records = append(records, raw)
	}

	span.SetAttributes(attribute.Int("records.count", len(records)))

	return records, nil
}

func (r *FileRepo) Append(ctx context.Context, record HealthRecord) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.health.file.append")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("record.date", record.DateString()))

	recordJson, err := json.Marshal(ToRaw(record))
	if err != nil {
		return fmt.Errorf("%w: marshal record: %w", ErrPersistence, err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored, err := r.readStored()
	if err != nil {
		return err
	}
	stored = append(stored, recordJson)

	if err := r.writeStored(stored); err != nil {
		return err
	}

	log.Debugf("records file [%s]: record [%s] appended, total: %d", r.path, record.DateString(), len(stored))

	return nil
}

// readStored returns the stored records as raw JSON messages, so that records this version
// cannot decode are preserved when the file is written back.
func (r *FileRepo) readStored() ([]json.RawMessage, error) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%w: read records file [%s]: %w", ErrPersistence, r.path, err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return []json.RawMessage{}, nil
	}

	var stored []json.RawMessage
	if err := json.Unmarshal(content, &stored); err != nil {
		return nil, fmt.Errorf("%w: unmarshal records file [%s]: %w", ErrPersistence, r.path, err)
	}
	if stored == nil {
		stored = []json.RawMessage{}
	}

	return stored, nil
}

// writeStored replaces the whole file: the new content goes to a temp file
// in the same directory first, and is then renamed over the old one.
func (r *FileRepo) writeStored(stored []json.RawMessage) error {
	content, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal records: %w", ErrPersistence, err)
	}

	dir := filepath.Dir(r.path)
	tmpFile, err := os.CreateTemp(dir, ".records-*.json.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp records file in [%s]: %w", ErrPersistence, dir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("%w: write temp records file: %w", ErrPersistence, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: close temp records file: %w", ErrPersistence, err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("%w: replace records file [%s]: %w", ErrPersistence, r.path, err)
	}

	return nil
}
