package store

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/spec-kit/ticket-router/internal/domain"
	apperrors "github.com/spec-kit/ticket-router/pkg/util"
)

// ResultsStore is the append-only sink for assignment decisions.
type ResultsStore interface {
	Append(ctx context.Context, record domain.AssignmentRecord) error
	Recent(ctx context.Context, limit int) ([]domain.AssignmentRecord, error)
}

// FileResultsStore keeps all records in a single JSON array on disk,
// rewritten on every append. Fine for a single small team; not a database.
type FileResultsStore struct {
	path string
	mu   sync.Mutex
}

// NewFileResultsStore creates a store writing to the given path. The file is
// created on first append.
func NewFileResultsStore(path string) *FileResultsStore {
	return &FileResultsStore{path: path}
}

// Append adds a record to the results file.
func (s *FileResultsStore) Append(ctx context.Context, record domain.AssignmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}
	records = append(records, record)

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.NewPersistenceError("encode assignment results", err)
	}
	if err := os.WriteFile(s.path, encoded, 0o644); err != nil {
		return apperrors.NewPersistenceError("write assignment results", err)
	}
	return nil
}

// Recent returns the newest records, newest first, capped at limit.
func (s *FileResultsStore) Recent(ctx context.Context, limit int) ([]domain.AssignmentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}
	out := make([]domain.AssignmentRecord, 0, limit)
	for i := len(records) - 1; i >= len(records)-limit; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

// Path returns the results file path.
func (s *FileResultsStore) Path() string {
	return s.path
}

func (s *FileResultsStore) readAll() ([]domain.AssignmentRecord, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("read assignment results", err)
	}
	var records []domain.AssignmentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.NewPersistenceError("parse assignment results", err)
	}
	return records, nil
}
