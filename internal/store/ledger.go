package store

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	apperrors "github.com/spec-kit/ticket-router/pkg/util"
)

// Ledger is the persisted set of ticket identifiers that already received an
// assignment decision. It makes repeated poll cycles idempotent.
type Ledger interface {
	Load(ctx context.Context) (map[string]struct{}, error)
	Save(ctx context.Context, processed map[string]struct{}) error
}

// FileLedger stores the processed-ticket set as a JSON array of IDs.
type FileLedger struct {
	path string
	mu   sync.Mutex
}

// NewFileLedger creates a ledger at the given path. A missing file reads as
// an empty set.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Load reads the processed-ticket set.
func (l *FileLedger) Load(ctx context.Context) (map[string]struct{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("read processed tickets", err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, apperrors.NewPersistenceError("parse processed tickets", err)
	}
	processed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		processed[id] = struct{}{}
	}
	return processed, nil
}

// Save writes the processed-ticket set. IDs are sorted so the file is stable
// across runs.
func (l *FileLedger) Save(ctx context.Context, processed map[string]struct{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(processed))
	for id := range processed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	encoded, err := json.Marshal(ids)
	if err != nil {
		return apperrors.NewPersistenceError("encode processed tickets", err)
	}
	if err := os.WriteFile(l.path, encoded, 0o644); err != nil {
		return apperrors.NewPersistenceError("write processed tickets", err)
	}
	return nil
}
