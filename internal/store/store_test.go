package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-router/internal/domain"
)

func record(id int64, tech string) domain.AssignmentRecord {
	mention := "@" + tech
	return domain.AssignmentRecord{
		DecisionID:   "decision-" + tech,
		TicketID:     id,
		TicketNumber: 100 + id,
		Subject:      "Subject",
		Category:     "Remote Support",
		AssignedTo:   tech,
		TeamsMention: &mention,
		Timestamp:    time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC),
		Status:       "New",
		Priority:     "Medium",
	}
}

func TestFileResultsStore_AppendAndRecent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.json")
	s := NewFileResultsStore(path)

	require.NoError(t, s.Append(ctx, record(1, "TechA")))
	require.NoError(t, s.Append(ctx, record(2, "TechB")))
	require.NoError(t, s.Append(ctx, record(3, "TechA")))

	// The file holds a plain JSON array readable without the store.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []domain.AssignmentRecord
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 3)
	assert.Equal(t, int64(1), onDisk[0].TicketID)

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].TicketID, "newest first")
	assert.Equal(t, int64(2), recent[1].TicketID)

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFileResultsStore_RecentOnMissingFile(t *testing.T) {
	s := NewFileResultsStore(filepath.Join(t.TempDir(), "absent.json"))
	recent, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestFileResultsStore_SentinelRecordKeepsNullContacts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.json")
	s := NewFileResultsStore(path)

	require.NoError(t, s.Append(ctx, domain.AssignmentRecord{
		DecisionID: "decision-sentinel",
		TicketID:   9,
		AssignedTo: domain.SentinelTechnician,
		Timestamp:  time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC),
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, domain.SentinelTechnician, entries[0]["assigned_to"])
	assert.Nil(t, entries[0]["teams_mention"])
	assert.Nil(t, entries[0]["email"])
}

func TestFileLedger_MissingFileReadsEmpty(t *testing.T) {
	l := NewFileLedger(filepath.Join(t.TempDir(), "absent.json"))
	processed, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, processed)
}

func TestFileLedger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")
	l := NewFileLedger(path)

	want := map[string]struct{}{"95105275": {}, "95105276": {}}
	require.NoError(t, l.Save(ctx, want))

	got, err := l.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Stable on-disk order.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["95105275","95105276"]`, string(raw))
}

func TestFileLedger_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	l := NewFileLedger(path)
	_, err := l.Load(context.Background())
	assert.Error(t, err)
}
