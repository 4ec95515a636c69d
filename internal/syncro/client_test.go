package syncro

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
)

const ticketPayload = `{
  "tickets": [
    {"id": 3, "number": 103, "subject": "Old resolved", "status": "Resolved", "problem_type": "Hardware", "created_at": "2025-01-01T08:00:00Z"},
    {"id": 2, "number": 102, "subject": "Second", "status": "New", "problem_type": "Network", "created_at": "2025-01-09T09:30:00Z"},
    {"id": 1, "number": 101, "subject": "First", "status": "In Progress", "problem_type": "Remote Support", "created_at": "2025-01-08T14:00:00Z"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.SyncroConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	}, zap.NewNop())
	return client, server
}

func TestFetchOpenTickets_FiltersAndSorts(t *testing.T) {
	var gotPath, gotKey, gotAccept string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ticketPayload))
	})

	tickets, err := client.FetchOpenTickets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/tickets", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotAccept)

	require.Len(t, tickets, 2, "resolved tickets are filtered out")
	assert.Equal(t, int64(1), tickets[0].ID, "tickets sorted by created_at ascending")
	assert.Equal(t, int64(2), tickets[1].ID)
}

func TestFetchOpenTickets_BareArrayPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 7, "number": 107, "subject": "Bare", "status": "New", "created_at": "2025-01-09T10:00:00Z"}]`))
	})

	tickets, err := client.FetchOpenTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, int64(7), tickets[0].ID)
}

func TestFetchOpenTickets_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FetchOpenTickets(context.Background())
	assert.Error(t, err)
}

func TestFetchOpenTickets_MalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": true}`))
	})

	_, err := client.FetchOpenTickets(context.Background())
	assert.Error(t, err)
}

func TestFetchOpenTickets_ServerUnreachable(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.FetchOpenTickets(context.Background())
	assert.Error(t, err)
}
