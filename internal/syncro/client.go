package syncro

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/domain"
	apperrors "github.com/spec-kit/ticket-router/pkg/util"
)

// Client talks to the Syncro-style ticket API. The API key is an opaque
// credential passed as a query parameter.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a ticket-source client from configuration.
func NewClient(cfg config.SyncroConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// ticketEnvelope covers both payload shapes the API is known to return:
// an object with a "tickets" field or a bare array.
type ticketEnvelope struct {
	Tickets []domain.Ticket `json:"tickets"`
}

// FetchOpenTickets returns all unresolved tickets sorted by creation time
// ascending. Transport and payload failures abort the whole fetch; the
// caller treats that as an empty cycle.
func (c *Client) FetchOpenTickets(ctx context.Context) ([]domain.Ticket, error) {
	endpoint := fmt.Sprintf("%s/tickets", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("build tickets request", err)
	}
	req.Header.Set("Accept", "application/json")
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	req.URL.RawQuery = query.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("fetch tickets", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("ticket source returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("read tickets response", err)
	}

	tickets, err := decodeTickets(body)
	if err != nil {
		return nil, apperrors.NewTransportError("decode tickets response", err)
	}

	active := tickets[:0]
	for _, ticket := range tickets {
		if ticket.Status != domain.TicketStatusResolved {
			active = append(active, ticket)
		}
	}
	c.logger.Info("fetched tickets",
		zap.Int("total", len(tickets)),
		zap.Int("active", len(active)))

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt < active[j].CreatedAt
	})
	return active, nil
}

func decodeTickets(body []byte) ([]domain.Ticket, error) {
	var envelope ticketEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Tickets != nil {
		return envelope.Tickets, nil
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}
