package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-router/internal/observability"
	"github.com/spec-kit/ticket-router/internal/store"
)

// recentLimit caps the decision tail returned by the status endpoint.
const recentLimit = 20

// LoadCounter exposes the resolver's per-technician load counts.
type LoadCounter interface {
	LoadCounts() map[string]int
}

// StatusHandler reports poll-cycle metrics, the load counter, and the most
// recent assignment decisions.
type StatusHandler struct {
	metrics *observability.Metrics
	counts  LoadCounter
	results store.ResultsStore
}

// NewStatusHandler returns a new handler instance.
func NewStatusHandler(metrics *observability.Metrics, counts LoadCounter, results store.ResultsStore) *StatusHandler {
	return &StatusHandler{
		metrics: metrics,
		counts:  counts,
		results: results,
	}
}

// Snapshot reports the current router state.
func (h *StatusHandler) Snapshot(c *fiber.Ctx) error {
	recent, err := h.results.Recent(c.UserContext(), recentLimit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"metrics":          h.metrics.Snapshot(),
		"load_counts":      h.counts.LoadCounts(),
		"recent_decisions": recent,
	})
}
