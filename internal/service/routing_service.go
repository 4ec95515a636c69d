package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/domain"
	"github.com/spec-kit/ticket-router/internal/events"
	"github.com/spec-kit/ticket-router/internal/observability"
	"github.com/spec-kit/ticket-router/internal/resolver"
	"github.com/spec-kit/ticket-router/internal/schedule"
	"github.com/spec-kit/ticket-router/internal/store"
)

// TicketSource fetches the current unresolved tickets.
type TicketSource interface {
	FetchOpenTickets(ctx context.Context) ([]domain.Ticket, error)
}

// RosterLoader loads the rule table for one cycle.
type RosterLoader interface {
	Load() (*domain.Roster, error)
}

// RoutingService runs one poll cycle: load the roster, fetch tickets, skip
// already-processed ones, resolve each remaining ticket to a technician, and
// hand the decision to the results store and the event dispatcher.
type RoutingService struct {
	loader     RosterLoader
	source     TicketSource
	resolver   *resolver.Resolver
	results    store.ResultsStore
	ledger     store.Ledger
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// RoutingDependencies bundles collaborators for the routing service.
type RoutingDependencies struct {
	Loader     RosterLoader
	Source     TicketSource
	Resolver   *resolver.Resolver
	Results    store.ResultsStore
	Ledger     store.Ledger
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewRoutingService creates the service.
func NewRoutingService(deps RoutingDependencies) *RoutingService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &RoutingService{
		loader:     deps.Loader,
		source:     deps.Source,
		resolver:   deps.Resolver,
		results:    deps.Results,
		ledger:     deps.Ledger,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        now,
	}
}

// RunCycle executes one poll cycle. It returns an error only for cycle-fatal
// failures (roster or transport); per-ticket and persistence failures are
// logged and the cycle continues.
func (s *RoutingService) RunCycle(ctx context.Context) error {
	started := s.now()

	roster, err := s.loader.Load()
	if err != nil {
		s.logger.Error("roster load failed, skipping cycle", zap.Error(err))
		s.metrics.RecordCycle(started, err)
		return err
	}

	tickets, err := s.source.FetchOpenTickets(ctx)
	if err != nil {
		s.logger.Error("ticket fetch failed, assuming empty set", zap.Error(err))
		s.metrics.RecordCycle(started, err)
		return err
	}

	processed, err := s.ledger.Load(ctx)
	if err != nil {
		// An unreadable ledger reads as empty rather than blocking
		// assignment. Duplicate decisions are the accepted risk.
		s.logger.Error("ledger load failed, treating as empty", zap.Error(err))
		processed = map[string]struct{}{}
	}

	handled := 0
	for _, ticket := range tickets {
		if _, done := processed[ticket.Key()]; done {
			continue
		}
		s.metrics.RecordTicketSeen()
		s.routeTicket(ctx, ticket, roster)
		processed[ticket.Key()] = struct{}{}
		handled++
	}

	if err := s.ledger.Save(ctx, processed); err != nil {
		s.logger.Error("ledger save failed", zap.Error(err))
	}

	s.metrics.RecordCycle(started, nil)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCycleCompleted,
		Timestamp: s.now(),
		Payload: events.CycleCompletedPayload{
			TicketsProcessed: handled,
			Duration:         s.now().Sub(started),
		},
	})
	s.logger.Info("cycle completed",
		zap.Int("tickets_active", len(tickets)),
		zap.Int("tickets_processed", handled))
	return nil
}

// LoadCounts exposes the resolver's load counter for the status endpoint.
func (s *RoutingService) LoadCounts() map[string]int {
	return s.resolver.LoadCounts()
}

func (s *RoutingService) routeTicket(ctx context.Context, ticket domain.Ticket, roster *domain.Roster) {
	assignment, err := s.resolver.Resolve(ticket, roster, s.now())
	if err != nil {
		s.logger.Error("resolution fault",
			zap.String("ticket_id", ticket.Key()),
			zap.Error(err))
	}
	s.metrics.RecordAssignment(assignment.Technician, assignment.IsSentinel())

	record := domain.AssignmentRecord{
		DecisionID:   uuid.NewString(),
		TicketID:     ticket.ID,
		TicketNumber: ticket.Number,
		Subject:      ticket.Subject,
		Category:     ticket.ProblemType,
		AssignedTo:   assignment.Technician,
		TeamsMention: assignment.ContactChannel,
		Email:        assignment.Email,
		Timestamp:    s.now(),
		Description:  ticket.Description,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
	}
	if err := s.results.Append(ctx, record); err != nil {
		// No retry queue: the decision is lost for this ticket.
		s.logger.Error("result append failed",
			zap.String("ticket_id", ticket.Key()),
			zap.Error(err))
	}

	if assignment.IsSentinel() {
		s.logger.Warn("no eligible technician",
			zap.String("ticket_id", ticket.Key()),
			zap.String("raw_category", ticket.ProblemType))
		s.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketUnroutable,
			TicketID:  ticket.Key(),
			Timestamp: s.now(),
			Payload: events.TicketUnroutablePayload{
				TicketNumber: ticket.Number,
				Subject:      ticket.Subject,
				RawCategory:  ticket.ProblemType,
			},
		})
		return
	}

	s.logger.Info("ticket routed",
		zap.String("ticket_id", ticket.Key()),
		zap.Int64("ticket_number", ticket.Number),
		zap.String("technician", assignment.Technician),
		zap.String("category", assignment.Category))
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketRouted,
		TicketID:  ticket.Key(),
		Timestamp: s.now(),
		Payload: events.TicketRoutedPayload{
			TicketNumber: ticket.Number,
			Subject:      ticket.Subject,
			Category:     assignment.Category,
			Technician:   assignment.Technician,
		},
	})
}

func (s *RoutingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

var _ RosterLoader = (*schedule.Loader)(nil)
