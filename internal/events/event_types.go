package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketRouted     EventType = "ticket_routed"
	EventTicketUnroutable EventType = "ticket_unroutable"
	EventCycleCompleted   EventType = "cycle_completed"
)

// Event represents a routing event emitted during a poll cycle.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketRoutedPayload payload.
type TicketRoutedPayload struct {
	TicketNumber int64  `json:"ticket_number"`
	Subject      string `json:"subject"`
	Category     string `json:"category"`
	Technician   string `json:"technician"`
}

// TicketUnroutablePayload payload.
type TicketUnroutablePayload struct {
	TicketNumber int64  `json:"ticket_number"`
	Subject      string `json:"subject"`
	RawCategory  string `json:"raw_category"`
}

// CycleCompletedPayload payload.
type CycleCompletedPayload struct {
	TicketsProcessed int           `json:"tickets_processed"`
	Duration         time.Duration `json:"duration"`
}
