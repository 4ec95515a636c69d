package domain

import "time"

// SentinelTechnician is the assignment value used when no technician is
// eligible and a human has to route the ticket.
const SentinelTechnician = "Needs human input"

// Assignment is the resolver's verdict for a single ticket. ContactChannel
// and Email are nil for the sentinel decision.
type Assignment struct {
	Technician     string
	ContactChannel *string
	Email          *string
	Category       string
}

// IsSentinel reports whether the assignment needs human input.
func (a Assignment) IsSentinel() bool {
	return a.Technician == SentinelTechnician
}

// AssignmentRecord is one append-only entry in the assignment results store.
type AssignmentRecord struct {
	DecisionID   string    `json:"decision_id"`
	TicketID     int64     `json:"ticket_id"`
	TicketNumber int64     `json:"ticket_number"`
	Subject      string    `json:"subject"`
	Category     string    `json:"category"`
	AssignedTo   string    `json:"assigned_to"`
	TeamsMention *string   `json:"teams_mention"`
	Email        *string   `json:"email"`
	Timestamp    time.Time `json:"timestamp"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
}
