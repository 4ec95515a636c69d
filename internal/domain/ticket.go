package domain

import "strconv"

// TicketStatusResolved marks tickets the router must ignore.
const TicketStatusResolved = "Resolved"

// Ticket is the read-only view of a helpdesk ticket as returned by the
// ticket source. CreatedAt stays the raw ISO-8601 string from the API so
// lexicographic order is chronological order.
type Ticket struct {
	ID          int64  `json:"id"`
	Number      int64  `json:"number"`
	Subject     string `json:"subject"`
	Status      string `json:"status"`
	ProblemType string `json:"problem_type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"created_at"`
}

// Key returns the stable identifier used by the processed-ticket ledger.
func (t Ticket) Key() string {
	return strconv.FormatInt(t.ID, 10)
}
