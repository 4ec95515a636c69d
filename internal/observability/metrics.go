package observability

import (
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for poll cycles and assignments.
type Metrics struct {
	mu              sync.Mutex
	cyclesRun       int64
	cyclesFailed    int64
	ticketsSeen     int64
	ticketsRouted   int64
	ticketsSentinel int64
	byTechnician    map[string]int64
	lastCycleAt     time.Time
	lastCycleErr    string
}

// MetricsSnapshot is an immutable copy of the current counters.
type MetricsSnapshot struct {
	CyclesRun       int64            `json:"cycles_run"`
	CyclesFailed    int64            `json:"cycles_failed"`
	TicketsSeen     int64            `json:"tickets_seen"`
	TicketsRouted   int64            `json:"tickets_routed"`
	TicketsSentinel int64            `json:"tickets_sentinel"`
	ByTechnician    map[string]int64 `json:"by_technician"`
	LastCycleAt     time.Time        `json:"last_cycle_at"`
	LastCycleError  string           `json:"last_cycle_error,omitempty"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		byTechnician: make(map[string]int64),
	}
}

// RecordCycle increments cycle counters.
func (m *Metrics) RecordCycle(at time.Time, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cyclesRun++
	m.lastCycleAt = at
	if err != nil {
		m.cyclesFailed++
		m.lastCycleErr = err.Error()
	} else {
		m.lastCycleErr = ""
	}
}

// RecordTicketSeen counts tickets handed to the resolver.
func (m *Metrics) RecordTicketSeen() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticketsSeen++
}

// RecordAssignment counts a resolved decision for technician, or a sentinel
// when technician is empty.
func (m *Metrics) RecordAssignment(technician string, sentinel bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sentinel {
		m.ticketsSentinel++
		return
	}
	m.ticketsRouted++
	m.byTechnician[technician]++
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byTech := make(map[string]int64, len(m.byTechnician))
	for tech, count := range m.byTechnician {
		byTech[tech] = count
	}
	return MetricsSnapshot{
		CyclesRun:       m.cyclesRun,
		CyclesFailed:    m.cyclesFailed,
		TicketsSeen:     m.ticketsSeen,
		TicketsRouted:   m.ticketsRouted,
		TicketsSentinel: m.ticketsSentinel,
		ByTechnician:    byTech,
		LastCycleAt:     m.lastCycleAt,
		LastCycleError:  m.lastCycleErr,
	}
}
