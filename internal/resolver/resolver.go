package resolver

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/spec-kit/ticket-router/internal/category"
	"github.com/spec-kit/ticket-router/internal/domain"
	"github.com/spec-kit/ticket-router/internal/schedule"
)

// Picker supplies the random tie-break for load-balanced assignment. It is
// injectable so tests can force either branch.
type Picker interface {
	Intn(n int) int
}

type randPicker struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (p *randPicker) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r.Intn(n)
}

// NewSeededPicker returns a deterministic Picker for the given seed.
func NewSeededPicker(seed int64) Picker {
	return &randPicker{r: rand.New(rand.NewSource(seed))}
}

// Resolver selects a technician for a ticket from the current rule table.
// It owns the load counter used to balance default-bucket tickets; the
// counter starts empty at construction and is never persisted.
type Resolver struct {
	picker Picker

	mu     sync.Mutex
	counts map[string]int
}

// NewResolver creates a resolver. A nil picker falls back to a time-seeded
// random source.
func NewResolver(picker Picker) *Resolver {
	if picker == nil {
		picker = NewSeededPicker(time.Now().UnixNano())
	}
	return &Resolver{
		picker: picker,
		counts: make(map[string]int),
	}
}

// Resolve picks a technician for the ticket at the given instant.
//
// Catch-all rules are evaluated first in table order and pre-empt category
// rules regardless of the ticket's category. Otherwise the ticket's canonical
// category selects the eligible rules; default-bucket tickets with more than
// one eligible technician are balanced by the load counter with random tie
// splitting, everything else takes the first eligible rule in table order.
//
// Resolve never panics outward: an internal fault yields the sentinel
// decision and a non-nil error for the caller to log.
func (r *Resolver) Resolve(ticket domain.Ticket, roster *domain.Roster, now time.Time) (decision domain.Assignment, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			decision = sentinel("")
			err = fmt.Errorf("resolver fault for ticket %s: %v", ticket.Key(), rec)
		}
	}()

	day, tod := schedule.At(now)
	canonical := category.NewNormalizer(roster.Overrides).Normalize(ticket.ProblemType)

	for _, rule := range roster.Rules {
		if rule.IsCatchAll() && schedule.Active(rule, day, tod) {
			return fromRule(rule, canonical), nil
		}
	}

	var eligible []domain.ScheduleRule
	for _, rule := range roster.Rules {
		if rule.IsCatchAll() {
			continue
		}
		if rule.HasCategory(canonical) && schedule.Active(rule, day, tod) {
			eligible = append(eligible, rule)
		}
	}
	if len(eligible) == 0 {
		return sentinel(canonical), nil
	}

	if canonical == category.DefaultBucket {
		if rule, ok := r.balance(eligible); ok {
			return fromRule(rule, canonical), nil
		}
	}
	return fromRule(eligible[0], canonical), nil
}

// LoadCounts returns a snapshot of the per-technician load counter.
func (r *Resolver) LoadCounts() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int, len(r.counts))
	for tech, n := range r.counts {
		counts[tech] = n
	}
	return counts
}

// balance picks the least-loaded technician among the eligible rules. It
// only applies when more than one distinct technician is eligible; a single
// on-duty technician is handled by plain table order without counting.
func (r *Resolver) balance(eligible []domain.ScheduleRule) (domain.ScheduleRule, bool) {
	var technicians []string
	seen := make(map[string]bool)
	for _, rule := range eligible {
		if !seen[rule.Technician] {
			seen[rule.Technician] = true
			technicians = append(technicians, rule.Technician)
		}
	}
	if len(technicians) < 2 {
		return domain.ScheduleRule{}, false
	}

	r.mu.Lock()
	minCount := r.counts[technicians[0]]
	for _, tech := range technicians[1:] {
		if r.counts[tech] < minCount {
			minCount = r.counts[tech]
		}
	}
	var candidates []string
	for _, tech := range technicians {
		if r.counts[tech] == minCount {
			candidates = append(candidates, tech)
		}
	}
	winner := candidates[r.picker.Intn(len(candidates))]
	r.counts[winner]++
	r.mu.Unlock()

	for _, rule := range eligible {
		if rule.Technician == winner {
			return rule, true
		}
	}
	// Unreachable: winner came from eligible.
	return eligible[0], true
}

func fromRule(rule domain.ScheduleRule, canonical string) domain.Assignment {
	contact := rule.ContactChannel
	email := rule.Email
	return domain.Assignment{
		Technician:     rule.Technician,
		ContactChannel: &contact,
		Email:          &email,
		Category:       canonical,
	}
}

func sentinel(canonical string) domain.Assignment {
	return domain.Assignment{
		Technician: domain.SentinelTechnician,
		Category:   canonical,
	}
}
