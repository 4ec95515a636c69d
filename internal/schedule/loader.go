package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spec-kit/ticket-router/internal/domain"
	apperrors "github.com/spec-kit/ticket-router/pkg/util"
)

// rosterDocument is the on-disk shape of the technician roster. Technicians
// are an ordered array: document order defines rule priority.
type rosterDocument struct {
	Technicians       []technicianEntry `json:"technicians"`
	CategoryOverrides map[string]string `json:"category_overrides"`
}

type technicianEntry struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	TeamsMention string          `json:"teams_mention"`
	Schedules    []scheduleEntry `json:"schedules"`
}

type scheduleEntry struct {
	Days       string   `json:"days"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	Categories []string `json:"categories"`
}

// Loader reads the roster document freshly each poll cycle.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given roster file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the roster file path.
func (l *Loader) Path() string {
	return l.path
}

// Load parses the roster file into a flat, ordered rule table. Any malformed
// entry fails the whole load: a partially applied roster must never route
// tickets.
func (l *Loader) Load() (*domain.Roster, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, apperrors.NewConfigError("read roster file", err)
	}

	var doc rosterDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewConfigError("parse roster file", err)
	}
	if len(doc.Technicians) == 0 {
		return nil, apperrors.NewConfigError("roster has no technicians", nil)
	}

	roster := &domain.Roster{
		Overrides: doc.CategoryOverrides,
	}
	for _, tech := range doc.Technicians {
		if strings.TrimSpace(tech.Name) == "" {
			return nil, apperrors.NewConfigError("technician entry missing name", nil)
		}
		for i, entry := range tech.Schedules {
			rule, err := buildRule(tech, entry)
			if err != nil {
				return nil, apperrors.NewConfigError(
					fmt.Sprintf("technician %q schedule %d", tech.Name, i), err)
			}
			roster.Rules = append(roster.Rules, rule)
		}
	}
	if len(roster.Rules) == 0 {
		return nil, apperrors.NewConfigError("roster has no schedule entries", nil)
	}
	return roster, nil
}

func buildRule(tech technicianEntry, entry scheduleEntry) (domain.ScheduleRule, error) {
	dayStart, dayEnd, err := parseDayRange(entry.Days)
	if err != nil {
		return domain.ScheduleRule{}, err
	}
	timeStart, err := domain.ParseClockTime(entry.StartTime)
	if err != nil {
		return domain.ScheduleRule{}, err
	}
	timeEnd, err := domain.ParseClockTime(entry.EndTime)
	if err != nil {
		return domain.ScheduleRule{}, err
	}
	if len(entry.Categories) == 0 {
		return domain.ScheduleRule{}, fmt.Errorf("schedule entry has no categories")
	}
	return domain.ScheduleRule{
		Technician:     tech.Name,
		ContactChannel: tech.TeamsMention,
		Email:          tech.Email,
		Categories:     entry.Categories,
		DayStart:       dayStart,
		DayEnd:         dayEnd,
		TimeStart:      timeStart,
		TimeEnd:        timeEnd,
	}, nil
}

// parseDayRange accepts "Mon-Fri" style ranges or a single day name. A range
// whose end precedes its start wraps across the week boundary.
func parseDayRange(days string) (domain.Weekday, domain.Weekday, error) {
	parts := strings.Split(strings.TrimSpace(days), "-")
	switch len(parts) {
	case 1:
		day, err := domain.ParseWeekday(parts[0])
		if err != nil {
			return 0, 0, err
		}
		return day, day, nil
	case 2:
		start, err := domain.ParseWeekday(parts[0])
		if err != nil {
			return 0, 0, err
		}
		end, err := domain.ParseWeekday(parts[1])
		if err != nil {
			return 0, 0, err
		}
		return start, end, nil
	default:
		return 0, 0, fmt.Errorf("invalid day range %q", days)
	}
}
