package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CategoryAll is the wildcard category matched by catch-all rules.
const CategoryAll = "All"

// Weekday enumerates days of the week, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday parses a short day name such as "Mon".
func ParseWeekday(name string) (Weekday, error) {
	for i, candidate := range weekdayNames {
		if strings.EqualFold(candidate, name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// ClockTime is a minute-precision time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a "HH:MM" string.
func ParseClockTime(value string) (ClockTime, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid time %q, want HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time %q: %w", value, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time %q: %w", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("time %q out of range", value)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ScheduleRule describes one recurring weekly availability window for a
// technician together with the categories that window covers.
type ScheduleRule struct {
	Technician     string
	ContactChannel string
	Email          string
	Categories     []string
	DayStart       Weekday
	DayEnd         Weekday
	TimeStart      ClockTime
	TimeEnd        ClockTime
}

// HasCategory reports whether the rule covers the given canonical category.
func (r ScheduleRule) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// IsCatchAll reports whether the rule carries the "All" wildcard.
func (r ScheduleRule) IsCatchAll() bool {
	return r.HasCategory(CategoryAll)
}

// Roster is the rule table for one poll cycle. The rule order is the
// document order of the roster file and is significant: earlier rules win
// deterministic selections.
type Roster struct {
	Rules     []ScheduleRule
	Overrides map[string]string
}
