package schedule

import (
	"time"

	"github.com/spec-kit/ticket-router/internal/domain"
)

// Active reports whether the rule covers the given weekday and time of day.
// Day membership and time membership are checked independently: an overnight
// time range (end before start) spans midnight, but the day check always uses
// the current calendar day. Rosters must therefore list both days of an
// overnight shift in the rule's day range.
func Active(rule domain.ScheduleRule, day domain.Weekday, now domain.ClockTime) bool {
	return dayInRange(day, rule.DayStart, rule.DayEnd) && timeInRange(now, rule.TimeStart, rule.TimeEnd)
}

// At splits an instant into the weekday and clock time used for matching.
func At(t time.Time) (domain.Weekday, domain.ClockTime) {
	// time.Weekday counts from Sunday; the roster counts from Monday.
	day := domain.Weekday((int(t.Weekday()) + 6) % 7)
	return day, domain.ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func dayInRange(day, start, end domain.Weekday) bool {
	if start <= end {
		return day >= start && day <= end
	}
	// Wraparound range such as Sat-Tue covers [start, Sun] and [Mon, end].
	return day >= start || day <= end
}

func timeInRange(now, start, end domain.ClockTime) bool {
	n, s, e := now.Minutes(), start.Minutes(), end.Minutes()
	if s <= e {
		return n >= s && n <= e
	}
	// Overnight shift such as 16:30-01:30. Boundaries stay inclusive.
	return n >= s || n <= e
}
