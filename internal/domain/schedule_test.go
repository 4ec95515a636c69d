package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("Mon")
	require.NoError(t, err)
	assert.Equal(t, Monday, day)

	day, err = ParseWeekday("sun")
	require.NoError(t, err)
	assert.Equal(t, Sunday, day)

	_, err = ParseWeekday("Monday")
	assert.Error(t, err)
	_, err = ParseWeekday("")
	assert.Error(t, err)
}

func TestParseClockTime(t *testing.T) {
	clock, err := ParseClockTime("16:30")
	require.NoError(t, err)
	assert.Equal(t, 16, clock.Hour)
	assert.Equal(t, 30, clock.Minute)
	assert.Equal(t, 990, clock.Minutes())
	assert.Equal(t, "16:30", clock.String())

	for _, bad := range []string{"24:00", "12:60", "12", "ab:cd", "-1:00"} {
		_, err := ParseClockTime(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestScheduleRuleCategories(t *testing.T) {
	rule := ScheduleRule{Categories: []string{"Level 1", "Hardware"}}
	assert.True(t, rule.HasCategory("Hardware"))
	assert.False(t, rule.HasCategory("Network"))
	assert.False(t, rule.IsCatchAll())

	catchAll := ScheduleRule{Categories: []string{CategoryAll}}
	assert.True(t, catchAll.IsCatchAll())
}

func TestAssignmentSentinel(t *testing.T) {
	assert.True(t, Assignment{Technician: SentinelTechnician}.IsSentinel())
	assert.False(t, Assignment{Technician: "TechA"}.IsSentinel())
}

func TestTicketKey(t *testing.T) {
	assert.Equal(t, "95105275", Ticket{ID: 95105275}.Key())
}
