package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_AtDueDateIsNotOverdue(t *testing.T) {
	due := date(2026, time.February, 10)

	state := Classify(due, due)

	assert.False(t, state.IsOverdue)
	assert.True(t, state.IsDueSoon)
	assert.False(t, state.IsSeverelyOverdue)
	assert.Equal(t, 0, state.DaysRemaining)
}

func TestClassify_JustPastDueDateIsOverdue(t *testing.T) {
	due := date(2026, time.February, 10)

	state := Classify(due, due.Add(time.Millisecond))

	assert.True(t, state.IsOverdue)
	assert.False(t, state.IsDueSoon)
	assert.False(t, state.IsSeverelyOverdue)
	assert.Equal(t, 0, state.DaysRemaining)
}

func TestClassify_DaysRemainingRoundsUpPartialDays(t *testing.T) {
	due := date(2026, time.February, 10)
	now := time.Date(2026, time.February, 5, 15, 0, 0, 0, time.UTC) // 4 days 9 hours before

	state := Classify(due, now)

	assert.Equal(t, 5, state.DaysRemaining)
	assert.True(t, state.IsDueSoon)
}

func TestClassify_DueSoonWindowUpperBound(t *testing.T) {
	due := date(2026, time.March, 8)

	assert.True(t, Classify(due, date(2026, time.March, 1)).IsDueSoon, "7 days out")
	assert.False(t, Classify(due, date(2026, time.February, 28)).IsDueSoon, "8 days out")
}

func TestClassify_SeverelyOverdueBoundary(t *testing.T) {
	due := date(2026, time.January, 15)
	threshold := AddClampedMonths(due, 1) // 2026-02-15

	atThreshold := Classify(due, threshold)
	assert.True(t, atThreshold.IsOverdue)
	assert.False(t, atThreshold.IsSeverelyOverdue, "exactly one cycle late is not yet severe")

	pastThreshold := Classify(due, threshold.Add(time.Second))
	assert.True(t, pastThreshold.IsOverdue)
	assert.True(t, pastThreshold.IsSeverelyOverdue)
}

func TestClassify_ScenarioNeverPaidSinceDecember(t *testing.T) {
	// Tenant moved in 2025-12-25 and never paid; evaluated 2026-02-05 the
	// room is more than one full cycle overdue.
	anchor := date(2025, time.December, 25)
	now := date(2026, time.February, 5)

	due, capHit, err := NextDueDate(anchor, time.Time{})
	require.NoError(t, err)
	require.False(t, capHit)
	assert.Equal(t, anchor, due)

	state := Classify(due, now)
	assert.True(t, state.IsOverdue)
	assert.True(t, state.IsSeverelyOverdue)
	assert.Equal(t, -42, state.DaysRemaining)
}

func TestClassify_ScenarioPaidThroughNextWeek(t *testing.T) {
	// Tenant moved in 2026-01-10 and paid one month; evaluated 2026-02-05
	// the room is due soon with five days remaining.
	anchor := date(2026, time.January, 10)
	now := date(2026, time.February, 5)

	due, capHit, err := NextDueDate(anchor, date(2026, time.February, 10))
	require.NoError(t, err)
	require.False(t, capHit)
	assert.Equal(t, date(2026, time.February, 10), due)

	state := Classify(due, now)
	assert.False(t, state.IsOverdue)
	assert.True(t, state.IsDueSoon)
	assert.Equal(t, 5, state.DaysRemaining)
}
