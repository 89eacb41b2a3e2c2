// internal/domain/billing/duedate.go
package billing

import (
	"errors"
	"time"
)

// ErrMissingAnchor is returned when a due date is requested for an occupancy
// without a move-in date.
var ErrMissingAnchor = errors.New("billing: missing anchor date")

// MaxCycleIterations caps the forward search at 100 years of monthly cycles.
// Hitting it means the payment ledger is inconsistent with the move-in date.
const MaxCycleIterations = 1200

// AddClampedMonths adds n calendar months to t. When the target month is
// shorter than t's day-of-month, the day is clamped to the last day of that
// month (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func AddClampedMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	// Day 0 of month+n+1 is the last day of month+n.
	lastDay := time.Date(year, month+time.Month(n)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month+time.Month(n), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// NextDueDate computes the next billing due date for an occupancy anchored at
// the tenant's move-in date. With nothing paid yet (zero lastPaidThrough) the
// first cycle is due at the anchor itself. Otherwise the result is the
// earliest cycle boundary on or after lastPaidThrough, where cycle k is the
// anchor plus k clamped calendar months.
//
// Every candidate is derived from the original anchor rather than by stepping
// the previous candidate forward, so a short month never permanently drags
// the day-of-month down (Jan 31 -> Feb 28 -> Mar 31, not Mar 28).
//
// The boolean reports that the search hit MaxCycleIterations; the returned
// date is then the last candidate and the caller should treat the ledger as
// suspect.
func NextDueDate(anchor, lastPaidThrough time.Time) (time.Time, bool, error) {
	if anchor.IsZero() {
		return time.Time{}, false, ErrMissingAnchor
	}
	if lastPaidThrough.IsZero() {
		return anchor, false, nil
	}
	for k := 0; k < MaxCycleIterations; k++ {
		candidate := AddClampedMonths(anchor, k)
		if !candidate.Before(lastPaidThrough) {
			return candidate, false, nil
		}
	}
	return AddClampedMonths(anchor, MaxCycleIterations), true, nil
}
