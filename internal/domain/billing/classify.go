// internal/domain/billing/classify.go
package billing

import (
	"math"
	"time"
)

// DueSoonWindowDays is the width of the "due soon" window before the due date.
const DueSoonWindowDays = 7

// DueState is the derived payment standing of one occupancy at a single
// instant. It is recomputed on every evaluation and never stored.
type DueState struct {
	NextDueDate       time.Time
	IsOverdue         bool
	IsDueSoon         bool
	IsSeverelyOverdue bool
	DaysRemaining     int // negative once overdue
}

// Classify evaluates a due date against the given instant. Being exactly at
// the due date is not overdue; severely overdue means the due date lies more
// than one further clamped month in the past, which is the escalation
// threshold for forced action.
func Classify(dueDate, now time.Time) DueState {
	overdue := now.After(dueDate)
	daysRemaining := int(math.Ceil(dueDate.Sub(now).Hours() / 24))
	return DueState{
		NextDueDate:       dueDate,
		IsOverdue:         overdue,
		IsDueSoon:         !overdue && daysRemaining >= 0 && daysRemaining <= DueSoonWindowDays,
		IsSeverelyOverdue: now.After(AddClampedMonths(dueDate, 1)),
		DaysRemaining:     daysRemaining,
	}
}
