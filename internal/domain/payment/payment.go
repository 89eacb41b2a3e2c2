package payment

import (
	"time"
)

// Period is one paid billing interval in a room's append-only payment
// ledger. End is never before Start; the reminder core only ever reads the
// period with the greatest End per room.
type Period struct {
	ID          int64
	RoomID      int64
	TenantName  string
	Amount      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	PaymentDate time.Time
	CreatedAt   time.Time
}
