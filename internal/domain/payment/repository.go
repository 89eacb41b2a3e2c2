package payment

import (
	"context"
)

// Repository defines read access to the payment ledger.
type Repository interface {
	// LatestByRoom returns the period with the greatest end date recorded
	// for the room, or ErrNoPeriods (from the implementing package) when
	// the room has no payments yet.
	LatestByRoom(ctx context.Context, roomID int64) (*Period, error)
	ListByRoom(ctx context.Context, roomID int64) ([]*Period, error)
}
