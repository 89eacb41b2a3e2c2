package room

import (
	"context"
)

// Repository defines the read operations the reminder core needs from the
// room registry. The registry itself (creation, tenant moves, pricing) is
// owned elsewhere; this core only consumes snapshots.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Room, error)
	ListOccupied(ctx context.Context) ([]*Room, error)
}
