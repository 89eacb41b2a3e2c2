package room

import (
	"database/sql"
	"time"
)

// Status is the occupancy state of a room.
type Status string

const (
	StatusVacant   Status = "vacant"
	StatusOccupied Status = "occupied"
)

// Room is a snapshot of one rental unit as owned by the room registry.
// OccupiedAt is the tenant's move-in date and is set iff the room is
// occupied; it anchors every billing cycle for the occupancy.
type Room struct {
	ID           int64
	RoomNumber   string
	Status       Status
	TenantName   sql.NullString
	OccupiedAt   sql.NullTime
	MonthlyPrice int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
