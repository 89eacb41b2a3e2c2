package database

import (
	"context"
	"database/sql"
	"fmt"

	"rent_reminder_service/internal/domain/room"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrRoomNotFound = fmt.Errorf("room not found")

type PostgresRoomRepository struct {
	db *sql.DB
}

func NewPostgresRoomRepository(db *sql.DB) *PostgresRoomRepository {
	return &PostgresRoomRepository{db: db}
}

func (r *PostgresRoomRepository) GetByID(ctx context.Context, id int64) (*room.Room, error) {
	query := `SELECT id, room_number, status, tenant_name, occupied_at, price, created_at, updated_at
               FROM rooms WHERE id = $1`
	rm := &room.Room{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rm.ID, &rm.RoomNumber, &rm.Status, &rm.TenantName, &rm.OccupiedAt, &rm.MonthlyPrice, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error getting room by ID: %w", err)
	}
	return rm, nil
}

func (r *PostgresRoomRepository) ListOccupied(ctx context.Context) ([]*room.Room, error) {
	query := `SELECT id, room_number, status, tenant_name, occupied_at, price, created_at, updated_at
               FROM rooms WHERE status = $1 ORDER BY room_number`

	rows, err := r.db.QueryContext(ctx, query, room.StatusOccupied)
	if err != nil {
		return nil, fmt.Errorf("error listing occupied rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*room.Room, 0)
	for rows.Next() {
		rm := &room.Room{}
		if err := rows.Scan(&rm.ID, &rm.RoomNumber, &rm.Status, &rm.TenantName, &rm.OccupiedAt, &rm.MonthlyPrice, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning occupied room: %w", err)
		}
		rooms = append(rooms, rm)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating occupied rooms: %w", err)
	}
	return rooms, nil
}
