package database

import (
	"context"
	"database/sql"
	"fmt"

	"rent_reminder_service/internal/domain/payment"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrNoPaymentPeriods indicates the room has no recorded payments yet, which
// is a normal state for a fresh occupancy (first cycle unpaid).
var ErrNoPaymentPeriods = fmt.Errorf("no payment periods for room")

type PostgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

func (r *PostgresPaymentRepository) LatestByRoom(ctx context.Context, roomID int64) (*payment.Period, error) {
	query := `SELECT id, room_id, tenant_name, amount, period_start, period_end, payment_date, created_at
               FROM payments WHERE room_id = $1 ORDER BY period_end DESC LIMIT 1`
	p := &payment.Period{}
	err := r.db.QueryRowContext(ctx, query, roomID).Scan(&p.ID, &p.RoomID, &p.TenantName, &p.Amount, &p.PeriodStart, &p.PeriodEnd, &p.PaymentDate, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoPaymentPeriods
		}
		return nil, fmt.Errorf("error getting latest payment for room: %w", err)
	}
	return p, nil
}

func (r *PostgresPaymentRepository) ListByRoom(ctx context.Context, roomID int64) ([]*payment.Period, error) {
	query := `SELECT id, room_id, tenant_name, amount, period_start, period_end, payment_date, created_at
               FROM payments WHERE room_id = $1 ORDER BY period_end DESC`

	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("error listing payments for room: %w", err)
	}
	defer rows.Close()

	periods := make([]*payment.Period, 0)
	for rows.Next() {
		p := &payment.Period{}
		if err := rows.Scan(&p.ID, &p.RoomID, &p.TenantName, &p.Amount, &p.PeriodStart, &p.PeriodEnd, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment period: %w", err)
		}
		periods = append(periods, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment periods: %w", err)
	}
	return periods, nil
}
