package database

import (
	"context"
	"database/sql"
	"fmt"

	"rent_reminder_service/internal/domain/subscription"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrSubscriptionNotFound = fmt.Errorf("push subscription not found")

type PostgresSubscriptionRepository struct {
	db *sql.DB
}

func NewPostgresSubscriptionRepository(db *sql.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// Create registers a subscription. Endpoints are unique: re-registering an
// existing endpoint is a no-op so a client refreshing its service worker
// does not produce duplicate rows.
func (r *PostgresSubscriptionRepository) Create(ctx context.Context, s *subscription.PushSubscription) error {
	query := `INSERT INTO push_subscriptions (user_id, endpoint, keys_p256dh, keys_auth)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (endpoint) DO NOTHING
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, s.UserID, s.Endpoint, s.P256dhKey, s.AuthKey).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			// Conflict path: the endpoint was already registered.
			return nil
		}
		return fmt.Errorf("error creating push subscription: %w", err)
	}
	return nil
}

func (r *PostgresSubscriptionRepository) List(ctx context.Context) ([]*subscription.PushSubscription, error) {
	query := `SELECT id, user_id, endpoint, keys_p256dh, keys_auth, created_at
               FROM push_subscriptions ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]*subscription.PushSubscription, 0)
	for rows.Next() {
		s := &subscription.PushSubscription{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dhKey, &s.AuthKey, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning push subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating push subscriptions: %w", err)
	}
	return subs, nil
}

// DeleteByID removes a subscription. Deleting a row that is already gone is
// not an error, which keeps cleanup idempotent under overlapping runs.
func (r *PostgresSubscriptionRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM push_subscriptions WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting push subscription: %w", err)
	}
	return nil
}
