package subscription

import (
	"context"
)

// Repository defines operations on the push subscription registry.
// Registration happens in the HTTP layer that owns client onboarding; the
// reminder core only lists subscriptions and deletes the ones whose
// endpoints are permanently gone. DeleteByID must be idempotent: deleting an
// already-deleted subscription is a no-op, which is what makes overlapping
// reminder runs safe without a lock.
type Repository interface {
	Create(ctx context.Context, sub *PushSubscription) error
	List(ctx context.Context) ([]*PushSubscription, error)
	DeleteByID(ctx context.Context, id int64) error
}
