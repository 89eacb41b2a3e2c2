package push

import (
	"context"
	"errors"

	"rent_reminder_service/internal/domain/subscription"
)

// ErrSubscriptionGone reports that the push endpoint no longer exists
// (HTTP 404/410 from the push service). The subscription is dead and should
// be removed from the registry; retrying can never succeed.
var ErrSubscriptionGone = errors.New("push subscription gone")

// Client defines an interface for delivering one payload to one push
// subscription. This decouples the application services from the concrete
// Web Push library.
type Client interface {
	Send(ctx context.Context, sub *subscription.PushSubscription, payload []byte) error
}
