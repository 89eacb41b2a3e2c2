// internal/infra/webpush/client.go
package webpush

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"rent_reminder_service/internal/domain/push"
	"rent_reminder_service/internal/domain/subscription"

	webpushgo "github.com/SherClockHolmes/webpush-go"
)

// Messages older than this are useless to the operator; let the push service
// drop them instead of delivering a stale reminder.
const defaultTTLSeconds = 12 * 60 * 60

// Client implements the push.Client interface using the
// github.com/SherClockHolmes/webpush-go library (VAPID Web Push).
type Client struct {
	subject         string
	vapidPublicKey  string
	vapidPrivateKey string
	timeout         time.Duration
}

func NewClient(subject, vapidPublicKey, vapidPrivateKey string) *Client {
	return &Client{
		subject:         subject,
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		timeout:         30 * time.Second,
	}
}

// Send delivers one payload to one subscription endpoint. A 404 or 410 from
// the push service means the browser has dropped the subscription for good
// and is reported as push.ErrSubscriptionGone; every other non-2xx status is
// an ordinary delivery failure.
func (c *Client) Send(ctx context.Context, sub *subscription.PushSubscription, payload []byte) error {
	resp, err := webpushgo.SendNotificationWithContext(ctx, payload, &webpushgo.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpushgo.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpushgo.Options{
		Subscriber:      c.subject,
		VAPIDPublicKey:  c.vapidPublicKey,
		VAPIDPrivateKey: c.vapidPrivateKey,
		TTL:             defaultTTLSeconds,
		HTTPClient:      &http.Client{Timeout: c.timeout},
	})
	if err != nil {
		return fmt.Errorf("web push send failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return push.ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
