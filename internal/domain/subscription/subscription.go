package subscription

import (
	"time"
)

// PushSubscription is one registered operator device endpoint for Web Push
// delivery. P256dhKey and AuthKey are the opaque client keys captured at
// registration time and are passed through to the transport untouched.
type PushSubscription struct {
	ID        int64
	UserID    int64
	Endpoint  string
	P256dhKey string
	AuthKey   string
	CreatedAt time.Time
}
