// internal/app/dispatch_service.go
package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"rent_reminder_service/internal/domain/push"
	"rent_reminder_service/internal/domain/subscription"

	"github.com/sirupsen/logrus"
)

// Message is the aggregate notification shown on operator devices. It is
// serialized as-is into the Web Push payload consumed by the service worker.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

// DispatchResult is the per-run delivery accounting, kept for logs only; no
// caller branches on it.
type DispatchResult struct {
	Delivered int
	Removed   int // subscriptions deleted because the endpoint is gone
	Failed    int
}

// Dispatcher fans one message out to every registered subscription. It never
// reports failure to the caller: a broken subscriber must not be able to
// fail the reminder run that triggered the dispatch.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) DispatchResult
}

// DispatchServiceImpl implements Dispatcher over the subscription registry
// and a push transport client.
type DispatchServiceImpl struct {
	subRepo    subscription.Repository
	pushClient push.Client
	logger     logrus.FieldLogger
}

func NewDispatchService(
	sr subscription.Repository,
	pc push.Client,
	logger logrus.FieldLogger,
) *DispatchServiceImpl {
	return &DispatchServiceImpl{
		subRepo:    sr,
		pushClient: pc,
		logger:     logger,
	}
}

// Dispatch delivers msg to every subscription concurrently. Deliveries are
// independent: one slow or failing endpoint never blocks or aborts the
// others. An endpoint the transport reports as permanently gone is deleted
// from the registry; any other failure is logged and dropped, with no retry
// inside the run.
func (s *DispatchServiceImpl) Dispatch(ctx context.Context, msg Message) DispatchResult {
	var result DispatchResult

	subs, err := s.subRepo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list push subscriptions; dispatch skipped.")
		return result
	}
	if len(subs) == 0 {
		s.logger.Info("No push subscriptions registered; nothing to dispatch.")
		return result
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode notification payload; dispatch skipped.")
		return result
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub *subscription.PushSubscription) {
			defer wg.Done()

			sendErr := s.pushClient.Send(ctx, sub, payload)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case sendErr == nil:
				result.Delivered++
			case errors.Is(sendErr, push.ErrSubscriptionGone):
				s.logger.WithField("subscription_id", sub.ID).Info("Push endpoint permanently gone. Removing subscription.")
				if delErr := s.subRepo.DeleteByID(ctx, sub.ID); delErr != nil {
					s.logger.WithError(delErr).WithField("subscription_id", sub.ID).Error("Failed to delete dead subscription.")
				}
				result.Removed++
			default:
				s.logger.WithError(sendErr).WithField("subscription_id", sub.ID).Warn("Push delivery failed; will not retry this run.")
				result.Failed++
			}
		}(sub)
	}
	wg.Wait()

	s.logger.WithFields(logrus.Fields{
		"delivered": result.Delivered,
		"removed":   result.Removed,
		"failed":    result.Failed,
	}).Info("Notification dispatch complete.")
	return result
}
