// internal/app/reminder_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rent_reminder_service/internal/domain/billing"
	"rent_reminder_service/internal/domain/payment"
	"rent_reminder_service/internal/domain/room"
	idb "rent_reminder_service/internal/infra/database"

	"github.com/sirupsen/logrus"
)

const (
	messageTitle = "Indekos Manager"
	messageIcon  = "/logo.svg"
)

// ReminderService runs one full reminder pass: classify every occupied room
// against a single instant and push at most one aggregate notification.
type ReminderService interface {
	// CheckOverdueAndNotify executes the pass. manual widens the due-soon
	// window from "exactly 7 days out" to "1..7 days out": the daily cron
	// fires once per cycle per room, while an operator asking explicitly
	// gets the whole window.
	CheckOverdueAndNotify(ctx context.Context, manual bool) error
}

// RoomSummary identifies one room inside an overdue or due-soon set.
type RoomSummary struct {
	RoomNumber string
	TenantName string
}

// ReminderServiceImpl implements ReminderService.
type ReminderServiceImpl struct {
	roomRepo    room.Repository
	paymentRepo payment.Repository
	dispatcher  Dispatcher
	logger      logrus.FieldLogger
	now         func() time.Time
}

func NewReminderService(
	rr room.Repository,
	pr payment.Repository,
	d Dispatcher,
	logger logrus.FieldLogger,
) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		roomRepo:    rr,
		paymentRepo: pr,
		dispatcher:  d,
		logger:      logger,
		now:         time.Now,
	}
}

// CheckOverdueAndNotify fetches every occupied room, derives each room's due
// state from its move-in anchor and latest paid period, and partitions the
// results. The clock is sampled exactly once so all rooms in a run see the
// same "now". A registry or ledger fetch failure aborts the run; the next
// trigger is an independent attempt. There is no reentrancy guard:
// overlapping runs only repeat reads and idempotent deletes.
func (s *ReminderServiceImpl) CheckOverdueAndNotify(ctx context.Context, manual bool) error {
	s.logger.WithField("manual", manual).Info("Running payment reminder pass.")

	rooms, err := s.roomRepo.ListOccupied(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list occupied rooms; aborting reminder pass.")
		return fmt.Errorf("failed to list occupied rooms: %w", err)
	}

	now := s.now()
	var overdueRooms, dueSoonRooms []RoomSummary
	severelyOverdue := 0

	for _, r := range rooms {
		if !r.OccupiedAt.Valid {
			// Occupied without a move-in date violates the registry's own
			// invariant; skip the room rather than poison the whole run.
			s.logger.WithField("room", r.RoomNumber).Warn("Occupied room has no move-in date; skipping classification.")
			continue
		}

		var lastPaidThrough time.Time
		latest, err := s.paymentRepo.LatestByRoom(ctx, r.ID)
		switch {
		case err == nil:
			lastPaidThrough = latest.PeriodEnd
		case errors.Is(err, idb.ErrNoPaymentPeriods):
			// First cycle: nothing paid yet, due date is the anchor.
		default:
			s.logger.WithError(err).WithField("room", r.RoomNumber).Error("Failed to fetch latest payment; aborting reminder pass.")
			return fmt.Errorf("failed to fetch latest payment for room %s: %w", r.RoomNumber, err)
		}

		dueDate, capHit, err := billing.NextDueDate(r.OccupiedAt.Time, lastPaidThrough)
		if err != nil {
			s.logger.WithError(err).WithField("room", r.RoomNumber).Warn("Cannot compute due date; skipping room.")
			continue
		}
		if capHit {
			s.logger.WithFields(logrus.Fields{
				"room":              r.RoomNumber,
				"occupied_at":       r.OccupiedAt.Time.Format("2006-01-02"),
				"last_paid_through": lastPaidThrough.Format("2006-01-02"),
			}).Warn("Due date search hit its iteration cap; payment ledger data looks inconsistent.")
		}

		state := billing.Classify(dueDate, now)
		summary := RoomSummary{RoomNumber: r.RoomNumber, TenantName: r.TenantName.String}

		if state.IsOverdue {
			overdueRooms = append(overdueRooms, summary)
			if state.IsSeverelyOverdue {
				severelyOverdue++
				s.logger.WithFields(logrus.Fields{
					"room":     r.RoomNumber,
					"tenant":   summary.TenantName,
					"due_date": dueDate.Format("2006-01-02"),
				}).Warn("Room is more than one full cycle overdue.")
			}
			continue
		}

		// Daily cron notifies exactly at the 7-day mark so each cycle
		// produces one heads-up instead of seven.
		dueSoon := state.DaysRemaining == billing.DueSoonWindowDays
		if manual {
			dueSoon = state.DaysRemaining > 0 && state.DaysRemaining <= billing.DueSoonWindowDays
		}
		if dueSoon {
			dueSoonRooms = append(dueSoonRooms, summary)
		}
	}

	if len(overdueRooms) == 0 && len(dueSoonRooms) == 0 {
		s.logger.Info("No overdue or due soon rooms found.")
		return nil
	}

	s.logger.WithFields(logrus.Fields{
		"due_soon":         len(dueSoonRooms),
		"overdue":          len(overdueRooms),
		"severely_overdue": severelyOverdue,
		"due_soon_rooms":   roomNumbers(dueSoonRooms),
		"overdue_rooms":    roomNumbers(overdueRooms),
	}).Info("Reminder pass classified rooms; dispatching aggregate notification.")

	s.dispatcher.Dispatch(ctx, Message{
		Title: messageTitle,
		Body:  buildBody(len(dueSoonRooms), len(overdueRooms)),
		Icon:  messageIcon,
	})
	return nil
}

func buildBody(dueSoon, overdue int) string {
	body := ""
	if dueSoon > 0 {
		body += fmt.Sprintf("%d rooms due soon. ", dueSoon)
	}
	if overdue > 0 {
		body += fmt.Sprintf("%d rooms OVERDUE!", overdue)
	}
	return body
}

func roomNumbers(rooms []RoomSummary) []string {
	numbers := make([]string, 0, len(rooms))
	for _, r := range rooms {
		numbers = append(numbers, r.RoomNumber)
	}
	return numbers
}
