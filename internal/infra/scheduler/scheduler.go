package scheduler

import (
	"context"
	"time"

	"rent_reminder_service/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// runTimeout bounds one scheduled pass. A daily job that takes longer than
// this is stuck on the database or the push service.
const runTimeout = 5 * time.Minute

// ReminderScheduler runs the daily reminder pass on a cron schedule
// evaluated in the configured timezone (reference deployment: Asia/Jakarta,
// 09:00 daily).
type ReminderScheduler struct {
	cronEngine      *cron.Cron
	reminderService app.ReminderService
	logger          logrus.FieldLogger
	cronSpec        string
}

func NewReminderScheduler(
	rs app.ReminderService,
	logger logrus.FieldLogger,
	cronSpec string, // e.g. "0 9 * * *"
	location *time.Location,
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:      cron.New(cron.WithLocation(location)),
		reminderService: rs,
		logger:          logger,
		cronSpec:        cronSpec,
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily payment reminder pass.")
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := s.reminderService.CheckOverdueAndNotify(ctx, false); err != nil {
			s.logger.WithError(err).Error("Scheduled reminder pass failed.")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Payment reminder cron job scheduled.")
	return nil
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Waits for a running job to finish.
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
