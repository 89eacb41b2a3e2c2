package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rent_reminder_service/internal/app"
	"rent_reminder_service/internal/infra/config"
	idb "rent_reminder_service/internal/infra/database"
	"rent_reminder_service/internal/infra/logger"
	"rent_reminder_service/internal/infra/scheduler"
	"rent_reminder_service/internal/infra/webpush"
)

const manualRunTimeout = 5 * time.Minute

func main() {
	fmt.Println("Rent Reminder Service starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Timezone: %s", cfg.LogLevel, cfg.Environment, cfg.Timezone)

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("FATAL: Unknown timezone %q: %v", cfg.Timezone, err)
	}

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	roomRepo := idb.NewPostgresRoomRepository(db)
	paymentRepo := idb.NewPostgresPaymentRepository(db)
	subscriptionRepo := idb.NewPostgresSubscriptionRepository(db)
	log.Info("Repositories initialized.")

	// Initialize Web Push transport and Dispatcher
	pushClient := webpush.NewClient(cfg.VapidSubject, cfg.VapidPublicKey, cfg.VapidPrivateKey)
	dispatchService := app.NewDispatchService(subscriptionRepo, pushClient, log.WithField("component", "dispatcher"))
	log.Info("Notification dispatcher initialized.")

	// Initialize ReminderService
	reminderService := app.NewReminderService(roomRepo, paymentRepo, dispatchService, log.WithField("component", "reminder"))
	log.Info("Reminder service initialized.")

	// Initialize and start the daily scheduler
	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		log.WithField("component", "scheduler"),
		cfg.CronSpecReminder,
		location,
	)
	if err := reminderScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not schedule reminder job: %v", err)
	}

	// SIGUSR1 runs one manual pass with the widened due-soon window, for
	// operators who want the reminder now rather than at 09:00.
	manual := make(chan os.Signal, 1)
	signal.Notify(manual, syscall.SIGUSR1)
	go func() {
		for range manual {
			log.Info("Manual reminder trigger received (SIGUSR1).")
			ctx, cancel := context.WithTimeout(context.Background(), manualRunTimeout)
			if err := reminderService.CheckOverdueAndNotify(ctx, true); err != nil {
				log.WithError(err).Error("Manual reminder pass failed.")
			}
			cancel()
		}
	}()

	log.Info("Application setup complete. Scheduler is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	reminderScheduler.Stop()
	// db.Close() is handled by defer
	log.Info("Application shut down gracefully.")
}
