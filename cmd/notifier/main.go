package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"playlist_tracker_bot/internal/app"
	"playlist_tracker_bot/internal/infra/artifact"
	"playlist_tracker_bot/internal/infra/config"
	"playlist_tracker_bot/internal/infra/logger"
	"playlist_tracker_bot/internal/infra/scheduler"
	"playlist_tracker_bot/internal/infra/sheets"
	"playlist_tracker_bot/internal/infra/smtp"
)

func main() {
	daemon := flag.Bool("daemon", false, "keep running and execute the reminder pass on CRON_SPEC_REMINDER")
	flag.Parse()

	fmt.Println("Reminder Notifier starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. Sheet: %q, LeewayDays: %d, DryRun: %t",
		cfg.SheetName, cfg.LeewayDays, cfg.DryRun)

	ctx := context.Background()

	store, err := sheets.NewClient(ctx, cfg.CredentialsFile, cfg.SheetName)
	if err != nil {
		log.Fatalf("FATAL: Could not open spreadsheet: %v", err)
	}
	log.Info("Spreadsheet store initialized.")

	mailer := smtp.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	sendLog := artifact.NewSendLog(cfg.SendLogFile)
	service := app.NewReminderService(store, mailer, sendLog, log, cfg)

	if !*daemon {
		if err := service.Run(ctx); err != nil {
			log.Fatalf("FATAL: Reminder run failed: %v", err)
		}
		return
	}

	reminderScheduler := scheduler.NewReminderScheduler(service.Run, log, cfg.CronSpecReminder)
	if err := reminderScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start reminder scheduler: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	reminderScheduler.Stop()
	log.Info("Reminder Notifier shut down gracefully.")
}
