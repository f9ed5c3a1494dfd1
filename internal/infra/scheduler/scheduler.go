package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler runs the reminder pass on a cron spec when the notifier
// is started in daemon mode. Each tick is the same run-to-completion pass a
// single invocation performs; the in-run gates still apply.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	run        func(ctx context.Context) error
	logger     *logrus.Logger
	cronSpec   string
}

func NewReminderScheduler(run func(ctx context.Context) error, logger *logrus.Logger, cronSpec string) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		run:        run,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for reminder run.")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.run(ctx); err != nil {
			s.logger.Errorf("Error during scheduled reminder run: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Infof("Reminder scheduler started with spec %q.", s.cronSpec)
	return nil
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Waits for a running job to finish.
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
