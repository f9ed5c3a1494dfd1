package app

import (
	"context"
	"fmt"
	"time"

	"playlist_tracker_bot/internal/domain/mail"
	"playlist_tracker_bot/internal/domain/schedule"
	"playlist_tracker_bot/internal/domain/sheet"
	"playlist_tracker_bot/internal/infra/artifact"
	"playlist_tracker_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// ReminderService reads the tracker sheet, classifies every participant row
// and mails each participant a progress report. It never mutates status
// cells.
type ReminderService struct {
	store   sheet.Store
	mailer  mail.Client
	sendLog *artifact.SendLog
	logger  *logrus.Logger
	cfg     *config.AppConfig

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewReminderService(store sheet.Store, mailer mail.Client, sendLog *artifact.SendLog, logger *logrus.Logger, cfg *config.AppConfig) *ReminderService {
	return &ReminderService{
		store:   store,
		mailer:  mailer,
		sendLog: sendLog,
		logger:  logger,
		cfg:     cfg,
		Now:     time.Now,
	}
}

// Run executes one full reminder pass. Both gates fire before any sheet I/O.
func (s *ReminderService) Run(ctx context.Context) error {
	if !s.cfg.NotificationsEnabled {
		s.logger.Info("Notifications are disabled. Nothing to do.")
		return nil
	}
	today := s.Now()
	if !s.cfg.ReminderDays[today.Weekday()] {
		s.logger.Infof("Today (%s) is not a reminder day. Nothing to do.", today.Weekday())
		return nil
	}

	headers, err := s.store.Headers(ctx)
	if err != nil {
		return fmt.Errorf("could not read sheet headers: %w", err)
	}
	urlCol := 0
	for i, h := range headers {
		if h == sheet.ColURL {
			urlCol = i + 1 // 1-based for cell addressing
			break
		}
	}
	if urlCol == 0 {
		return fmt.Errorf("sheet has no %q column", sheet.ColURL)
	}

	records, err := s.store.Records(ctx)
	if err != nil {
		return fmt.Errorf("could not read sheet rows: %w", err)
	}
	s.logger.Infof("Read %d rows from sheet %q.", len(records), s.cfg.SheetName)

	progress := s.classifyRecords(ctx, records, urlCol, today)

	sent, failed := 0, 0
	for _, p := range s.cfg.Participants {
		pr := progress[p]
		if pr.Eligible == 0 {
			s.logger.Infof("Participant %s has no eligible rows. Skipping report.", p)
			continue
		}
		address, ok := s.cfg.Contacts[p]
		if !ok {
			s.logger.Warnf("Participant %s has no contact address. Skipping report.", p)
			continue
		}

		msg, err := ComposeReport(p, s.cfg.PlaylistName, pr, today)
		if err != nil {
			s.logger.Errorf("Could not compose report for %s: %v", p, err)
			failed++
			continue
		}
		msg.To = address

		if s.cfg.DryRun {
			s.logger.Infof("DRY RUN: would mail %s <%s>: %q (%d%% done, %d overdue)",
				p, address, msg.Subject, int(pr.CompletionPercent()), len(pr.Overdue))
			continue
		}

		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Errorf("Could not send report to %s <%s> (%s failure): %v",
				p, address, mail.Classify(err), err)
			s.recordOutcome(p, fmt.Sprintf("FAILED (%s)", mail.Classify(err)))
			failed++
			continue
		}
		s.logger.Infof("Report sent to %s <%s>.", p, address)
		s.recordOutcome(p, "SENT")
		sent++
	}

	if s.cfg.DryRun {
		s.logger.Info("DRY RUN: reminder pass complete, no mail sent.")
		return nil
	}
	s.logger.Infof("Reminder pass complete: %d sent, %d failed.", sent, failed)
	return nil
}

// classifyRecords folds every non-weekend record into per-participant
// progress. Malformed dates skip the row; malformed URL formulas degrade to
// an empty URL. Both are logged, neither aborts the pass.
func (s *ReminderService) classifyRecords(ctx context.Context, records []sheet.Record, urlCol int, today time.Time) map[string]*schedule.Progress {
	progress := make(map[string]*schedule.Progress, len(s.cfg.Participants))
	for _, p := range s.cfg.Participants {
		progress[p] = &schedule.Progress{}
	}

	for _, rec := range records {
		if rec.Values[sheet.ColDay] == schedule.WeekendLabel {
			continue
		}
		scheduled, err := time.Parse(schedule.DateLayout, rec.Values[sheet.ColDate])
		if err != nil {
			s.logger.Warnf("Row %d has malformed date %q. Skipping row.", rec.RowIndex, rec.Values[sheet.ColDate])
			continue
		}

		urlFetched := false
		url := ""
		for _, p := range s.cfg.Participants {
			raw := rec.Values[p]
			state := schedule.Classify(raw, scheduled, today, s.cfg.LeewayDays)

			item := schedule.OverdueItem{}
			if state == schedule.StateOverdue {
				if !urlFetched {
					url = s.resolveURL(ctx, rec.RowIndex, urlCol)
					urlFetched = true
				}
				item = schedule.OverdueItem{
					Title:     rec.Values[sheet.ColTitle],
					Date:      scheduled,
					URL:       url,
					RawStatus: raw,
				}
			}
			progress[p].Record(state, item)
		}
	}
	return progress
}

// resolveURL reads the stored hyperlink formula of the URL cell and extracts
// the raw URL. Failures are recovered with an empty URL.
func (s *ReminderService) resolveURL(ctx context.Context, row, col int) string {
	formula, err := s.store.CellFormula(ctx, row, col)
	if err != nil {
		s.logger.Warnf("Could not read URL formula of row %d: %v", row, err)
		return ""
	}
	url, err := schedule.ExtractURL(formula)
	if err != nil {
		s.logger.Warnf("Could not extract URL from row %d: %v", row, err)
		return ""
	}
	return url
}

func (s *ReminderService) recordOutcome(participant, outcome string) {
	if err := s.sendLog.Append(participant, outcome); err != nil {
		s.logger.Warnf("Could not record send outcome for %s: %v", participant, err)
	}
}
