package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"playlist_tracker_bot/internal/domain/mail"
	"playlist_tracker_bot/internal/domain/schedule"
	"playlist_tracker_bot/internal/domain/sheet"
	"playlist_tracker_bot/internal/infra/artifact"
	"playlist_tracker_bot/internal/infra/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Thursday 2025-03-20; rows scheduled 2025-03-03 are long past the leeway.
var testToday = time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)

func reminderConfig() *config.AppConfig {
	return &config.AppConfig{
		PlaylistName: "Go Course",
		SheetName:    "Go Course Tracker",
		Participants: []string{"Alice", "Bob"},
		Contacts: map[string]string{
			"Alice": "alice@example.com",
			"Bob":   "bob@example.com",
		},
		ReminderDays:         map[time.Weekday]bool{time.Thursday: true},
		LeewayDays:           3,
		NotificationsEnabled: true,
	}
}

func trackerStore() *fakeStore {
	headers := []string{sheet.ColDay, sheet.ColDate, sheet.ColTitle, sheet.ColURL, "Alice", "Bob"}
	return &fakeStore{
		headers: headers,
		records: []sheet.Record{
			{RowIndex: 2, Values: map[string]string{
				sheet.ColDay: "Day 1", sheet.ColDate: "2025-03-03",
				sheet.ColTitle: "Lesson 1", "Alice": " Done ", "Bob": "",
			}},
			{RowIndex: 3, Values: map[string]string{
				sheet.ColDay: schedule.WeekendLabel, sheet.ColDate: "2025-03-08",
				sheet.ColTitle: schedule.WeekendTitle, "Alice": "", "Bob": "",
			}},
			{RowIndex: 4, Values: map[string]string{
				sheet.ColDay: "Day 2", sheet.ColDate: "2025-03-19",
				sheet.ColTitle: "Lesson 2", "Alice": "", "Bob": "in progress",
			}},
		},
		formulas: map[int]string{
			2: `=HYPERLINK("https://www.youtube.com/watch?v=dQw4w9WgXcQ", "Link")`,
		},
	}
}

func newTestReminder(t *testing.T, store *fakeStore, mailer *fakeMailer, cfg *config.AppConfig) *ReminderService {
	t.Helper()
	sendLog := artifact.NewSendLog(filepath.Join(t.TempDir(), "send.log"))
	svc := NewReminderService(store, mailer, sendLog, testLogger(), cfg)
	svc.Now = func() time.Time { return testToday }
	return svc
}

func TestReminderRunSendsReports(t *testing.T) {
	store := trackerStore()
	mailer := &fakeMailer{}
	svc := newTestReminder(t, store, mailer, reminderConfig())

	require.NoError(t, svc.Run(context.Background()))
	require.Len(t, mailer.sent, 2)

	byTo := map[string]mail.Message{}
	for _, m := range mailer.sent {
		byTo[m.To] = m
	}

	// Alice: Lesson 1 done, Lesson 2 still inside leeway (due 03-19).
	alice := byTo["alice@example.com"]
	assert.Equal(t, "Go Course - Progress Update", alice.Subject)
	assert.Contains(t, alice.Text, "1/2 videos done (50%)")
	assert.Contains(t, alice.Text, "all caught up")

	// Bob: Lesson 1 unmarked and 17 days past its date.
	bob := byTo["bob@example.com"]
	assert.Equal(t, "REMINDER - Go Course - Missed Deadline", bob.Subject)
	assert.Contains(t, bob.Text, "Lesson 1")
	assert.Contains(t, bob.Text, "17 days overdue")
	assert.Contains(t, bob.Text, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.Contains(t, bob.HTML, `href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"`)
	assert.NotContains(t, bob.Text, "Lesson 2")
}

func TestReminderGates(t *testing.T) {
	t.Run("notifications disabled", func(t *testing.T) {
		cfg := reminderConfig()
		cfg.NotificationsEnabled = false
		store := trackerStore()
		mailer := &fakeMailer{}
		svc := newTestReminder(t, store, mailer, cfg)

		require.NoError(t, svc.Run(context.Background()))
		assert.Zero(t, store.reads, "gate must fire before any sheet I/O")
		assert.Empty(t, mailer.sent)
	})

	t.Run("not a reminder day", func(t *testing.T) {
		cfg := reminderConfig()
		cfg.ReminderDays = map[time.Weekday]bool{time.Monday: true}
		store := trackerStore()
		mailer := &fakeMailer{}
		svc := newTestReminder(t, store, mailer, cfg)

		require.NoError(t, svc.Run(context.Background()))
		assert.Zero(t, store.reads)
		assert.Empty(t, mailer.sent)
	})
}

func TestReminderRecipientFailureDoesNotAbortBatch(t *testing.T) {
	store := trackerStore()
	mailer := &fakeMailer{failFor: map[string]error{
		"alice@example.com": &mail.SendError{Kind: mail.FailureAuth, Err: errors.New("535 bad credentials")},
	}}
	svc := newTestReminder(t, store, mailer, reminderConfig())

	require.NoError(t, svc.Run(context.Background()))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "bob@example.com", mailer.sent[0].To)
}

func TestReminderDryRunSendsNothing(t *testing.T) {
	cfg := reminderConfig()
	cfg.DryRun = true
	store := trackerStore()
	mailer := &fakeMailer{}
	svc := newTestReminder(t, store, mailer, cfg)

	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, mailer.sent)
	assert.NotZero(t, store.reads, "dry run still reads the sheet")
}

func TestReminderSkipsParticipantWithoutContact(t *testing.T) {
	cfg := reminderConfig()
	cfg.Participants = append(cfg.Participants, "Carol")
	store := trackerStore()
	for i := range store.records {
		store.records[i].Values["Carol"] = ""
	}
	mailer := &fakeMailer{}
	svc := newTestReminder(t, store, mailer, cfg)

	require.NoError(t, svc.Run(context.Background()))
	assert.Len(t, mailer.sent, 2)
}

func TestReminderMalformedRowsAreRecovered(t *testing.T) {
	store := trackerStore()
	store.records[0].Values[sheet.ColDate] = "not-a-date"
	// Lesson 2 becomes the only eligible row, and its formula is garbage.
	store.records[2].Values[sheet.ColDate] = "2025-03-10"
	store.formulas[4] = "plain text, not a formula"
	mailer := &fakeMailer{}
	svc := newTestReminder(t, store, mailer, reminderConfig())

	require.NoError(t, svc.Run(context.Background()))
	require.Len(t, mailer.sent, 2)
	for _, m := range mailer.sent {
		assert.Contains(t, m.Text, "Lesson 2")
		assert.NotContains(t, m.Text, "Lesson 1")
	}
}

func TestReminderNoEligibleRows(t *testing.T) {
	store := trackerStore()
	store.records = nil
	mailer := &fakeMailer{}
	svc := newTestReminder(t, store, mailer, reminderConfig())

	require.NoError(t, svc.Run(context.Background()))
	assert.Empty(t, mailer.sent)
}
