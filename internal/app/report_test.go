package app

import (
	"testing"
	"time"

	"playlist_tracker_bot/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeReportCaughtUp(t *testing.T) {
	progress := &schedule.Progress{Eligible: 3, Done: 3}
	msg, err := ComposeReport("Alice", "Go Course", progress, testToday)
	require.NoError(t, err)

	assert.Equal(t, "Go Course - Progress Update", msg.Subject)
	assert.Contains(t, msg.Text, "Hello Alice")
	assert.Contains(t, msg.Text, "3/3 videos done (100%)")
	assert.Contains(t, msg.Text, "all caught up")
	assert.Contains(t, msg.HTML, "all caught up")
	assert.NotContains(t, msg.Text, "behind schedule")
}

func TestComposeReportOverdue(t *testing.T) {
	progress := &schedule.Progress{Eligible: 4, Done: 1}
	progress.Overdue = []schedule.OverdueItem{
		{
			Title: "Lesson 2",
			Date:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			URL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			Title: "Lesson 3",
			Date:  time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		},
	}

	msg, err := ComposeReport("Bob", "Go Course", progress, testToday)
	require.NoError(t, err)

	assert.Equal(t, "REMINDER - Go Course - Missed Deadline", msg.Subject)
	assert.Contains(t, msg.Text, "1/4 videos done (25%)")
	assert.Contains(t, msg.Text, "Lesson 2 (was due on 2025-03-10, 10 days overdue)")
	assert.Contains(t, msg.Text, "Lesson 3 (was due on 2025-03-12, 8 days overdue)")
	assert.Contains(t, msg.HTML, `href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"`)
	assert.NotContains(t, msg.Text, "all caught up")
}

func TestComposeReportEscapesHTML(t *testing.T) {
	progress := &schedule.Progress{Eligible: 1}
	progress.Overdue = []schedule.OverdueItem{{
		Title: "Maps <and> Slices",
		Date:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}}

	msg, err := ComposeReport("Bob", "Go Course", progress, testToday)
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "Maps &lt;and&gt; Slices")
	assert.NotContains(t, msg.HTML, "Maps <and> Slices")
}
