package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	// WeekendLabel is the day label carried by weekend placeholder rows.
	WeekendLabel = "Weekend"

	// WeekendTitle is the fixed title shown on weekend placeholder rows.
	WeekendTitle = "Revision / Code / Notes"

	// DefaultDailyQuota is the number of videos assigned per working day
	// when no quota is configured.
	DefaultDailyQuota = 3

	// DateLayout is the format schedule dates are stored in.
	DateLayout = "2006-01-02"
)

// ErrNoVideos is returned when a schedule is requested for an empty video
// list. An empty schedule is a configuration error, not a valid result.
var ErrNoVideos = errors.New("no videos to schedule")

// Row is one generated schedule row: either a working-day row carrying a
// video or a weekend placeholder row carrying none.
type Row struct {
	DayLabel   string
	Date       time.Time
	VideoTitle string
	VideoURL   string // raw watch URL, empty on weekend rows
}

// Weekend reports whether the row is a weekend placeholder.
func (r Row) Weekend() bool { return r.DayLabel == WeekendLabel }

// Assign places videos on working days starting at start, up to quota per
// day, emitting one placeholder row per interleaved weekend day. Day labels
// increment over working days only. Assign is a pure function of its inputs:
// identical arguments always produce an identical row sequence.
func Assign(videos []Video, start time.Time, quota int) ([]Row, error) {
	if len(videos) == 0 {
		return nil, ErrNoVideos
	}
	if quota < 1 {
		quota = DefaultDailyQuota
	}

	rows := make([]Row, 0, len(videos)+2*len(videos)/(5*quota)+2)
	cursor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	dayCounter := 1
	idx := 0

	for idx < len(videos) {
		if wd := cursor.Weekday(); wd == time.Saturday || wd == time.Sunday {
			rows = append(rows, Row{
				DayLabel:   WeekendLabel,
				Date:       cursor,
				VideoTitle: WeekendTitle,
			})
			cursor = cursor.AddDate(0, 0, 1)
			continue
		}

		label := fmt.Sprintf("Day %d", dayCounter)
		for i := 0; i < quota && idx < len(videos); i++ {
			rows = append(rows, Row{
				DayLabel:   label,
				Date:       cursor,
				VideoTitle: videos[idx].Title,
				VideoURL:   videos[idx].URL,
			})
			idx++
		}
		dayCounter++
		cursor = cursor.AddDate(0, 0, 1)
	}

	return rows, nil
}
