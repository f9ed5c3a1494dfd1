package schedule

import (
	"strings"
	"time"
)

// State is the classification of a (row, participant) pair.
type State string

const (
	StateDone    State = "DONE"
	StateOverdue State = "OVERDUE"
	StatePending State = "PENDING"
)

// DefaultLeewayDays is the grace period after a scheduled date before a
// pending item counts as overdue.
const DefaultLeewayDays = 3

// Classify maps a participant's raw status cell and a row's scheduled date
// onto exactly one State. A trimmed, lower-cased status of "done" is DONE
// regardless of dates. Otherwise the row is OVERDUE once today is strictly
// past scheduled+leeway; the leeway day itself is still PENDING.
func Classify(rawStatus string, scheduled, today time.Time, leewayDays int) State {
	if strings.EqualFold(strings.TrimSpace(rawStatus), "done") {
		return StateDone
	}
	deadline := dateOnly(scheduled).AddDate(0, 0, leewayDays)
	if dateOnly(today).After(deadline) {
		return StateOverdue
	}
	return StatePending
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OverdueItem is one overdue schedule entry for a participant, carrying
// everything a reminder needs to render it.
type OverdueItem struct {
	Title     string
	Date      time.Time
	URL       string
	RawStatus string
}

// DaysOverdue is the whole number of days between the scheduled date and
// today.
func (i OverdueItem) DaysOverdue(today time.Time) int {
	return int(dateOnly(today).Sub(dateOnly(i.Date)).Hours() / 24)
}

// Progress accumulates classification results for one participant across a
// full schedule read.
type Progress struct {
	Eligible int
	Done     int
	Overdue  []OverdueItem
}

// Record counts one classified non-weekend row. Overdue rows also capture
// the item for the reminder body.
func (p *Progress) Record(state State, item OverdueItem) {
	p.Eligible++
	switch state {
	case StateDone:
		p.Done++
	case StateOverdue:
		p.Overdue = append(p.Overdue, item)
	}
}

// CompletionPercent is the done/eligible ratio as a percentage. Zero
// eligible rows yield zero.
func (p *Progress) CompletionPercent() float64 {
	if p.Eligible == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Eligible) * 100
}

// CaughtUp reports whether the participant has no overdue items.
func (p *Progress) CaughtUp() bool { return len(p.Overdue) == 0 }
