package artifact

import (
	"fmt"
	"os"
	"time"
)

// SendLog is the append-only plain-text record of per-participant send
// outcomes, one line per attempt.
type SendLog struct {
	path string
	now  func() time.Time
}

func NewSendLog(path string) *SendLog {
	return &SendLog{path: path, now: time.Now}
}

// Append records one send outcome with a timestamp.
func (l *SendLog) Append(participant, outcome string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open send log %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s\t%s\t%s\n", l.now().Format(time.RFC3339), participant, outcome); err != nil {
		return fmt.Errorf("could not append to send log %s: %w", l.path, err)
	}
	return nil
}
