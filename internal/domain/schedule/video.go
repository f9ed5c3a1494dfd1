package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	watchURLPrefix = "https://www.youtube.com/watch?v="

	// PlaceholderTitle replaces titles that sanitize down to nothing.
	PlaceholderTitle = "Untitled Video"
)

// ErrInvalidVideoURL marks playlist entries whose id does not produce a valid
// watch URL. Callers skip and count these; they are never fatal.
var ErrInvalidVideoURL = errors.New("invalid video URL")

var watchURLPattern = regexp.MustCompile(`^https://www\.youtube\.com/watch\?v=[A-Za-z0-9_-]{11}$`)

// Video is a single schedulable playlist item. Title is already sanitized and
// URL is a validated canonical watch URL.
type Video struct {
	Title string
	URL   string
}

// NewVideo builds a Video from a raw playlist entry. The title is sanitized
// and the watch URL is constructed from the entry id and validated against
// the strict watch URL pattern.
func NewVideo(title, id string) (Video, error) {
	url := watchURLPrefix + id
	if !watchURLPattern.MatchString(url) {
		return Video{}, fmt.Errorf("%w: %q", ErrInvalidVideoURL, url)
	}
	return Video{Title: SanitizeTitle(title), URL: url}, nil
}

// SanitizeTitle strips every character that is not alphanumeric, whitespace
// or one of - ( ) . , ! ? and trims the result. An empty result falls back to
// PlaceholderTitle.
func SanitizeTitle(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			b.WriteRune(r)
		case strings.ContainsRune("-().,!?", r):
			b.WriteRune(r)
		}
	}
	title := strings.TrimSpace(b.String())
	if title == "" {
		return PlaceholderTitle
	}
	return title
}
