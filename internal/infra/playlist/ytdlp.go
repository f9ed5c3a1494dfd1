package playlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"playlist_tracker_bot/internal/domain/playlist"
)

// DefaultYTDLPTimeout bounds a single yt-dlp invocation.
const DefaultYTDLPTimeout = 60 * time.Second

// ErrTimeout marks a playlist listing that exceeded the configured timeout.
var ErrTimeout = errors.New("playlist listing timed out")

// YTDLP lists a playlist by invoking the yt-dlp tool with a flat-playlist
// JSON dump. A non-zero exit status, a timeout, or an unparseable or empty
// result are all fatal ingestion errors.
type YTDLP struct {
	binary  string
	timeout time.Duration
}

func NewYTDLP(timeout time.Duration) *YTDLP {
	if timeout <= 0 {
		timeout = DefaultYTDLPTimeout
	}
	return &YTDLP{binary: "yt-dlp", timeout: timeout}
}

type playlistDump struct {
	Entries []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"entries"`
}

// List implements playlist.Source.
func (y *YTDLP) List(ctx context.Context, playlistURL string) ([]playlist.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, y.binary, "-J", "--flat-playlist", playlistURL)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, y.timeout)
		}
		return nil, fmt.Errorf("yt-dlp failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseDump(stdout.Bytes())
}

func parseDump(data []byte) ([]playlist.Entry, error) {
	var dump playlistDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("could not parse yt-dlp output: %w", err)
	}
	if len(dump.Entries) == 0 {
		return nil, playlist.ErrEmptyPlaylist
	}

	entries := make([]playlist.Entry, 0, len(dump.Entries))
	for _, e := range dump.Entries {
		entries = append(entries, playlist.Entry{ID: e.ID, Title: e.Title})
	}
	return entries, nil
}
