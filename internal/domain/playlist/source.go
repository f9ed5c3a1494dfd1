package playlist

import (
	"context"
	"errors"
)

// ErrEmptyPlaylist is returned when a source resolves the playlist but it
// contains no entries. An empty playlist is a fatal ingestion error.
var ErrEmptyPlaylist = errors.New("playlist contains no entries")

// Entry is one raw playlist item as returned by a listing source, before any
// sanitization or validation.
type Entry struct {
	ID    string
	Title string
}

// Source lists the entries of a playlist in playlist order. Implementations
// wrap external collaborators (the yt-dlp tool, the YouTube Data API); this
// interface keeps the application logic decoupled from either.
type Source interface {
	List(ctx context.Context, playlistURL string) ([]Entry, error)
}
