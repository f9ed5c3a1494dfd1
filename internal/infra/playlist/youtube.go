package playlist

import (
	"context"
	"fmt"
	"net/url"

	"playlist_tracker_bot/internal/domain/playlist"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YoutubeAPI lists a playlist through the YouTube Data API instead of the
// yt-dlp tool. Selected with PLAYLIST_SOURCE=api.
type YoutubeAPI struct {
	client *youtube.Service
}

func NewYoutubeAPI(ctx context.Context, apiKey string) (*YoutubeAPI, error) {
	client, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("could not create youtube service: %w", err)
	}
	return &YoutubeAPI{client: client}, nil
}

// List implements playlist.Source, paging through the playlist in order.
func (y *YoutubeAPI) List(ctx context.Context, playlistURL string) ([]playlist.Entry, error) {
	id, err := playlistID(playlistURL)
	if err != nil {
		return nil, err
	}

	var entries []playlist.Entry
	pageToken := ""
	for {
		call := y.client.PlaylistItems.
			List([]string{"snippet"}).
			PlaylistId(id).
			MaxResults(50).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("youtube playlist listing failed: %w", err)
		}
		for _, item := range response.Items {
			entries = append(entries, playlist.Entry{
				ID:    item.Snippet.ResourceId.VideoId,
				Title: item.Snippet.Title,
			})
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(entries) == 0 {
		return nil, playlist.ErrEmptyPlaylist
	}
	return entries, nil
}

func playlistID(playlistURL string) (string, error) {
	parsed, err := url.Parse(playlistURL)
	if err != nil {
		return "", fmt.Errorf("invalid playlist URL %q: %w", playlistURL, err)
	}
	id := parsed.Query().Get("list")
	if id == "" {
		return "", fmt.Errorf("playlist URL %q has no list parameter", playlistURL)
	}
	return id, nil
}
