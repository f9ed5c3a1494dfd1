package main

import (
	"context"
	"fmt"
	"os"

	"playlist_tracker_bot/internal/app"
	"playlist_tracker_bot/internal/domain/playlist"
	"playlist_tracker_bot/internal/domain/sheet"
	"playlist_tracker_bot/internal/infra/config"
	"playlist_tracker_bot/internal/infra/logger"
	infraplaylist "playlist_tracker_bot/internal/infra/playlist"
	"playlist_tracker_bot/internal/infra/sheets"
)

func main() {
	fmt.Println("Schedule Builder starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. Sheet: %q, StartDate: %s, Participants: %d, DryRun: %t",
		cfg.SheetName, cfg.StartDate.Format("2006-01-02"), len(cfg.Participants), cfg.DryRun)

	ctx := context.Background()

	var source playlist.Source
	switch cfg.PlaylistSource {
	case config.SourceAPI:
		source, err = infraplaylist.NewYoutubeAPI(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			log.Fatalf("FATAL: Could not create YouTube API source: %v", err)
		}
		log.Info("Playlist source: YouTube Data API.")
	default:
		source = infraplaylist.NewYTDLP(cfg.YTDLPTimeout)
		log.Info("Playlist source: yt-dlp.")
	}

	// The dry-run pass never touches the spreadsheet, so the store is only
	// wired for real runs.
	var store sheet.Store
	if !cfg.DryRun {
		store, err = sheets.NewClient(ctx, cfg.CredentialsFile, cfg.SheetName)
		if err != nil {
			log.Fatalf("FATAL: Could not open spreadsheet: %v", err)
		}
		log.Info("Spreadsheet store initialized.")
	}

	service := app.NewScheduleService(source, store, log, cfg)
	if err := service.BuildAndPublish(ctx); err != nil {
		log.Fatalf("FATAL: Schedule build failed: %v", err)
	}
	fmt.Println("Tracker saved")
}
