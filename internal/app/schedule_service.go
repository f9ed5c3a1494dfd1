package app

import (
	"context"
	"errors"
	"fmt"

	"playlist_tracker_bot/internal/domain/playlist"
	"playlist_tracker_bot/internal/domain/schedule"
	"playlist_tracker_bot/internal/domain/sheet"
	"playlist_tracker_bot/internal/infra/artifact"
	"playlist_tracker_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Sheet colors, matching the tracker's established look.
var (
	headerColor  = sheet.Color{Red: 0.74, Green: 0.86, Blue: 0.95} // light blue
	doneColor    = sheet.Color{Red: 0.80, Green: 0.94, Blue: 0.80} // light green
	emptyColor   = sheet.Color{Red: 1.0, Green: 0.84, Blue: 0.84}  // light red
	weekendColor = sheet.Color{Red: 0.9, Green: 0.9, Blue: 0.9}    // gray

	// One band color per working day, repeated weekly.
	dayBandColors = []sheet.Color{
		{Red: 0.9, Green: 0.95, Blue: 1.0},  // Day 1: light blue
		{Red: 0.9, Green: 0.85, Blue: 0.9},  // Day 2: light green
		{Red: 1.0, Green: 0.95, Blue: 0.9},  // Day 3: light orange
		{Red: 1.0, Green: 0.8, Blue: 0.95},  // Day 4: light pink
		{Red: 0.85, Green: 0.8, Blue: 0.9},  // Day 5: light purple
	}
)

// ScheduleService builds the schedule table from the playlist and publishes
// it to the spreadsheet with formatting, validation and sharing applied.
type ScheduleService struct {
	source playlist.Source
	store  sheet.Store
	logger *logrus.Logger
	cfg    *config.AppConfig
}

// NewScheduleService wires the builder. store may be nil in dry-run mode;
// no store call is made before the dry-run check.
func NewScheduleService(source playlist.Source, store sheet.Store, logger *logrus.Logger, cfg *config.AppConfig) *ScheduleService {
	return &ScheduleService{source: source, store: store, logger: logger, cfg: cfg}
}

// BuildAndPublish runs the full builder pass: fetch, sanitize, assign,
// export, write, format, share.
func (s *ScheduleService) BuildAndPublish(ctx context.Context) error {
	s.logger.Infof("Fetching playlist %s", s.cfg.PlaylistURL)
	entries, err := s.source.List(ctx, s.cfg.PlaylistURL)
	if err != nil {
		return fmt.Errorf("playlist ingestion failed: %w", err)
	}
	s.logger.Infof("Fetched %d playlist entries.", len(entries))

	videos, skipped := buildVideos(entries, s.logger)
	if skipped > 0 {
		s.logger.Warnf("Skipped %d invalid playlist entries.", skipped)
	}
	if len(videos) == 0 {
		return errors.New("no valid videos remain after validation")
	}

	rows, err := schedule.Assign(videos, s.cfg.StartDate, s.cfg.DailyQuota)
	if err != nil {
		return fmt.Errorf("schedule assignment failed: %w", err)
	}
	s.logger.Infof("Assigned %d videos to %d schedule rows starting %s.",
		len(videos), len(rows), s.cfg.StartDate.Format(schedule.DateLayout))

	headers := append([]string{sheet.ColDay, sheet.ColDate, sheet.ColTitle, sheet.ColURL}, s.cfg.Participants...)

	// The CSV export stores raw URLs; the hyperlink formula exists only in
	// the sheet write below.
	exportPath, err := artifact.ExportCSV(s.cfg.ExportDir, buildTable(headers, rows, false))
	if err != nil {
		s.logger.Warnf("Could not export schedule CSV: %v", err)
	} else {
		s.logger.Infof("Exported schedule to %s.", exportPath)
	}

	if s.cfg.DryRun {
		s.logger.Infof("DRY RUN: would write %d rows and %d columns to sheet %q, apply %d formatting rules and share with %s.",
			len(rows)+1, len(headers), s.cfg.SheetName, s.formattingRuleCount(), s.cfg.ShareEmail)
		s.previewRows(rows)
		return nil
	}

	if backup, err := artifact.BackupCredentials(s.cfg.CredentialsFile); err != nil {
		s.logger.Warnf("Could not back up credentials file: %v", err)
	} else {
		s.logger.Infof("Backed up credentials to %s.", backup)
	}

	if err := s.store.Update(ctx, buildTable(headers, rows, true)); err != nil {
		return fmt.Errorf("sheet write failed: %w", err)
	}
	s.logger.Infof("Wrote %d rows to sheet %q.", len(rows)+1, s.cfg.SheetName)

	s.applyFormatting(ctx, headers, len(rows))

	if err := s.store.Share(ctx, s.cfg.ShareEmail); err != nil {
		s.logger.Warnf("Could not share spreadsheet with %s: %v", s.cfg.ShareEmail, err)
	} else {
		s.logger.Infof("Shared spreadsheet with %s.", s.cfg.ShareEmail)
	}

	s.logger.Info("Schedule build complete.")
	return nil
}

func buildVideos(entries []playlist.Entry, logger *logrus.Logger) ([]schedule.Video, int) {
	videos := make([]schedule.Video, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		v, err := schedule.NewVideo(e.Title, e.ID)
		if err != nil {
			logger.Warnf("Skipping playlist entry %q: %v", e.ID, err)
			skipped++
			continue
		}
		videos = append(videos, v)
	}
	return videos, skipped
}

// buildTable renders the header plus one line per row. With formulas enabled
// the URL column holds the hyperlink display formula; otherwise the raw URL.
func buildTable(headers []string, rows []schedule.Row, formulas bool) [][]string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, headers)
	for _, r := range rows {
		url := r.VideoURL
		if formulas && url != "" {
			url = schedule.HyperlinkFormula(r.VideoURL)
		}
		line := []string{r.DayLabel, r.Date.Format(schedule.DateLayout), r.VideoTitle, url}
		for range headers[4:] {
			line = append(line, "")
		}
		table = append(table, line)
	}
	return table
}

// applyFormatting applies every formatting and validation rule
// independently. A rejected rule is logged and the rest continue.
func (s *ScheduleService) applyFormatting(ctx context.Context, headers []string, dataRows int) {
	applied, failed := 0, 0
	apply := func(what string, err error) {
		if err != nil {
			s.logger.Warnf("Formatting rule rejected (%s): %v", what, err)
			failed++
			return
		}
		applied++
	}

	apply("header format", s.store.FormatHeader(ctx, headerColor))
	apply("freeze header", s.store.FreezeHeader(ctx))

	endRow := dataRows + 1
	for i, rule := range participantRules(s.cfg.Participants, endRow) {
		apply(fmt.Sprintf("participant rule %d", i+1), s.store.AddConditionalFormat(ctx, rule))
	}
	for i, rule := range dayBandRules(endRow) {
		apply(fmt.Sprintf("day band %d", i+1), s.store.AddConditionalFormat(ctx, rule))
	}
	apply("weekend rows", s.store.AddConditionalFormat(ctx, weekendRule(endRow, len(headers))))

	for i := range s.cfg.Participants {
		col := 4 + i
		apply(fmt.Sprintf("status validation %s", s.cfg.Participants[i]),
			s.store.SetStatusValidation(ctx, col, dataRows, sheet.StatusValues))
	}

	s.logger.Infof("Formatting complete: %d rules applied, %d rejected.", applied, failed)
}

// participantRules builds, per participant column, a green rule for "done"
// and a red rule for empty cells.
func participantRules(participants []string, endRow int) []sheet.ConditionalRule {
	rules := make([]sheet.ConditionalRule, 0, 2*len(participants))
	for i := range participants {
		col := 4 + i
		topLeft := fmt.Sprintf("%s2", sheet.ColumnLetter(col))
		rules = append(rules,
			sheet.ConditionalRule{
				Formula:     fmt.Sprintf(`=LOWER(%s)="done"`, topLeft),
				StartRow:    1,
				EndRow:      endRow,
				StartColumn: col,
				EndColumn:   col + 1,
				Background:  doneColor,
			},
			sheet.ConditionalRule{
				Formula:     fmt.Sprintf(`=LEN(TRIM(%s))=0`, topLeft),
				StartRow:    1,
				EndRow:      endRow,
				StartColumn: col,
				EndColumn:   col + 1,
				Background:  emptyColor,
			},
		)
	}
	return rules
}

// dayBandRules colors the schedule columns by working-day number, repeating
// weekly. Day 5 maps to MOD(...)=0.
func dayBandRules(endRow int) []sheet.ConditionalRule {
	rules := make([]sheet.ConditionalRule, 0, len(dayBandColors))
	for i, color := range dayBandColors {
		mod := (i + 1) % len(dayBandColors)
		rules = append(rules, sheet.ConditionalRule{
			Formula: fmt.Sprintf(
				`=AND(ISNUMBER(VALUE(REGEXEXTRACT($A2,"[0-9]+"))),MOD(VALUE(REGEXEXTRACT($A2,"[0-9]+")),%d)=%d)`,
				len(dayBandColors), mod),
			StartRow:    1,
			EndRow:      endRow,
			StartColumn: 0,
			EndColumn:   4,
			Background:  color,
		})
	}
	return rules
}

func weekendRule(endRow, columns int) sheet.ConditionalRule {
	return sheet.ConditionalRule{
		Formula:     fmt.Sprintf(`=$A2="%s"`, schedule.WeekendLabel),
		StartRow:    1,
		EndRow:      endRow,
		StartColumn: 0,
		EndColumn:   columns,
		Background:  weekendColor,
		Bold:        true,
	}
}

func (s *ScheduleService) formattingRuleCount() int {
	return 2 + 2*len(s.cfg.Participants) + len(dayBandColors) + 1 + len(s.cfg.Participants)
}

func (s *ScheduleService) previewRows(rows []schedule.Row) {
	limit := len(rows)
	if limit > 5 {
		limit = 5
	}
	for _, r := range rows[:limit] {
		s.logger.Infof("DRY RUN: row %s | %s | %s", r.DayLabel, r.Date.Format(schedule.DateLayout), r.VideoTitle)
	}
	if len(rows) > limit {
		s.logger.Infof("DRY RUN: ... and %d more rows", len(rows)-limit)
	}
}
