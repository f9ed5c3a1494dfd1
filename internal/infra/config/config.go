package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Playlist source selection.
const (
	SourceYTDLP = "ytdlp"
	SourceAPI   = "api"
)

// AppConfig holds all configuration for both processes. It is constructed
// once at process entry and passed explicitly to every component that needs
// it; the pure scheduling and classification functions never see it.
type AppConfig struct {
	// Mail transport.
	SMTPEmail    string
	SMTPPassword string
	SMTPHost     string
	SMTPPort     int

	// Contacts maps participant name to email address.
	Contacts map[string]string

	PlaylistName string
	SheetName    string
	PlaylistURL  string
	StartDate    time.Time
	Participants []string
	ShareEmail   string

	// ReminderDays are the weekdays the notifier is permitted to run on.
	ReminderDays         map[time.Weekday]bool
	LeewayDays           int
	NotificationsEnabled bool
	DryRun               bool
	DailyQuota           int

	CredentialsFile string
	PlaylistSource  string // SourceYTDLP or SourceAPI
	YouTubeAPIKey   string
	YTDLPTimeout    time.Duration

	LogLevel    string
	Environment string
	LogFile     string
	SendLogFile string
	ExportDir   string

	// CronSpecReminder drives the notifier's optional daemon mode.
	CronSpecReminder string
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load reads configuration from environment variables and a .env file (if
// present). Every missing required key is collected so the resulting fatal
// error names all of them at once.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables. A missing
	// .env file is fine.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var missing []string

	required := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	cfg.SMTPEmail = required("SMTP_EMAIL")
	cfg.SMTPPassword = required("SMTP_PASSWORD")
	contactsRaw := required("EMAIL_CONTACTS")
	cfg.PlaylistName = required("PLAYLIST_NAME")
	cfg.SheetName = required("SHEET_NAME")
	cfg.PlaylistURL = required("PLAYLIST_URL")
	startDateRaw := required("START_DATE")
	participantsRaw := required("PARTICIPANTS")
	cfg.ShareEmail = required("SHARE_EMAIL")

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration keys: %s", strings.Join(missing, ", "))
	}

	var err error
	cfg.StartDate, err = time.Parse("2006-01-02", startDateRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid START_DATE %q (want YYYY-MM-DD): %w", startDateRaw, err)
	}

	if err := json.Unmarshal([]byte(contactsRaw), &cfg.Contacts); err != nil {
		return nil, fmt.Errorf("invalid EMAIL_CONTACTS (want a JSON object of name to address): %w", err)
	}

	for _, p := range strings.Split(participantsRaw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Participants = append(cfg.Participants, p)
		}
	}
	if len(cfg.Participants) == 0 {
		return nil, fmt.Errorf("PARTICIPANTS must name at least one participant")
	}
	known := make(map[string]bool, len(cfg.Participants))
	for _, p := range cfg.Participants {
		known[p] = true
	}
	for name := range cfg.Contacts {
		if !known[name] {
			return nil, fmt.Errorf("EMAIL_CONTACTS names %q, which is not in PARTICIPANTS", name)
		}
	}

	cfg.ReminderDays, err = parseWeekdays(getEnv("REMINDER_DAYS", "Monday,Thursday"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_DAYS: %w", err)
	}

	cfg.LeewayDays, err = getEnvInt("LEEWAY_DAYS", 3)
	if err != nil {
		return nil, err
	}
	cfg.DailyQuota, err = getEnvInt("DAILY_QUOTA", 3)
	if err != nil {
		return nil, err
	}
	if cfg.DailyQuota < 1 {
		return nil, fmt.Errorf("DAILY_QUOTA must be at least 1, got %d", cfg.DailyQuota)
	}
	cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg.NotificationsEnabled, err = getEnvBool("NOTIFICATIONS_ENABLED", true)
	if err != nil {
		return nil, err
	}
	cfg.DryRun, err = getEnvBool("DRY_RUN", false)
	if err != nil {
		return nil, err
	}

	cfg.SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.CredentialsFile = getEnv("CREDENTIALS_FILE", "credentials.json")

	cfg.PlaylistSource = strings.ToLower(getEnv("PLAYLIST_SOURCE", SourceYTDLP))
	switch cfg.PlaylistSource {
	case SourceYTDLP:
	case SourceAPI:
		cfg.YouTubeAPIKey = os.Getenv("YOUTUBE_API_KEY")
		if cfg.YouTubeAPIKey == "" {
			return nil, fmt.Errorf("YOUTUBE_API_KEY is required when PLAYLIST_SOURCE=%s", SourceAPI)
		}
	default:
		return nil, fmt.Errorf("invalid PLAYLIST_SOURCE %q (want %s or %s)", cfg.PlaylistSource, SourceYTDLP, SourceAPI)
	}

	cfg.YTDLPTimeout, err = time.ParseDuration(getEnv("YTDLP_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid YTDLP_TIMEOUT: %w", err)
	}

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))
	cfg.LogFile = getEnv("LOG_FILE", "tracker.log")
	cfg.SendLogFile = getEnv("SEND_LOG_FILE", "send.log")
	cfg.ExportDir = getEnv("EXPORT_DIR", ".")
	cfg.CronSpecReminder = getEnv("CRON_SPEC_REMINDER", "0 9 * * *")

	return cfg, nil
}

func parseWeekdays(raw string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, name := range strings.Split(raw, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		wd, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days[wd] = true
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	return days, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return b, nil
}
