package bot

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the static bot settings.
type Config struct {
	// Day of month on which a new scoring period opens. Before this day
	// points still count toward the previous month.
	MonthStartDay int
	// Timezone for hour/weekday bucketing and date windows.
	Location *time.Location
	// City used by /weather when none is given.
	DefaultCity string
	// Enables the verbose per-command logging.
	ShowLogs bool
	// Chat that receives scheduled period announcements; 0 disables them.
	BroadcastChatID int64
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		loc = time.UTC
	}
	return &Config{
		MonthStartDay: 6,
		Location:      loc,
		DefaultCity:   "Jaen",
		ShowLogs:      true,
	}
}

// ConfigFromEnv returns the default settings overridden by environment
// variables where present.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if day := os.Getenv("MONTH_START_DAY"); day != "" {
		if d, err := strconv.Atoi(day); err == nil && d >= 1 && d <= 28 {
			cfg.MonthStartDay = d
		} else {
			log.Printf("Warning: invalid MONTH_START_DAY %q, using %d", day, cfg.MonthStartDay)
		}
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			cfg.Location = loc
		} else {
			log.Printf("Warning: invalid TIMEZONE %q: %v", tz, err)
		}
	}

	if city := os.Getenv("DEFAULT_CITY"); city != "" {
		cfg.DefaultCity = city
	}

	if show := os.Getenv("SHOW_LOGS"); show != "" {
		cfg.ShowLogs = show != "false" && show != "0"
	}

	if chat := os.Getenv("BROADCAST_CHAT_ID"); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			cfg.BroadcastChatID = id
		} else {
			log.Printf("Warning: invalid BROADCAST_CHAT_ID %q", chat)
		}
	}

	return cfg
}
