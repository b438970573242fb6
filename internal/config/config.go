// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/conference-hall/hall/internal/dateutil"
	"github.com/conference-hall/hall/internal/timeslot"
	"github.com/conference-hall/hall/internal/zoom"
)

// Config holds the application configuration.
type Config struct {
	Event    EventConfig    `toml:"event"`
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// EventConfig describes the event being scheduled.
type EventConfig struct {
	Name      string `toml:"name"`
	StartDate string `toml:"start_date"` // YYYY-MM-DD, empty means today
	EndDate   string `toml:"end_date"`   // YYYY-MM-DD, empty means start_date
	Timezone  string `toml:"timezone"`   // IANA name, e.g. "Europe/Paris"
}

// ScheduleConfig holds the display window of every event day.
type ScheduleConfig struct {
	DayStart string `toml:"day_start"` // e.g., "09:00"
	DayEnd   string `toml:"day_end"`   // e.g., "18:00"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	Zoom  int    `toml:"zoom"`  // 0 (30 min rows) to 3 (5 min rows)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Event: EventConfig{
			Name:     "My conference",
			Timezone: "UTC",
		},
		Schedule: ScheduleConfig{
			DayStart: "09:00",
			DayEnd:   "18:00",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
			Zoom:  zoom.DefaultLevel,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hall.db"
	}
	return filepath.Join(home, ".local", "share", "hall", "hall.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "hall", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// Event overrides
	if v := os.Getenv("HALL_EVENT_NAME"); v != "" {
		cfg.Event.Name = v
	}
	if v := os.Getenv("HALL_START_DATE"); v != "" {
		cfg.Event.StartDate = v
	}
	if v := os.Getenv("HALL_END_DATE"); v != "" {
		cfg.Event.EndDate = v
	}
	if v := os.Getenv("HALL_TIMEZONE"); v != "" {
		cfg.Event.Timezone = v
	}

	// Schedule overrides
	if v := os.Getenv("HALL_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("HALL_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}

	// Storage overrides
	if v := os.Getenv("HALL_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// UI overrides
	if v := os.Getenv("HALL_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("HALL_UI_ZOOM"); v != "" {
		if level, err := strconv.Atoi(v); err == nil {
			cfg.UI.Zoom = level
		}
	}

	if v := os.Getenv("HALL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	for field, v := range map[string]string{"day_start": c.Schedule.DayStart, "day_end": c.Schedule.DayEnd} {
		if timeslot.ClockToMinutes(v)%int(timeslot.Interval/time.Minute) != 0 {
			return fmt.Errorf("%s must be a multiple of 5 minutes, got %q", field, v)
		}
	}

	if _, err := c.Days(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	if c.UI.Zoom < 0 || c.UI.Zoom > zoom.MaxLevel {
		return fmt.Errorf("zoom must be between 0 and %d, got %d", zoom.MaxLevel, c.UI.Zoom)
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if _, err := timeslot.ParseClock(t); err != nil {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Location returns the display timezone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Event.Timezone
	if name == "" {
		name = "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// Days returns the event dates from start_date to end_date inclusive.
func (c *Config) Days() ([]time.Time, error) {
	r, err := dateutil.NewDateRange(c.Event.StartDate, c.Event.EndDate)
	if err != nil {
		return nil, fmt.Errorf("event dates: %w", err)
	}
	return r.Days(), nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
