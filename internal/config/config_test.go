package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.DayStart != "09:00" {
		t.Errorf("expected day_start 09:00, got %s", cfg.Schedule.DayStart)
	}
	if cfg.Schedule.DayEnd != "18:00" {
		t.Errorf("expected day_end 18:00, got %s", cfg.Schedule.DayEnd)
	}
	if cfg.Event.Timezone != "UTC" {
		t.Errorf("expected timezone UTC, got %s", cfg.Event.Timezone)
	}
	if cfg.UI.Zoom != 1 {
		t.Errorf("expected zoom 1, got %d", cfg.UI.Zoom)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Schedule.DayStart != "09:00" {
		t.Errorf("expected default day_start, got %s", cfg.Schedule.DayStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[event]
name = "GopherCon EU"
start_date = "2025-06-12"
end_date = "2025-06-13"
timezone = "Europe/Paris"

[schedule]
day_start = "08:30"
day_end = "19:00"

[storage]
db_path = "/tmp/test.db"

[ui]
theme = "latte"
zoom = 3
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Event.Name != "GopherCon EU" {
		t.Errorf("expected event name GopherCon EU, got %s", cfg.Event.Name)
	}
	if cfg.Schedule.DayStart != "08:30" {
		t.Errorf("expected day_start 08:30, got %s", cfg.Schedule.DayStart)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" || cfg.UI.Zoom != 3 {
		t.Errorf("expected latte theme at zoom 3, got %s at %d", cfg.UI.Theme, cfg.UI.Zoom)
	}

	days, err := cfg.Days()
	if err != nil {
		t.Fatalf("Days failed: %v", err)
	}
	if len(days) != 2 {
		t.Errorf("expected 2 event days, got %d", len(days))
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
day_start = "08:00"
day_end = "16:00"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("HALL_DAY_START", "10:00")
	t.Setenv("HALL_DB_PATH", "/tmp/override.db")
	t.Setenv("HALL_UI_ZOOM", "2")
	t.Setenv("HALL_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Schedule.DayStart != "10:00" {
		t.Errorf("expected day_start 10:00 from env, got %s", cfg.Schedule.DayStart)
	}
	// File value should be kept when no env override
	if cfg.Schedule.DayEnd != "16:00" {
		t.Errorf("expected day_end 16:00 from file, got %s", cfg.Schedule.DayEnd)
	}
	if cfg.Storage.DBPath != "/tmp/override.db" {
		t.Errorf("expected db_path from env, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Zoom != 2 {
		t.Errorf("expected zoom 2 from env, got %d", cfg.UI.Zoom)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug from env, got %s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "day_start missing leading zero", modify: func(c *Config) { c.Schedule.DayStart = "9:00" }},
		{name: "day_start after day_end", modify: func(c *Config) { c.Schedule.DayStart, c.Schedule.DayEnd = "18:00", "09:00" }},
		{name: "day_end off the slot grid", modify: func(c *Config) { c.Schedule.DayEnd = "17:58" }},
		{name: "unknown timezone", modify: func(c *Config) { c.Event.Timezone = "Mars/Olympus" }},
		{name: "bad start date", modify: func(c *Config) { c.Event.StartDate = "12/06/2025" }},
		{name: "end before start", modify: func(c *Config) { c.Event.StartDate, c.Event.EndDate = "2025-06-13", "2025-06-12" }},
		{name: "zoom too high", modify: func(c *Config) { c.UI.Zoom = 4 }},
		{name: "unknown log level", modify: func(c *Config) { c.Log.Level = "verbose" }},
		{name: "empty db path", modify: func(c *Config) { c.Storage.DBPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	cfg.Event.Timezone = ""

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("expected UTC for empty timezone, got %s", loc)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Event.Name = "DevFest"
	cfg.Event.StartDate = "2025-10-17"
	cfg.Schedule.DayStart = "07:30"
	cfg.Schedule.DayEnd = "15:30"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Event.Name != "DevFest" {
		t.Errorf("expected event name DevFest, got %s", loaded.Event.Name)
	}
	if loaded.Schedule.DayStart != "07:30" {
		t.Errorf("expected day_start 07:30, got %s", loaded.Schedule.DayStart)
	}
	if loaded.Schedule.DayEnd != "15:30" {
		t.Errorf("expected day_end 15:30, got %s", loaded.Schedule.DayEnd)
	}
}
