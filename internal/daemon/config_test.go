package daemon_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/credify-app/credify/internal/daemon"
)

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("CREDIFY_HOME", t.TempDir())

	cfg, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.API.Port != 7380 {
		t.Errorf("port = %d, want default 7380", cfg.API.Port)
	}
	if cfg.Gamification.EndOfDayHour != 23 {
		t.Errorf("end of day hour = %d, want 23", cfg.Gamification.EndOfDayHour)
	}
	if cfg.Gamification.ChallengeRetentionDays != 30 {
		t.Errorf("retention = %d, want 30", cfg.Gamification.ChallengeRetentionDays)
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("prometheus should default to enabled")
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CREDIFY_HOME", home)

	content := `
[api]
host = "0.0.0.0"
port = 9000

[gamification]
end_of_day_hour = 22
reeval_interval = "30m"

[telemetry]
prometheus = false
`
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.API.Host != "0.0.0.0" || cfg.API.Port != 9000 {
		t.Errorf("api = %s:%d, want 0.0.0.0:9000", cfg.API.Host, cfg.API.Port)
	}
	if cfg.Gamification.EndOfDayHour != 22 {
		t.Errorf("end of day hour = %d, want 22", cfg.Gamification.EndOfDayHour)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("prometheus should be disabled by the file")
	}
	// Untouched sections keep their defaults.
	if cfg.Gamification.ChallengeRetentionDays != 30 {
		t.Errorf("retention = %d, want default 30", cfg.Gamification.ChallengeRetentionDays)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CREDIFY_HOME", home)

	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("not [valid toml"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := daemon.LoadConfig(); err == nil {
		t.Error("malformed config loaded without error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("CREDIFY_HOME", t.TempDir())

	cfg := daemon.DefaultConfig()
	cfg.API.Port = 8123
	cfg.Profile.Name = "Ada"

	if err := daemon.SaveConfig(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	loaded, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if loaded.API.Port != 8123 || loaded.Profile.Name != "Ada" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
