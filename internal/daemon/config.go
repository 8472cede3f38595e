// Package daemon manages the credify daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	Profile      ProfileConfig      `toml:"profile"`
	API          APIConfig          `toml:"api"`
	Gamification GamificationConfig `toml:"gamification"`
	Telemetry    TelemetryConfig    `toml:"telemetry"`
	Logging      LoggingConfig      `toml:"logging"`
}

// ProfileConfig identifies the local profile.
type ProfileConfig struct {
	Name string `toml:"name"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// GamificationConfig controls the evaluation engine.
type GamificationConfig struct {
	// EndOfDayHour is the local hour (0-23) from which the end-of-day
	// challenge pass runs.
	EndOfDayHour int `toml:"end_of_day_hour"`
	// ChallengeRetentionDays is how long past daily challenges are kept.
	ChallengeRetentionDays int `toml:"challenge_retention_days"`
	// ReevalInterval is how often the background re-evaluation runs.
	ReevalInterval string `toml:"reeval_interval"`
	// SaveDebounce is the quiet period for coalesced state writes.
	SaveDebounce string `toml:"save_debounce"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := credifyHome()
	return Config{
		Profile: ProfileConfig{
			Name: "Player",
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7380,
			CORSOrigins: []string{"*"},
		},
		Gamification: GamificationConfig{
			EndOfDayHour:           23,
			ChallengeRetentionDays: 30,
			ReevalInterval:         "1h",
			SaveDebounce:           "1s",
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "credify.log"),
		},
	}
}

// LoadConfig reads config from ~/.credify/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(credifyHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.credify/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(credifyHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// credifyHome returns the credify data directory.
func credifyHome() string {
	if env := os.Getenv("CREDIFY_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".credify")
}

// CredifyHome is exported for use by other packages.
func CredifyHome() string {
	return credifyHome()
}

// parseDuration parses a duration string, returning a fallback on
// error.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
