package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all liftlog configuration.
type Config struct {
	Remote      RemoteConfig      `yaml:"remote"`
	Storage     StorageConfig     `yaml:"storage"`
	Log         LogConfig         `yaml:"log"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Progression ProgressionConfig `yaml:"progression"`
	Stats       StatsConfig       `yaml:"stats"`
}

// RemoteConfig points at the remote workout API. An empty URL disables
// uploads and sync.
type RemoteConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // Default: 30s
}

// StorageConfig configures the local snapshot database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // Default: resolved by store.DefaultDBPath
	// SnapshotRetention is how many snapshots are kept per namespace.
	SnapshotRetention int `yaml:"snapshot_retention"`
}

// LogConfig configures logrus output.
type LogConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"` // rotated with lumberjack; empty logs to stderr only
	JSON   bool   `yaml:"json"`
	Stderr bool   `yaml:"stderr"` // also log to stderr when File is set
}

// MetricsConfig configures the prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // empty disables the export
}

// ProgressionConfig holds XP rewards.
type ProgressionConfig struct {
	WorkoutXP   int `yaml:"workout_xp"`
	ManualLogXP int `yaml:"manual_log_xp"`
}

// StatsConfig configures aggregation.
type StatsConfig struct {
	// Timezone names the IANA zone used for calendar days. Empty means
	// the system local zone.
	Timezone string `yaml:"timezone"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Remote: RemoteConfig{
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			SnapshotRetention: 10,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Progression: ProgressionConfig{
			WorkoutXP:   100,
			ManualLogXP: 50,
		},
	}
}

// Load builds the config from defaults, then the YAML file at path, then
// environment overrides. An empty path skips the file.
//
// Env vars use the prefix LIFTLOG_:
//
//	LIFTLOG_REMOTE_URL, LIFTLOG_REMOTE_TIMEOUT,
//	LIFTLOG_DB, LIFTLOG_SNAPSHOT_RETENTION,
//	LIFTLOG_LOG_LEVEL, LIFTLOG_LOG_FILE, LIFTLOG_LOG_JSON,
//	LIFTLOG_METRICS_TEXTFILE, LIFTLOG_TIMEZONE,
//	LIFTLOG_WORKOUT_XP, LIFTLOG_MANUAL_LOG_XP
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// DefaultPath returns the config file path if one exists, in priority
// order:
// 1. LIFTLOG_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/liftlog/config.yaml
// 3. ~/.config/liftlog/config.yaml
//
// It returns "" when no file is found in the XDG locations.
func DefaultPath() string {
	if p := os.Getenv("LIFTLOG_CONFIG"); p != "" {
		return p
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	p := filepath.Join(configHome, "liftlog", "config.yaml")
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return p
}

// Location resolves Stats.Timezone.
func (c *Config) Location() *time.Location {
	if c.Stats.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Stats.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LIFTLOG_REMOTE_URL"); v != "" {
		cfg.Remote.URL = v
	}
	if v := os.Getenv("LIFTLOG_REMOTE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LIFTLOG_REMOTE_TIMEOUT: %w", err)
		}
		cfg.Remote.Timeout = d
	}
	if v := os.Getenv("LIFTLOG_DB"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("LIFTLOG_SNAPSHOT_RETENTION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.SnapshotRetention = n
		}
	}
	if v := os.Getenv("LIFTLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LIFTLOG_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("LIFTLOG_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.JSON = b
		}
	}
	if v := os.Getenv("LIFTLOG_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
	if v := os.Getenv("LIFTLOG_TIMEZONE"); v != "" {
		cfg.Stats.Timezone = v
	}
	if v := os.Getenv("LIFTLOG_WORKOUT_XP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Progression.WorkoutXP = n
		}
	}
	if v := os.Getenv("LIFTLOG_MANUAL_LOG_XP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Progression.ManualLogXP = n
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.Remote.URL != "" && !strings.HasPrefix(c.Remote.URL, "http://") && !strings.HasPrefix(c.Remote.URL, "https://") {
		return fmt.Errorf("remote.url must be an http(s) URL, got %q", c.Remote.URL)
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("remote.timeout must be positive")
	}
	if c.Storage.SnapshotRetention < 1 {
		return fmt.Errorf("storage.snapshot_retention must be at least 1")
	}
	if c.Progression.WorkoutXP < 0 || c.Progression.ManualLogXP < 0 {
		return fmt.Errorf("progression XP rewards must not be negative")
	}
	if c.Stats.Timezone != "" {
		if _, err := time.LoadLocation(c.Stats.Timezone); err != nil {
			return fmt.Errorf("stats.timezone: %w", err)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	return nil
}
